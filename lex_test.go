package calc

import (
	"io"
	"strings"
	"testing"
)

func TestLex(t *testing.T) {
	cases := []struct {
		src    string
		tokens []lexToken
		errs   int
	}{
		// spaces
		{"", []lexToken{{kind: tokenEOF, pos: 1}}, 0},
		{" \t \r\n ", []lexToken{{kind: tokenEOF, pos: 7}}, 0},
		// numbers
		{"0", []lexToken{{text: "0", kind: tokenNum, pos: 1}, {kind: tokenEOF, pos: 2}}, 0},
		{"9876543210", []lexToken{{text: "9876543210", kind: tokenNum, pos: 1}, {kind: tokenEOF, pos: 11}}, 0},
		{"1 0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "0", kind: tokenNum, pos: 3}, {kind: tokenEOF, pos: 4}}, 0},
		{"1.0", []lexToken{{text: "1.0", kind: tokenNum, pos: 1}, {kind: tokenEOF, pos: 4}}, 0},
		{"-1", []lexToken{{text: "-", kind: tokenOp, pos: 1}, {text: "1", kind: tokenNum, pos: 2}, {kind: tokenEOF, pos: 3}}, 0},
		{"1e1", []lexToken{{text: "1e1", kind: tokenNum, pos: 1}, {kind: tokenEOF, pos: 4}}, 0},
		{"1e+1", []lexToken{{text: "1e+1", kind: tokenNum, pos: 1}, {kind: tokenEOF, pos: 5}}, 0},
		{"1e-1", []lexToken{{text: "1e-1", kind: tokenNum, pos: 1}, {kind: tokenEOF, pos: 5}}, 0},
		{"1.0e1", []lexToken{{text: "1.0e1", kind: tokenNum, pos: 1}, {kind: tokenEOF, pos: 6}}, 0},
		{".1", []lexToken{{text: ".1", kind: tokenNum, pos: 1}, {kind: tokenEOF, pos: 3}}, 0},
		{".1e1", []lexToken{{text: ".1e1", kind: tokenNum, pos: 1}, {kind: tokenEOF, pos: 5}}, 0},
		{"1e", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "e", kind: tokenIdent, pos: 2}, {kind: tokenEOF, pos: 3}}, 0},
		{"1e-x", []lexToken{
			{text: "1", kind: tokenNum, pos: 1},
			{text: "e", kind: tokenIdent, pos: 2},
			{text: "-", kind: tokenOp, pos: 3},
			{text: "x", kind: tokenIdent, pos: 4},
			{kind: tokenEOF, pos: 5},
		}, 0},
		{"1.1.1", []lexToken{{pos: 1}, {text: "1", kind: tokenNum, pos: 5}, {kind: tokenEOF, pos: 6}}, 1},
		{".", []lexToken{{pos: 1}, {kind: tokenEOF, pos: 2}}, 1},
		{"1+0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "+", kind: tokenOp, pos: 2}, {text: "0", kind: tokenNum, pos: 3}, {kind: tokenEOF, pos: 4}}, 0},
		{"1*0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "*", kind: tokenOp, pos: 2}, {text: "0", kind: tokenNum, pos: 3}, {kind: tokenEOF, pos: 4}}, 0},
		{"2×3÷4", []lexToken{
			{text: "2", kind: tokenNum, pos: 1},
			{text: "×", kind: tokenOp, pos: 2},
			{text: "3", kind: tokenNum, pos: 3},
			{text: "÷", kind: tokenOp, pos: 4},
			{text: "4", kind: tokenNum, pos: 5},
			{kind: tokenEOF, pos: 6},
		}, 0},
		{"(1)", []lexToken{{text: "(", kind: tokenOpen, pos: 1}, {text: "1", kind: tokenNum, pos: 2}, {text: ")", kind: tokenClose, pos: 3}, {kind: tokenEOF, pos: 4}}, 0},
		{"2pi", []lexToken{{text: "2", kind: tokenNum, pos: 1}, {text: "pi", kind: tokenIdent, pos: 2}, {kind: tokenEOF, pos: 4}}, 0},
		// identifiers
		{"e", []lexToken{{text: "e", kind: tokenIdent, pos: 1}, {kind: tokenEOF, pos: 2}}, 0},
		{"π", []lexToken{{text: "π", kind: tokenIdent, pos: 1}, {kind: tokenEOF, pos: 2}}, 0},
		{"_a_", []lexToken{{text: "_a_", kind: tokenIdent, pos: 1}, {kind: tokenEOF, pos: 4}}, 0},
		{"sqrt9", []lexToken{{text: "sqrt", kind: tokenIdent, pos: 1}, {text: "9", kind: tokenNum, pos: 5}, {kind: tokenEOF, pos: 6}}, 0},
		{"x_1", []lexToken{{text: "x_", kind: tokenIdent, pos: 1}, {text: "1", kind: tokenNum, pos: 3}, {kind: tokenEOF, pos: 4}}, 0},
		{"e(", []lexToken{{text: "e", kind: tokenIdent, pos: 1}, {text: "(", kind: tokenOpen, pos: 2}, {kind: tokenEOF, pos: 3}}, 0},
		// operators
		{"++", []lexToken{{text: "+", kind: tokenOp, pos: 1}, {text: "+", kind: tokenOp, pos: 2}, {kind: tokenEOF, pos: 3}}, 0},
		{"a--b", []lexToken{
			{text: "a", kind: tokenIdent, pos: 1},
			{text: "-", kind: tokenOp, pos: 2},
			{text: "-", kind: tokenOp, pos: 3},
			{text: "b", kind: tokenIdent, pos: 4},
			{kind: tokenEOF, pos: 5},
		}, 0},
		// brackets and separators
		{"[]", []lexToken{{text: "[", kind: tokenOpen, pos: 1}, {text: "]", kind: tokenClose, pos: 2}, {kind: tokenEOF, pos: 3}}, 0},
		{"{}", []lexToken{{text: "{", kind: tokenOpen, pos: 1}, {text: "}", kind: tokenClose, pos: 2}, {kind: tokenEOF, pos: 3}}, 0},
		{"a,b;c", []lexToken{
			{text: "a", kind: tokenIdent, pos: 1},
			{text: ",", kind: tokenSep, pos: 2},
			{text: "b", kind: tokenIdent, pos: 3},
			{text: ";", kind: tokenSep, pos: 4},
			{text: "c", kind: tokenIdent, pos: 5},
			{kind: tokenEOF, pos: 6},
		}, 0},
		// erroneous symbols
		{"$", []lexToken{{pos: 1}, {kind: tokenEOF, pos: 2}}, 1},
		{"a$", []lexToken{{text: "a", kind: tokenIdent, pos: 1}, {pos: 2}, {kind: tokenEOF, pos: 3}}, 1},
		{"$a", []lexToken{{pos: 1}, {text: "a", kind: tokenIdent, pos: 2}, {kind: tokenEOF, pos: 3}}, 1},
		{"0$", []lexToken{{text: "0", kind: tokenNum, pos: 1}, {pos: 2}, {kind: tokenEOF, pos: 3}}, 1},
		{"$$", []lexToken{{pos: 1}, {pos: 2}, {kind: tokenEOF, pos: 3}}, 2},
	}

	for _, c := range cases {
		scan := lex(strings.NewReader(c.src))
		errs := c.errs
		for _, want := range c.tokens {
			got, err := scan.next("")
			if err == io.EOF {
				t.Errorf("scanning %q: expected token %v but got EOF", c.src, want)
				continue
			}
			if got != want {
				t.Errorf("scanning %q: want %v, got %v", c.src, want, got)
			}
			if err != nil {
				if _, ok := err.(*LexError); !ok {
					t.Errorf("scanning %q: error %#v is not a *LexError", c.src, err)
				}
				if errs > 0 {
					errs--
					continue
				}
				t.Errorf("scanning %q: unexpected error %v", c.src, err)
			}
		}
		if got, err := scan.next(""); err != io.EOF {
			t.Errorf("scanning %q: extra token %v with error: %v", c.src, got, err)
		}
		if errs > 0 {
			t.Errorf("scanning %q: not enough errors", c.src)
		}
	}
}

func TestLexStopOn(t *testing.T) {
	scan := lex(strings.NewReader("x\ny"))
	want := []lexToken{
		{text: "x", kind: tokenIdent, pos: 1},
		{kind: tokenEOF, pos: 2},
	}
	for _, w := range want {
		got, err := scan.next("\n")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != w {
			t.Errorf("want %v, got %v", w, got)
		}
	}
	if got, err := scan.next("\n"); err != io.EOF {
		t.Errorf("scanned past stop: %v with error %v", got, err)
	}
}

func TestLexPush(t *testing.T) {
	scan := lex(strings.NewReader("1 2"))
	first, err := scan.next("")
	if err != nil {
		t.Fatal(err)
	}
	scan.push(first)
	if got := scan.must(); got != first {
		t.Errorf("must returned %v, want %v", got, first)
	}
	scan.push(first)
	got, err := scan.next("")
	if err != nil {
		t.Fatal(err)
	}
	if got != first {
		t.Errorf("next after push returned %v, want %v", got, first)
	}
	got, err = scan.next("")
	if err != nil {
		t.Fatal(err)
	}
	if want := (lexToken{text: "2", kind: tokenNum, pos: 3}); got != want {
		t.Errorf("want %v, got %v", want, got)
	}
}
