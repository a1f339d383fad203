package calc

import (
	"fmt"
	"math/big"
	"strconv"
	"unicode/utf8"
)

// Mode selects the grammar of a Buffer and what it keeps after evaluating.
type Mode int8

const (
	// ModeStandard is a four-function calculator. The buffer is cleared after
	// every evaluation.
	ModeStandard Mode = iota
	// ModeScientific adds exponentiation and functions. After a successful
	// evaluation the buffer holds the result, so that further input continues
	// from the previous answer.
	ModeScientific
)

func (m Mode) String() string {
	switch m {
	case ModeStandard:
		return "standard"
	case ModeScientific:
		return "scientific"
	default:
		return "Mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// ParseMode parses the name of a mode as produced by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "standard", "normal", "":
		return ModeStandard, nil
	case "scientific":
		return ModeScientific, nil
	default:
		return 0, fmt.Errorf("unknown calculator mode %q", s)
	}
}

// Grammar returns the parse options for the mode.
func (m Mode) Grammar() ParseOption {
	if m == ModeScientific {
		return Scientific()
	}
	return Standard()
}

// ErrorText is what the display shows after a failed evaluation.
const ErrorText = "Error"

// Result is the outcome of evaluating a buffer: either a value or an error.
type Result struct {
	// Input is the expression that was evaluated.
	Input string
	// Parsed is the canonical form of Input, if it parsed.
	Parsed string
	// Value is the result rounded for display. It is nil if Err is not.
	Value *big.Float
	// Text is the formatted value.
	Text string
	// Err is the reason evaluation failed, always an *EvalError.
	Err error
}

// Failed reports whether the evaluation failed.
func (r Result) Failed() bool {
	return r.Err != nil
}

// String returns the text for the display.
func (r Result) String() string {
	if r.Err != nil {
		return ErrorText
	}
	return r.Text
}

// EvalError wraps any failure to reduce an expression to a number: lexing and
// parsing errors, undefined names, and domain errors such as division by
// zero.
type EvalError struct {
	// Expr is the expression that failed.
	Expr string
	// Err is the underlying error.
	Err error
}

func (err *EvalError) Error() string {
	return "evaluating " + strconv.Quote(err.Expr) + ": " + err.Err.Error()
}

func (err *EvalError) Unwrap() error {
	return err.Err
}

// Buffer is the expression being entered on a calculator panel. A Buffer is
// not safe for concurrent use.
type Buffer struct {
	mode    Mode
	expr    string
	display string
	places  int
	copts   []ContextOption
}

// BufferOption configures a Buffer.
type BufferOption func(*Buffer)

// RoundTo sets the number of decimal places results are rounded to. The
// default is DefaultPlaces.
func RoundTo(places int) BufferOption {
	return func(b *Buffer) {
		b.places = places
	}
}

// WithContext sets options for the evaluation context, e.g. precision or
// variables, used for every evaluation.
func WithContext(opts ...ContextOption) BufferOption {
	return func(b *Buffer) {
		b.copts = append(b.copts, opts...)
	}
}

// NewBuffer creates an empty buffer.
func NewBuffer(mode Mode, opts ...BufferOption) *Buffer {
	b := Buffer{mode: mode, places: DefaultPlaces}
	for _, opt := range opts {
		opt(&b)
	}
	return &b
}

// Mode returns the buffer's mode.
func (b *Buffer) Mode() Mode {
	return b.mode
}

// Append adds a token to the end of the expression. Nothing is validated until
// the expression is evaluated.
func (b *Buffer) Append(tok string) {
	b.expr += tok
	b.display = b.expr
}

// Clear empties the expression.
func (b *Buffer) Clear() {
	b.expr = ""
	b.display = ""
}

// Backspace removes the last rune of the expression.
func (b *Buffer) Backspace() {
	_, sz := utf8.DecodeLastRuneInString(b.expr)
	b.expr = b.expr[:len(b.expr)-sz]
	b.display = b.expr
}

// String returns the expression as entered so far.
func (b *Buffer) String() string {
	return b.expr
}

// Display returns what the calculator's display shows: the expression, or the
// result of the last evaluation until more input arrives.
func (b *Buffer) Display() string {
	return b.display
}

// Evaluate evaluates the expression. On failure, the result carries an
// *EvalError and the expression is cleared. On success, the expression is
// cleared in standard mode and replaced by the result in scientific mode.
func (b *Buffer) Evaluate() Result {
	r := evaluate(b.mode, b.expr, b.places, b.copts)
	switch {
	case r.Err != nil, b.mode == ModeStandard:
		b.expr = ""
	default:
		b.expr = r.Text
	}
	b.display = r.String()
	return r
}

// Press handles a calculator key: "C" clears, "=" evaluates, and anything else
// is appended. It returns the new display.
func (b *Buffer) Press(key string) string {
	switch key {
	case "C":
		b.Clear()
	case "=":
		b.Evaluate()
	default:
		b.Append(key)
	}
	return b.display
}

// Evaluate evaluates a single expression in the given mode, rounded to
// DefaultPlaces unless a RoundTo option says otherwise.
func Evaluate(mode Mode, src string, opts ...BufferOption) Result {
	b := NewBuffer(mode, opts...)
	b.Append(src)
	return b.Evaluate()
}

func evaluate(mode Mode, src string, places int, copts []ContextOption) (r Result) {
	r.Input = src
	defer func() {
		// Evaluation failures are always reported in the result.
		if p := recover(); p != nil {
			r = Result{Input: src, Err: &EvalError{Expr: src, Err: fmt.Errorf("internal error: %v", p)}}
		}
	}()
	a, err := ParseString(src, mode.Grammar())
	if err != nil {
		r.Err = &EvalError{Expr: src, Err: err}
		return r
	}
	r.Parsed = a.String()
	ctx := NewContext(copts...)
	v := ctx.Eval(a)
	if v == nil {
		r.Err = &EvalError{Expr: src, Err: ctx.Err()}
		return r
	}
	r.Text = Format(v, places)
	r.Value = Round(v, places)
	return r
}
