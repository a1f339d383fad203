package calc

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	funcopt struct {
		name string
		fn   Func
	}
	funcsopt map[string]Func
	eofopt   struct {
		c, s bool
		ws   string
	}
	opsopt      string
	explicitopt struct{}
)

// parsectx holds general data for parsing. It is also a ParseOption.
type parsectx struct {
	// names is the set of variable names that have been seen this parse.
	names map[string]bool
	// funcs is the set of function names that trigger special parsing for ids.
	funcs map[string]Func
	// resv is a reserved parsed node. parsearglist sets this when it parses a
	// single parenthesized term so that the parser can back it out to an
	// implicit multiplication if the function is niladic.
	resv *node
	// wseof is a string containing the whitespace characters that trigger an
	// EOF token from the lexer.
	wseof string
	// ops is the set of operator runes the grammar accepts. Empty means every
	// rune in Operators.
	ops string
	// explicit disallows implicit multiplication by juxtaposition.
	explicit bool
	// ceof and seof indicate whether commas and semicolons, respectively, are
	// allowed at the end of an expression.
	ceof, seof bool
	// nodefaults indicates that parse options have set all default functions.
	nodefaults bool
	// ownfuncs indicates that funcs was made for this parse rather than
	// shared with a preset, so options may write to it.
	ownfuncs bool
}

// ownFuncs makes p.funcs a map that p may modify.
func (p *parsectx) ownFuncs(size int) {
	if p.ownfuncs {
		return
	}
	m := make(map[string]Func, len(p.funcs)+size)
	for k, v := range p.funcs {
		m[k] = v
	}
	p.funcs = m
	p.ownfuncs = true
}

func (p *parsectx) checkdefaults() {
	if p.nodefaults {
		return
	}
	n := 0
	for k := range p.funcs {
		if _, ok := globalfuncs[k]; ok {
			n++
		}
	}
	if n == len(globalfuncs) {
		p.nodefaults = true
	}
}

// allows reports whether the grammar accepts an operator token.
func (p *parsectx) allows(op string) bool {
	return p.ops == "" || strings.Contains(p.ops, op)
}

// ParseFunc sets a function for parsing. To disable parsing a function, pass
// nil for fn.
func ParseFunc(name string, fn Func) ParseOption {
	return &funcopt{name, fn}
}

func (o *funcopt) parseOption(p parsectx) parsectx {
	p.ownFuncs(1)
	p.funcs[o.name] = o.fn
	return p
}

// ParseFuncs sets a group of functions for parsing. To disable parsing any
// function, set it to nil.
func ParseFuncs(fns map[string]Func) ParseOption {
	return funcsopt(fns)
}

func (o funcsopt) parseOption(p parsectx) parsectx {
	// Always make a copy.
	p.ownFuncs(len(o))
	for k, v := range o {
		p.funcs[k] = v
	}
	p.checkdefaults()
	return p
}

// DisableDefaultFuncs disables all default functions during parsing. Their
// names will be parsed as variables instead.
func DisableDefaultFuncs() ParseOption {
	return disablefns
}

var disablefns = func() funcsopt {
	m := make(funcsopt, len(globalfuncs))
	for k := range globalfuncs {
		m[k] = nil
	}
	return m
}()

// OnlyOperators restricts the operators the parser accepts to the runes in
// ops, each of which must appear in Operators. Any other operator is an
// OperatorError, whether it appears as a unary or binary operator.
func OnlyOperators(ops string) ParseOption {
	for _, r := range ops {
		if !strings.ContainsRune(Operators, r) {
			panic("calc: not an operator: " + strconv.QuoteRune(r))
		}
	}
	if ops == "" {
		panic("calc: empty operator set")
	}
	return opsopt(ops)
}

func (o opsopt) parseOption(p parsectx) parsectx {
	p.ops = string(o)
	return p
}

// ExplicitOperators disallows implicit multiplication. Terms written next to
// each other, as in "2 x" or "2(3)", become a MissingOperatorError, and
// functions must be followed by a bracketed argument list.
func ExplicitOperators() ParseOption {
	return explicitopt{}
}

func (explicitopt) parseOption(p parsectx) parsectx {
	p.explicit = true
	return p
}

// StopOn tells the parser to treat a list of characters as ending the
// expression. Each rune must be a comma, semicolon, or whitespace codepoint.
// Whitespace does not end an expression where a term is expected, e.g. at the
// beginning of an expression or following an operator or bracket. Commas and
// semicolons do not end expressions inside bracketed function argument lists.
//
// StopOn overrides the effect of any previous StopOn in the parsing options,
// including in presets. With no arguments, StopOn produces the default
// termination behavior, which is to parse to EOF.
func StopOn(chars ...rune) ParseOption {
	var o eofopt
	v := make([]rune, 0, len(chars))
	have := func(r rune) bool {
		for _, c := range v {
			if r == c {
				return true
			}
		}
		return false
	}
	for _, r := range chars {
		switch {
		case r == ',':
			o.c = true
		case r == ';':
			o.s = true
		case unicode.IsSpace(r):
			if have(r) {
				continue
			}
			v = append(v, r)
		default:
			panic("calc: cannot stop on " + strconv.QuoteRune(r))
		}
	}
	o.ws = string(v)
	return &o
}

func (o *eofopt) parseOption(p parsectx) parsectx {
	p.ceof = o.c
	p.seof = o.s
	p.wseof = o.ws
	return p
}

// ParsingPreset creates a parsing preset that may be more efficient when using
// the same non-default parsing options for many calls to Parse. A preset
// panics when it would change any option from the default, but it is safe to
// apply other options after a preset.
func ParsingPreset(opts ...ParseOption) ParseOption {
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	if p.funcs != nil {
		// If we've set any functions, add unset default ones now.
		p.ownFuncs(len(globalfuncs))
		for k, v := range globalfuncs {
			if _, ok := p.funcs[k]; !ok {
				p.funcs[k] = v
			}
		}
		p.nodefaults = true
	}
	return &p
}

func (o *parsectx) parseOption(p parsectx) parsectx {
	if p.funcs != nil || p.wseof != "" || p.ceof || p.seof || p.ops != "" || p.explicit {
		panic("calc: preset applied to non-default parse config")
	}
	p.funcs = o.funcs
	p.ownfuncs = false
	p.nodefaults = o.nodefaults
	p.ops = o.ops
	p.explicit = o.explicit
	p.wseof, p.ceof, p.seof = o.wseof, o.ceof, o.seof
	return p
}

var (
	standard   = ParsingPreset(DisableDefaultFuncs(), OnlyOperators("+-*/×÷"), ExplicitOperators())
	scientific = ParsingPreset()
)

// Standard is the grammar of a four-function calculator: numbers, the
// operators + - * / (and × ÷), and brackets. Names are always variables and
// terms must be joined by an operator.
func Standard() ParseOption {
	return standard
}

// Scientific is the full grammar, with exponentiation, implicit
// multiplication, and the default functions.
func Scientific() ParseOption {
	return scientific
}
