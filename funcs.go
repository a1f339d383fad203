package calc

import (
	"errors"
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a function from reals to reals. Functions may but generally should
// not look up variables. The function should set r to its result and should
// not use the value of r otherwise.
type Func interface {
	// Call evaluates the function. The function arguments are passed in invoc.
	// semis is the indices of arguments which are preceded by semicolons.
	// The function may but generally should not look up variables. The
	// function must set r to its result and should not use the value of r
	// otherwise. invoc has a length for which CanCall returned true. Call may
	// modify the elements of invoc.
	Call(ctx *Context, invoc []*big.Float, semis []int, r *big.Float) error

	// CanCall returns whether the function can be called with n arguments.
	// This controls how the expression parser handles instances of this
	// function:
	//
	// 	1.	If a bracketed list of n > 0 expressions follows a function, the
	//		parser treats it as an argument list if CanCall(n). (If n is 1 and
	//		!CanCall(1) and CanCall(0), then the list is a multiplication;
	//		otherwise, it is rejected.)
	//
	// 	2.	If a bare term follows a function and CanCall(1), then the parser
	//		treats the term as an argument to the function. E.g., "sqrt 9" is
	//		parsed as "sqrt(9)". (If !CanCall(1), then it is a multiplication.)
	CanCall(n int) bool
}

// globalfuncs is the closed set of functions in the scientific grammar.
// Trigonometric functions take and return degrees.
var globalfuncs = map[string]Func{
	"sqrt": Monadic((*big.Float).Sqrt),
	"log":  logarithm{},
	"ln":   Monadic(ln),
	"exp":  Monadic(bigfloat.Exp),

	"sin":  Monadic(degrees(math.Sin)),
	"cos":  Monadic(degrees(math.Cos)),
	"tan":  Monadic(degrees(math.Tan)),
	"asin": Monadic(arcdegrees(math.Asin)),
	"acos": Monadic(arcdegrees(math.Acos)),
	"atan": Monadic(arcdegrees(math.Atan)),

	// constants
	"pi": Niladic(bigfloat.Pi),
	"e": Niladic(func(out *big.Float) *big.Float {
		var one big.Float
		one.SetFloat64(1)
		return bigfloat.Exp(out, &one)
	}),
}

// FuncNames returns the names of the default functions in sorted order.
func FuncNames() []string {
	names := make([]string, 0, len(globalfuncs))
	for k := range globalfuncs {
		names = append(names, k)
	}
	sortstrs(names)
	return names
}

func ln(out, in *big.Float) *big.Float {
	if in.Sign() <= 0 {
		panic(&DomainError{X: new(big.Float).Copy(in), Arg: 1, Func: "ln"})
	}
	return bigfloat.Log(out, in)
}

// degrees adapts a float64 trigonometric function to take its argument in
// degrees. The angle is reduced modulo a full turn before conversion so that
// large angles keep their precision.
func degrees(f func(float64) float64) func(out, in *big.Float) *big.Float {
	return func(out, in *big.Float) *big.Float {
		x, _ := in.Float64()
		y := f(math.Mod(x, 360) * math.Pi / 180)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			panic(&DomainError{X: new(big.Float).Copy(in), Arg: 1})
		}
		return out.SetFloat64(y)
	}
}

// arcdegrees adapts a float64 inverse trigonometric function to give its
// result in degrees.
func arcdegrees(f func(float64) float64) func(out, in *big.Float) *big.Float {
	return func(out, in *big.Float) *big.Float {
		x, _ := in.Float64()
		y := f(x)
		if math.IsNaN(y) {
			panic(&DomainError{X: new(big.Float).Copy(in), Arg: 1})
		}
		return out.SetFloat64(y * 180 / math.Pi)
	}
}

// logarithm is log(x) in base 10 or log(x, b) in base b.
type logarithm struct{}

func (logarithm) Call(ctx *Context, invoc []*big.Float, semis []int, r *big.Float) error {
	x := invoc[0]
	if x.Sign() <= 0 {
		return &DomainError{X: new(big.Float).Copy(x), Arg: 1, Func: "log"}
	}
	base := new(big.Float).SetPrec(ctx.Prec()).SetInt64(10)
	if len(invoc) == 2 {
		base.Set(invoc[1])
		if base.Sign() <= 0 || base.Cmp(big.NewFloat(1)) == 0 {
			return &DomainError{X: new(big.Float).Copy(base), Arg: 2, Func: "log"}
		}
	}
	r.SetPrec(ctx.Prec())
	bigfloat.Log(r, x)
	bigfloat.Log(base, base)
	r.Quo(r, base)
	return nil
}

func (logarithm) CanCall(n int) bool {
	return n == 1 || n == 2
}

type monadic struct {
	f func(out, in *big.Float) *big.Float
}

func (m monadic) Call(ctx *Context, invoc []*big.Float, semis []int, r *big.Float) (err error) {
	in := invoc[0]
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		perr, ok := p.(error)
		if !ok {
			panic(p)
		}
		var dom *DomainError
		switch {
		case errors.As(perr, &dom):
			err = dom
		case errors.As(perr, new(big.ErrNaN)):
			err = &DomainError{X: new(big.Float).Copy(in), Arg: 1}
		default:
			panic(p)
		}
	}()
	r.SetPrec(ctx.Prec())
	m.f(r, in)
	if r.IsInf() {
		return &DomainError{X: new(big.Float).Copy(in), Arg: 1}
	}
	return nil
}

func (m monadic) CanCall(n int) bool {
	return n == 1
}

// Monadic wraps a function of one variable into a Func. f must set out to its
// result, to the precision of in; its return value is always ignored. If f is
// called on an argument outside f's domain, it should panic with a
// *DomainError or an error of type big.ErrNaN, or that unwraps to either. An
// infinite result is also reported as a domain error.
func Monadic(f func(out, in *big.Float) *big.Float) Func {
	return monadic{f}
}

type niladic struct {
	f func(out *big.Float) *big.Float
}

func (n niladic) Call(ctx *Context, invoc []*big.Float, semis []int, r *big.Float) (err error) {
	r.SetPrec(ctx.Prec())
	n.f(r)
	return nil
}

func (n niladic) CanCall(k int) bool {
	return k == 0
}

// Niladic wraps a function of zero variables, generally a function which
// computes a constant, into a Func. f must set out to its result; its return
// value is always ignored. Unlike Monadic, the wrapped function is expected
// never to panic.
func Niladic(f func(out *big.Float) *big.Float) Func {
	return niladic{f}
}

// DomainError is an error returned when a function or operator is applied to
// arguments outside its domain, including division by zero.
type DomainError struct {
	// X is the out-of-domain argument.
	X *big.Float
	// Arg is the 1-based index of the argument.
	Arg int
	// Func is a name identifying the function.
	Func string
}

func (err *DomainError) Error() string {
	r := "value outside domain"
	if err.X != nil {
		r = err.X.Text('g', 10) + " outside domain"
	}
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}
