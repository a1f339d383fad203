package calc

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// DefaultPlaces is the number of decimal places to which results are rounded.
const DefaultPlaces = 8

// Format formats x rounded to the given number of decimal places. Trailing
// zeros are dropped, as is the decimal point of an integral result, so 4.0
// formats as "4" and 1/3 as "0.33333333". A negative number of places formats
// x with as many digits as its precision needs.
//
// Format never shows more significant digits than x's precision holds. Places
// are dropped as needed to stay within that limit, and an integer part too
// long to hold formats in exponent form, as in "1e+400". At the default precision of 64
// bits, that limit is 18 digits.
func Format(x *big.Float, places int) string {
	if x.IsInf() {
		if x.Signbit() {
			return "-Inf"
		}
		return "+Inf"
	}
	var s string
	sig := sigdigits(x)
	if places < 0 || sig < 1 {
		s = x.Text('f', places)
	} else {
		m := x.Text('e', sig-1)
		k := strings.LastIndexByte(m, 'e')
		e, err := strconv.Atoi(m[k+1:])
		if err != nil {
			panic("calc: bad exponent in " + strconv.Quote(m))
		}
		switch {
		case e+1+places <= sig:
			s = x.Text('f', places)
		case e < sig:
			s = x.Text('f', sig-e-1)
		default:
			mant := m[:k]
			if strings.IndexByte(mant, '.') >= 0 {
				mant = strings.TrimRight(mant, "0")
				mant = strings.TrimSuffix(mant, ".")
			}
			return mant + m[k:]
		}
	}
	if strings.IndexByte(s, '.') >= 0 {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

// sigdigits is the number of decimal digits that survive a round trip through
// x's precision.
func sigdigits(x *big.Float) int {
	if x.Prec() == 0 {
		return 0
	}
	return int(float64(x.Prec()-1) * math.Log10(2))
}

// Round returns x rounded to the given number of decimal places, at x's
// precision. The result is exactly the value that Format displays.
func Round(x *big.Float, places int) *big.Float {
	if x.IsInf() || places < 0 {
		return new(big.Float).Copy(x)
	}
	r, _, err := big.ParseFloat(Format(x, places), 10, x.Prec(), big.ToNearestEven)
	if err != nil {
		// Format only produces decimal numerals.
		panic("calc: formatted number does not parse: " + err.Error())
	}
	return r
}
