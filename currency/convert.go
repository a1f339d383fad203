package currency

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
)

// Conversion is the result of converting an amount.
type Conversion struct {
	Amount float64
	From   string
	To     string
	Rate   float64
	// Result is rounded to four decimal places.
	Result float64
}

func (c Conversion) String() string {
	return fmt.Sprintf("%s %s = %s %s", formatAmount(c.Amount), c.From, formatAmount(c.Result), c.To)
}

func formatAmount(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// Converter converts amounts using rates from a source, caching rate tables.
type Converter struct {
	src   RateSource
	cache *Cache
	log   *slog.Logger
}

// NewConverter creates a converter. cache may be nil to fetch rates on every
// conversion.
func NewConverter(src RateSource, cache *Cache, log *slog.Logger) *Converter {
	if log == nil {
		log = slog.Default()
	}
	return &Converter{src: src, cache: cache, log: log}
}

// Rates returns the rate table for base, from the cache when possible.
func (c *Converter) Rates(ctx context.Context, base string) (*Rates, error) {
	if c.cache != nil {
		if r, ok := c.cache.Get(base); ok {
			c.log.Debug("rate cache hit", "base", base)
			return r, nil
		}
	}
	r, err := c.src.Rates(ctx, base)
	if err != nil {
		return nil, err
	}
	c.log.Debug("fetched rates", "base", base, "count", len(r.Rates))
	if c.cache != nil {
		c.cache.Set(r)
	}
	return r, nil
}

// Convert converts amount from one currency to another.
func (c *Converter) Convert(ctx context.Context, amount float64, from, to string) (Conversion, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Conversion{}, ErrInvalidAmount
	}
	f, err := Lookup(from)
	if err != nil {
		return Conversion{}, err
	}
	t, err := Lookup(to)
	if err != nil {
		return Conversion{}, err
	}
	rates, err := c.Rates(ctx, f.Code)
	if err != nil {
		return Conversion{}, err
	}
	rate, err := rates.Rate(t.Code)
	if err != nil {
		return Conversion{}, err
	}
	return Conversion{
		Amount: amount,
		From:   f.Code,
		To:     t.Code,
		Rate:   rate,
		Result: math.Round(amount*rate*1e4) / 1e4,
	}, nil
}

// ConvertString is like Convert but parses the amount as entered in a form.
func (c *Converter) ConvertString(ctx context.Context, amount, from, to string) (Conversion, error) {
	a, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil {
		return Conversion{}, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	return c.Convert(ctx, a, from, to)
}

// Message returns the text a panel shows for an error from a conversion.
func Message(err error) string {
	var nf *NotFoundError
	switch {
	case errors.As(err, &nf):
		return nf.Error()
	case errors.Is(err, ErrInvalidAmount):
		return ErrInvalidAmount.Error()
	default:
		return "Conversion Failed"
	}
}
