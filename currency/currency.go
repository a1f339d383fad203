// Package currency converts amounts between currencies using exchange rates
// fetched from a rate service.
package currency

import (
	"errors"
	"sort"
	"strings"
)

// Currency describes a supported currency.
type Currency struct {
	Code          string // ISO 4217 code
	Symbol        string
	DecimalPlaces int
	Name          string
}

var (
	USD = Currency{Code: "USD", Symbol: "$", DecimalPlaces: 2, Name: "US Dollar"}
	INR = Currency{Code: "INR", Symbol: "₹", DecimalPlaces: 2, Name: "Indian Rupee"}
	EUR = Currency{Code: "EUR", Symbol: "€", DecimalPlaces: 2, Name: "Euro"}
	GBP = Currency{Code: "GBP", Symbol: "£", DecimalPlaces: 2, Name: "British Pound"}
	JPY = Currency{Code: "JPY", Symbol: "¥", DecimalPlaces: 0, Name: "Japanese Yen"}
	AUD = Currency{Code: "AUD", Symbol: "A$", DecimalPlaces: 2, Name: "Australian Dollar"}
	CAD = Currency{Code: "CAD", Symbol: "C$", DecimalPlaces: 2, Name: "Canadian Dollar"}
	CHF = Currency{Code: "CHF", Symbol: "CHF", DecimalPlaces: 2, Name: "Swiss Franc"}
	CNY = Currency{Code: "CNY", Symbol: "¥", DecimalPlaces: 2, Name: "Chinese Yuan"}
)

// Supported lists the currencies offered for conversion, in display order.
var Supported = []Currency{USD, INR, EUR, GBP, JPY, AUD, CAD, CHF, CNY}

var registry = func() map[string]Currency {
	m := make(map[string]Currency, len(Supported))
	for _, c := range Supported {
		m[c.Code] = c
	}
	return m
}()

var (
	// ErrUnknownCurrency is returned for a code that is not supported.
	ErrUnknownCurrency = errors.New("unknown currency")
	// ErrInvalidAmount is returned for an amount that is not a number.
	ErrInvalidAmount = errors.New("Invalid amount")
	// ErrRateNotFound is returned when the rate service has no rate for the
	// target currency.
	ErrRateNotFound = errors.New("conversion rate not found")
)

// Lookup returns the currency with the given code, ignoring case.
func Lookup(code string) (Currency, error) {
	c, ok := registry[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Currency{}, &UnknownError{Code: code}
	}
	return c, nil
}

// Codes returns the supported currency codes in sorted order.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for k := range registry {
		codes = append(codes, k)
	}
	sort.Strings(codes)
	return codes
}

// Next returns the supported currency after code in display order, wrapping
// around. A negative step moves backward.
func Next(code string, step int) string {
	n := len(Supported)
	for i, c := range Supported {
		if c.Code == code {
			return Supported[((i+step)%n+n)%n].Code
		}
	}
	return Supported[0].Code
}

// UnknownError reports an unsupported currency code.
type UnknownError struct {
	Code string
}

func (err *UnknownError) Error() string {
	return "unknown currency " + err.Code
}

func (err *UnknownError) Unwrap() error {
	return ErrUnknownCurrency
}

// NotFoundError reports a currency missing from a rate table.
type NotFoundError struct {
	Base, Code string
}

func (err *NotFoundError) Error() string {
	return "Conversion rate for " + err.Code + " not found."
}

func (err *NotFoundError) Unwrap() error {
	return ErrRateNotFound
}
