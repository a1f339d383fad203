package tui

import (
	"github.com/zephyrtronium/calc/currency"
)

// conversionMsg carries the outcome of a rate fetch and conversion.
type conversionMsg struct {
	input string
	conv  currency.Conversion
	err   error
}

// recordedMsg reports that a history entry was written.
type recordedMsg struct {
	panel string
	err   error
}
