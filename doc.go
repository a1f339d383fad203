// Package calc implements the expression engine behind a set of calculator
// panels.
//
// Expressions are tokenized and parsed into a small syntax tree, then
// evaluated over arbitrary-precision floats. Nothing is ever executed as code:
// the grammar is numbers, the operators + - * / ^, brackets, and a closed set
// of named functions.
//
// Two grammars are provided. Standard accepts only + - * / and brackets, the
// way a four-function calculator does. Scientific adds exponentiation,
// implicit multiplication, and functions such as sqrt, log, and sin, where
// trigonometric functions work in degrees. In the scientific grammar a
// function applied to a bare term takes that term as its argument, so "sin30"
// is sin(30) and "-2^2" is -(2^2).
//
// A Buffer accumulates key presses the way a calculator display does and
// evaluates them into a Result, formatted to eight decimal places.
package calc
