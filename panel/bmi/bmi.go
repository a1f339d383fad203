// Package bmi computes body mass index from metric weight and height.
package bmi

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidInput is returned for weights or heights that are not positive
// numbers.
var ErrInvalidInput = errors.New("Invalid Input")

// Category is a BMI classification.
type Category string

const (
	Underweight Category = "Underweight"
	Normal      Category = "Normal weight"
	Overweight  Category = "Overweight"
	Obese       Category = "Obese"
)

// Classify returns the category of a BMI value.
func Classify(bmi float64) Category {
	switch {
	case bmi < 18.5:
		return Underweight
	case bmi < 25:
		return Normal
	case bmi < 30:
		return Overweight
	default:
		return Obese
	}
}

// Result is a computed BMI.
type Result struct {
	// BMI is rounded to two decimal places.
	BMI      float64
	Category Category
}

func (r Result) String() string {
	return fmt.Sprintf("BMI: %s (%s)", strconv.FormatFloat(r.BMI, 'f', -1, 64), r.Category)
}

// Compute returns the BMI for a weight in kilograms and a height in
// centimetres. The category is decided from the rounded value.
func Compute(weightKg, heightCm float64) (Result, error) {
	if !(weightKg > 0) || !(heightCm > 0) || math.IsInf(weightKg, 0) || math.IsInf(heightCm, 0) {
		return Result{}, ErrInvalidInput
	}
	m := heightCm / 100
	v := math.Round(weightKg/(m*m)*100) / 100
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return Result{}, ErrInvalidInput
	}
	return Result{BMI: v, Category: Classify(v)}, nil
}

// Parse computes the BMI from text fields as entered in a form.
func Parse(weight, height string) (Result, error) {
	w, err := strconv.ParseFloat(strings.TrimSpace(weight), 64)
	if err != nil {
		return Result{}, fmt.Errorf("%w: weight %q", ErrInvalidInput, weight)
	}
	h, err := strconv.ParseFloat(strings.TrimSpace(height), 64)
	if err != nil {
		return Result{}, fmt.Errorf("%w: height %q", ErrInvalidInput, height)
	}
	return Compute(w, h)
}
