package service

import (
	"math"
	"strconv"
	"strings"
)

// MaxQuantity is the largest value a single float or text quantity
// converts to. It bounds the conversion only; sums of additions are not
// capped.
const MaxQuantity = math.MaxInt32

// Quantity turns any requested quantity into a valid line quantity.
// NaN, infinities and anything below 1 become 1; fractions are floored.
// Every cart entry point goes through here.
func Quantity(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 1
	}
	v = math.Floor(v)
	if v < 1 {
		return 1
	}
	if v > MaxQuantity {
		return MaxQuantity
	}
	return int(v)
}

// ParseQuantity is Quantity for text input such as form fields and CLI
// arguments. Text that is not a number yields 1.
func ParseQuantity(s string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 1
	}
	return Quantity(f)
}

// atLeastOne applies the lower bound of the quantity rule to an int.
func atLeastOne(q int) int {
	if q < 1 {
		return 1
	}
	return q
}
