package service

import (
	"math"

	"retro-accessories/model"
)

const (
	shippingRate  = 0.08
	shippingFloor = 3.50
	shippingCap   = 9.99
)

// Shipping returns the delivery charge for a subtotal: free for an empty
// cart, otherwise 8% bounded to [3.50, 9.99].
func Shipping(subtotal float64) float64 {
	if subtotal == 0 {
		return 0
	}
	return math.Min(shippingCap, math.Max(shippingFloor, subtotal*shippingRate))
}

// Totals builds a CartState from items. Sums run in item order so the
// result is the same on every platform.
func Totals(items []model.CartLineItem) model.CartState {
	st := model.CartState{Items: items}
	for _, it := range items {
		// the conversion rounds the product, so no fused multiply-add
		st.Subtotal += float64(it.Price * float64(it.Qty))
		st.Count += it.Qty
	}
	st.Shipping = Shipping(st.Subtotal)
	st.Total = st.Subtotal + st.Shipping
	return st
}
