package model

// CartLineItem is one row of the cart. Name and Price are copied from the
// catalog when the row is created and do not follow later price changes.
type CartLineItem struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Qty   int     `json:"qty"`
}

// CartState is a read-only snapshot of the cart with its derived totals.
type CartState struct {
	Items    []CartLineItem `json:"items"`
	Subtotal float64        `json:"subtotal"`
	Shipping float64        `json:"shipping"`
	Total    float64        `json:"total"`
	Count    int            `json:"count"`
}
