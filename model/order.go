package model

import "time"

// OrderStatus is the delivery state of an order.
type OrderStatus string

const (
	StatusPlaced         OrderStatus = "PLACED"
	StatusPacking        OrderStatus = "PACKING"
	StatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	StatusDelivered      OrderStatus = "DELIVERED"
	StatusCancelled      OrderStatus = "CANCELLED"
)

// OrderStatuses lists every status in lifecycle order.
var OrderStatuses = []OrderStatus{
	StatusPlaced,
	StatusPacking,
	StatusOutForDelivery,
	StatusDelivered,
	StatusCancelled,
}

// Valid reports whether s is one of OrderStatuses.
func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Customer holds the delivery details collected at checkout.
type Customer struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Notes   string `json:"notes,omitempty"`
}

// OrderRequest is what checkout sends to the order collaborator.
type OrderRequest struct {
	Customer Customer       `json:"customer"`
	Items    []CartLineItem `json:"items"`
	Subtotal float64        `json:"subtotal"`
	Shipping float64        `json:"shipping"`
	Total    float64        `json:"total"`
}

type Order struct {
	ID         string         `json:"id"`
	Status     OrderStatus    `json:"status"`
	EtaMinutes int            `json:"etaMinutes"`
	CreatedAt  time.Time      `json:"createdAt"`
	Customer   *Customer      `json:"customer,omitempty"`
	Items      []CartLineItem `json:"items"`
	Subtotal   float64        `json:"subtotal,omitempty"`
	Shipping   float64        `json:"shipping,omitempty"`
	Total      float64        `json:"total"`
}
