package dto

import "time"

// CreateOrderRequest payload.
type CreateOrderRequest struct {
	UserName      string `json:"userName"`
	CarName       string `json:"carName"`
	PaymentMethod string `json:"paymentMethod"`
}

// OrderResponse represents a stored order.
type OrderResponse struct {
	ID            string    `json:"id"`
	UserName      string    `json:"userName"`
	CarName       string    `json:"carName"`
	PaymentMethod string    `json:"paymentMethod"`
	Date          time.Time `json:"date"`
}
