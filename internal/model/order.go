package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the order's single persisted state field.
type OrderStatus string

const (
	// OrderPending is the state between checkout initiation and the
	// gateway callback. Pending orders are deleted on payment failure.
	OrderPending OrderStatus = "pending"
	// OrderProcessing means payment succeeded and fulfilment can start.
	OrderProcessing OrderStatus = "processing"
)

// Order represents a customer order created at checkout initiation.
type Order struct {
	ID            int64       `json:"id" db:"id"`
	PhoneNumber   string      `json:"phone_number" db:"phone_number"`
	FullName      string      `json:"full_name" db:"full_name"`
	Email         string      `json:"email" db:"email"`
	Address       string      `json:"address" db:"address"`
	City          string      `json:"city" db:"city"`
	State         string      `json:"state" db:"state"`
	PinCode       string      `json:"pin_code" db:"pin_code"`
	DeliveryType  string      `json:"delivery_type" db:"delivery_type"`
	PaymentMethod string      `json:"payment_method" db:"payment_method"`
	Subtotal      float64     `json:"subtotal" db:"subtotal"`
	Shipping      float64     `json:"shipping" db:"shipping"`
	Total         float64     `json:"total" db:"total"`
	Status        OrderStatus `json:"status" db:"status"`
	CreatedAt     time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time   `json:"updatedAt" db:"updated_at"`
}

// OrderItem is a denormalised snapshot of one line at checkout time, immune
// to later catalogue changes. ItemID is 0 for add-ons.
type OrderItem struct {
	ID       uuid.UUID `json:"-" db:"id"`
	OrderID  int64     `json:"-" db:"order_id"`
	ItemType ItemType  `json:"item_type" db:"item_type"`
	ItemID   int64     `json:"item_id" db:"item_id"`
	Title    string    `json:"title" db:"title"`
	Price    float64   `json:"price" db:"price"`
	Quantity int       `json:"quantity" db:"quantity"`
	ImageURL string    `json:"image" db:"image_url"`
}

// CheckoutRequest carries the customer details posted at checkout.
type CheckoutRequest struct {
	FullName      string `json:"fullname"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Pin           string `json:"pin"`
	Delivery      string `json:"delivery"`
	PaymentMethod string `json:"payment_method"`
}

// CheckoutResponse hands the client everything it needs for the gateway
// auto-submit redirect.
type CheckoutResponse struct {
	Success    bool              `json:"success"`
	PayuURL    string            `json:"payu_url"`
	PayuParams map[string]string `json:"payu_params"`
}

// PaymentResult is the outcome of a gateway callback.
type PaymentResult struct {
	Succeeded bool    `json:"succeeded"`
	OrderID   int64   `json:"order_id,omitempty"`
	Total     float64 `json:"total,omitempty"`
	Status    string  `json:"status,omitempty"`
	Message   string  `json:"message,omitempty"`
}
