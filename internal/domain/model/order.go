package model

import "time"

// OrderStatus describes payment lifecycle.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
)

// Order describes a purchase of one offering through a hosted checkout session.
type Order struct {
	ID                string
	UserID            *string
	CustomerEmail     string
	OfferingID        string
	OfferingName      string
	Amount            int64
	Currency          string
	CheckoutSessionID string
	Status            OrderStatus
	CreatedAt         time.Time
}
