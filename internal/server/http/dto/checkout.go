package dto

import "time"

// CheckoutRequest selects an offering to purchase.
type CheckoutRequest struct {
	OfferingID string `json:"offeringId"`
}

// CheckoutResponse carries the hosted payment page address.
type CheckoutResponse struct {
	RedirectURL string `json:"redirectUrl"`
}

// OfferingResponse is a catalog entry for the pricing section.
type OfferingResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Price    string `json:"price"`
}

// LookupRequest identifies an order by its checkout session reference.
type LookupRequest struct {
	SessionReference string `json:"sessionReference"`
	SessionID        string `json:"sessionId"`
}

// Reference returns the first non-empty reference alias.
func (r LookupRequest) Reference() string {
	return firstNonBlank(r.SessionReference, r.SessionID)
}

// OrderResponse is the public view of an order.
type OrderResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	OfferingName string    `json:"offeringName"`
	Amount       int64     `json:"amount"`
	Currency     string    `json:"currency"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// LookupResponse wraps the resolved order.
type LookupResponse struct {
	Order OrderResponse `json:"order"`
}
