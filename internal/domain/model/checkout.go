package model

// CheckoutSessionRequest describes a hosted payment flow for one offering.
type CheckoutSessionRequest struct {
	Offering      Offering
	CustomerID    string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
}

// CheckoutSession is the provider's response to a checkout request.
type CheckoutSession struct {
	ID  string
	URL string
}
