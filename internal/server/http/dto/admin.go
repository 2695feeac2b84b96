package dto

import "time"

// IntakeSummary is a review console list row.
type IntakeSummary struct {
	ID            string    `json:"id"`
	OrderID       string    `json:"orderId"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Email         string    `json:"email"`
	CustomerEmail string    `json:"customerEmail"`
	OfferingName  string    `json:"offeringName"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	OrderStatus   string    `json:"orderStatus"`
	CreatedAt     time.Time `json:"createdAt"`
}

// IntakeDetailResponse carries every stored field of an intake.
type IntakeDetailResponse struct {
	IntakeSummary
	SubmissionToken *string `json:"submissionToken,omitempty"`
	Phone           string  `json:"phone"`
	LinkedInURL     string  `json:"linkedin"`
	JobURL          string  `json:"jobUrl"`
	JobDescription  string  `json:"jobDescription"`
	AdditionalNotes string  `json:"additionalNotes"`
	ResumePath      *string `json:"resumePath,omitempty"`
	ResumeURL       string  `json:"resumeUrl,omitempty"`
}

// IntakeUpdateRequest lists editable fields; absent fields are left unchanged.
type IntakeUpdateRequest struct {
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	Email           *string `json:"email"`
	Phone           *string `json:"phone"`
	LinkedInURL     *string `json:"linkedin"`
	JobDescription  *string `json:"jobDescription"`
	AdditionalNotes *string `json:"additionalNotes"`
}
