package model

import "time"

// Intake holds applicant details collected after payment.
type Intake struct {
	ID              string
	OrderID         string
	SubmissionToken *string
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	LinkedInURL     string
	ResumePath      *string
	JobURL          string
	JobDescription  string
	AdditionalNotes string
	CreatedAt       time.Time
}

// FullName joins first and last name.
func (i Intake) FullName() string {
	switch {
	case i.FirstName == "":
		return i.LastName
	case i.LastName == "":
		return i.FirstName
	default:
		return i.FirstName + " " + i.LastName
	}
}

// IntakeWithOrder is a review console row.
type IntakeWithOrder struct {
	Intake Intake
	Order  Order
}

// IntakeUpdate lists console-editable fields; nil fields are left unchanged.
type IntakeUpdate struct {
	FirstName       *string
	LastName        *string
	Email           *string
	Phone           *string
	LinkedInURL     *string
	JobDescription  *string
	AdditionalNotes *string
}

// Empty reports whether the update carries no changes.
func (u IntakeUpdate) Empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Email == nil && u.Phone == nil &&
		u.LinkedInURL == nil && u.JobDescription == nil && u.AdditionalNotes == nil
}
