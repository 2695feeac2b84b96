package dto

import (
	"strings"
	"unicode"

	"github.com/polkiloo/interviewprep/internal/usecase"
)

// IntakeRequest accepts every field alias used by the intake forms. It binds
// from JSON and from multipart form values alike.
type IntakeRequest struct {
	OrderID         string `json:"orderId" form:"orderId"`
	SubmissionToken string `json:"submissionToken" form:"submissionToken"`
	Token           string `json:"token" form:"token"`

	Name      string `json:"name" form:"name"`
	FirstName string `json:"firstName" form:"firstName"`
	LastName  string `json:"lastName" form:"lastName"`
	Email     string `json:"email" form:"email"`

	Phone       string `json:"phone" form:"phone"`
	PhoneNumber string `json:"phoneNumber" form:"phoneNumber"`

	LinkedIn        string `json:"linkedin" form:"linkedin"`
	LinkedInProfile string `json:"linkedinProfile" form:"linkedinProfile"`
	LinkedInURL     string `json:"linkedinUrl" form:"linkedinUrl"`

	JobURL             string `json:"jobUrl" form:"jobUrl"`
	JobDescriptionLink string `json:"jobDescriptionLink" form:"jobDescriptionLink"`

	JobDescription     string `json:"jobDescription" form:"jobDescription"`
	JobDescriptionText string `json:"jobDescriptionText" form:"jobDescriptionText"`

	AdditionalNotes       string `json:"additionalNotes" form:"additionalNotes"`
	AdditionalInfo        string `json:"additionalInfo" form:"additionalInfo"`
	AdditionalInformation string `json:"additionalInformation" form:"additionalInformation"`
}

// Submission folds aliases into the canonical intake shape.
func (r IntakeRequest) Submission() usecase.IntakeSubmission {
	first, last := strings.TrimSpace(r.FirstName), strings.TrimSpace(r.LastName)
	if first == "" && last == "" {
		first, last = splitName(r.Name)
	}

	return usecase.IntakeSubmission{
		OrderID:         strings.TrimSpace(r.OrderID),
		SubmissionToken: firstNonBlank(r.SubmissionToken, r.Token),
		FirstName:       first,
		LastName:        last,
		Email:           strings.TrimSpace(r.Email),
		Phone:           firstNonBlank(r.Phone, r.PhoneNumber),
		LinkedInURL:     firstNonBlank(r.LinkedIn, r.LinkedInProfile, r.LinkedInURL),
		JobURL:          firstNonBlank(r.JobURL, r.JobDescriptionLink),
		JobDescription:  firstNonBlank(r.JobDescription, r.JobDescriptionText),
		AdditionalNotes: firstNonBlank(r.AdditionalNotes, r.AdditionalInfo, r.AdditionalInformation),
	}
}

// splitName cuts a combined name at the first whitespace run.
func splitName(name string) (string, string) {
	name = strings.TrimSpace(name)
	idx := strings.IndexFunc(name, unicode.IsSpace)
	if idx < 0 {
		return name, ""
	}
	return name[:idx], strings.TrimSpace(name[idx:])
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// IntakeCreatedResponse acknowledges a stored intake.
type IntakeCreatedResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}
