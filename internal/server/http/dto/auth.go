package dto

// AuthRequest describes email/password payload.
type AuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminSetupResponse returns the provisioned admin credentials once.
type AdminSetupResponse struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}
