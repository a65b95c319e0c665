package controller

// --- Request DTOs ---
// These DTOs handle HTTP/JSON concerns. Amount arrives in the store's
// display currency (whole naira); the controller converts to the gateway's
// minor unit before touching business logic.

// InitiateRequest holds the input for initializing a payment.
type InitiateRequest struct {
	Email    string            `json:"email" validate:"required,email"`
	Amount   int64             `json:"amount" validate:"required,gt=0"`
	Metadata map[string]string `json:"metadata"`
}

// --- Response DTOs ---

// InitiateResponse represents a successful initiation in API responses.
type InitiateResponse struct {
	Success          bool   `json:"success"`
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Message          string `json:"message,omitempty"`
}

// OutboundIPResponse represents the diagnostics lookup result.
type OutboundIPResponse struct {
	OutboundIP string            `json:"outbound_ip"`
	Headers    map[string]string `json:"headers"`
	Note       string            `json:"note"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}
