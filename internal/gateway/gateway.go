package gateway

import (
	"context"
)

// InitializeRequest is the outbound initialize-transaction call. Amount is
// already in the gateway's minor unit (kobo).
type InitializeRequest struct {
	Email       string
	AmountMinor int64
	Reference   string
	Currency    string
	Metadata    map[string]string
	CallbackURL string
}

// InitializeResult is the authorization handle issued by the gateway.
type InitializeResult struct {
	Reference        string
	AuthorizationURL string
	AccessCode       string
}

// Gateway initializes transactions against an external payment provider.
type Gateway interface {
	// Name returns the gateway name.
	Name() string
	// Initialize creates a transaction at the gateway and returns the
	// handle the embedded widget needs to collect payment.
	Initialize(ctx context.Context, req InitializeRequest) (*InitializeResult, error)
}
