package checkout

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/nexastore/storefront/internal/domain/errors"
)

// emailPattern accepts the standard local@domain shape. Matches what the
// checkout form enforces before any network call is made.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like a deliverable address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Amount represents a monetary amount in the gateway's smallest currency
// unit (kobo for NGN).
type Amount struct {
	ValueMinor int64
	Currency   string
}

// String returns a human-readable representation of the amount.
func (a Amount) String() string {
	whole := a.ValueMinor / 100
	frac := a.ValueMinor % 100
	if frac < 0 {
		frac = -frac
	}
	return fmt.Sprintf("%d.%02d %s", whole, frac, a.Currency)
}

// PurchaseRequest is one checkout attempt as submitted to the initiation
// service. Immutable once constructed from form state.
type PurchaseRequest struct {
	Email       string
	AmountMinor int64
	Metadata    map[string]string
}

// InitiationResult is the authorization handle returned by the initiation
// service. Exactly one of (Reference, AuthorizationURL, AccessCode) or
// ErrorMessage is populated, depending on Success.
type InitiationResult struct {
	Success          bool
	Reference        string
	AuthorizationURL string
	AccessCode       string
	ErrorMessage     string
}

// TransactionOutcome is the normalized record of a gateway-confirmed
// payment, used for display only. Nothing is persisted.
type TransactionOutcome struct {
	Reference   string
	Product     string
	AmountMinor int64
	Customer    string
	Email       string
	Phone       string
	CompletedAt time.Time
}

// Form holds the customer input collected by the checkout form.
type Form struct {
	Email     string
	FirstName string
	LastName  string
	Phone     string
	Address   string
}

// Validate runs the field checks in display order and returns the first
// failure, so the user is told exactly which field to fix.
func (f Form) Validate() error {
	if strings.TrimSpace(f.Email) == "" {
		return errors.NewValidationError("email", "email is required")
	}
	if strings.TrimSpace(f.FirstName) == "" {
		return errors.NewValidationError("first_name", "first name is required")
	}
	if strings.TrimSpace(f.LastName) == "" {
		return errors.NewValidationError("last_name", "last name is required")
	}
	if strings.TrimSpace(f.Phone) == "" {
		return errors.NewValidationError("phone", "phone number is required")
	}
	if !ValidEmail(f.Email) {
		return errors.NewValidationError("email", "must be a valid email address")
	}
	return nil
}

// CustomerName joins first and last name for display and gateway metadata.
func (f Form) CustomerName() string {
	return strings.TrimSpace(f.FirstName + " " + f.LastName)
}
