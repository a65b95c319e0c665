package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	domainErrors "github.com/nexastore/storefront/internal/domain/errors"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

const initializePath = "/transaction/initialize"

// initializeResponse mirrors the gateway's wire format:
// {status, message, data: {authorization_url, access_code, reference}}.
type initializeResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

// Paystack calls the Paystack transaction API. Initialize is never retried
// here: the amount is monetary and a blind retry could double-charge when
// the first call succeeded but the response was lost. A fresh attempt must
// come from a fresh user action with a fresh reference.
type Paystack struct {
	client  *resty.Client
	breaker *gobreaker.CircuitBreaker[*initializeResponse]
	logger  zerolog.Logger
}

// NewPaystack creates a Paystack client authenticated with the given secret
// key. The timeout bounds the whole initialize call.
func NewPaystack(baseURL, secretKey string, timeout time.Duration, logger zerolog.Logger) *Paystack {
	client := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(secretKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	breaker := gobreaker.NewCircuitBreaker[*initializeResponse](gobreaker.Settings{
		Name:        "paystack",
		MaxRequests: 10,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 10 && failureRatio >= 0.6
		},
	})

	return &Paystack{client: client, breaker: breaker, logger: logger}
}

func (p *Paystack) Name() string { return "paystack" }

// Initialize creates a transaction at Paystack. A structured decline comes
// back as a GatewayError carrying the gateway's message verbatim; transport
// and parse failures come back as ErrGatewayUnavailable with the detail
// logged here and never forwarded to the caller.
func (p *Paystack) Initialize(ctx context.Context, req InitializeRequest) (*InitializeResult, error) {
	body := map[string]any{
		"email":        req.Email,
		"amount":       req.AmountMinor,
		"reference":    req.Reference,
		"currency":     req.Currency,
		"metadata":     req.Metadata,
		"callback_url": req.CallbackURL,
	}

	parsed, err := p.breaker.Execute(func() (*initializeResponse, error) {
		resp, err := p.client.R().
			SetContext(ctx).
			SetBody(body).
			Post(initializePath)
		if err != nil {
			return nil, fmt.Errorf("post %s: %w", initializePath, err)
		}
		if resp.StatusCode() >= http.StatusInternalServerError {
			return nil, fmt.Errorf("gateway returned %d", resp.StatusCode())
		}

		var out initializeResponse
		if err := json.Unmarshal(resp.Body(), &out); err != nil {
			return nil, fmt.Errorf("decode gateway response: %w", err)
		}
		return &out, nil
	})
	if err != nil {
		p.logger.Error().
			Err(err).
			Str("reference", req.Reference).
			Msg("paystack initialize transport failure")
		return nil, domainErrors.ErrGatewayUnavailable
	}

	if !parsed.Status {
		p.logger.Warn().
			Str("reference", req.Reference).
			Str("message", parsed.Message).
			Msg("paystack rejected initialization")
		return nil, domainErrors.NewGatewayError(parsed.Message)
	}

	if parsed.Data.AuthorizationURL == "" && parsed.Data.AccessCode == "" {
		p.logger.Error().
			Str("reference", req.Reference).
			Msg("paystack success response missing authorization data")
		return nil, domainErrors.ErrGatewayUnavailable
	}

	// The gateway's echoed reference is authoritative; fall back to the one
	// that was sent only when the echo is empty.
	ref := parsed.Data.Reference
	if ref == "" {
		ref = req.Reference
	}

	return &InitializeResult{
		Reference:        ref,
		AuthorizationURL: parsed.Data.AuthorizationURL,
		AccessCode:       parsed.Data.AccessCode,
	}, nil
}
