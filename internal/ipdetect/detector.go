package ipdetect

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/nexastore/storefront/pkg/retry"
)

const defaultEndpoint = "https://api.ipify.org?format=json"

// Detector resolves this server's outbound IP so operators can add it to
// the gateway's allow-list. The lookup is a plain idempotent GET, so unlike
// the initiation call it is safe to retry.
type Detector struct {
	client   *resty.Client
	endpoint string
	retryCfg retry.Config
}

// Option customizes a Detector.
type Option func(*Detector)

// WithEndpoint overrides the lookup service URL, used by tests.
func WithEndpoint(url string) Option {
	return func(d *Detector) { d.endpoint = url }
}

// New creates a Detector with the given per-request timeout.
func New(timeout time.Duration, opts ...Option) *Detector {
	d := &Detector{
		client:   resty.New().SetTimeout(timeout),
		endpoint: defaultEndpoint,
		retryCfg: retry.DefaultConfig(),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// OutboundIP returns the server's public outbound address.
func (d *Detector) OutboundIP(ctx context.Context) (string, error) {
	type ipifyResponse struct {
		IP string `json:"ip"`
	}

	return retry.DoWithResult(ctx, d.retryCfg, func() (string, error) {
		resp, err := d.client.R().SetContext(ctx).Get(d.endpoint)
		if err != nil {
			return "", fmt.Errorf("lookup outbound ip: %w", err)
		}
		if resp.IsError() {
			return "", fmt.Errorf("lookup outbound ip: status %d", resp.StatusCode())
		}

		var parsed ipifyResponse
		if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
			return "", fmt.Errorf("decode outbound ip response: %w", err)
		}
		if parsed.IP == "" {
			return "", fmt.Errorf("outbound ip response missing address")
		}
		return parsed.IP, nil
	})
}
