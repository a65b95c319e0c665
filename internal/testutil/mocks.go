package testutil

import (
	"context"
	"sync"

	"github.com/nexastore/storefront/internal/domain/checkout"
	"github.com/nexastore/storefront/internal/gateway"
)

// --- Gateway Mock ---

// MockGateway is a scriptable implementation of gateway.Gateway that
// records every call it receives.
type MockGateway struct {
	mu       sync.Mutex
	requests []gateway.InitializeRequest

	InitializeFunc func(ctx context.Context, req gateway.InitializeRequest) (*gateway.InitializeResult, error)
}

func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

func (m *MockGateway) Name() string { return "mock" }

func (m *MockGateway) Initialize(ctx context.Context, req gateway.InitializeRequest) (*gateway.InitializeResult, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.InitializeFunc != nil {
		return m.InitializeFunc(ctx, req)
	}
	return &gateway.InitializeResult{
		Reference:        req.Reference,
		AuthorizationURL: "https://checkout.paystack.com/test",
		AccessCode:       "test_access_code",
	}, nil
}

// Calls returns the number of Initialize calls received.
func (m *MockGateway) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// LastRequest returns the most recent Initialize request, or the zero value.
func (m *MockGateway) LastRequest() gateway.InitializeRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return gateway.InitializeRequest{}
	}
	return m.requests[len(m.requests)-1]
}

// --- Initiation Client Mock ---

// MockInitiationClient is a scriptable checkout.InitiationClient that
// counts calls, for double-submit tests.
type MockInitiationClient struct {
	mu    sync.Mutex
	calls int

	InitiateFunc func(ctx context.Context, req checkout.PurchaseRequest) (*checkout.InitiationResult, error)
}

func (m *MockInitiationClient) Initiate(ctx context.Context, req checkout.PurchaseRequest) (*checkout.InitiationResult, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.InitiateFunc != nil {
		return m.InitiateFunc(ctx, req)
	}
	return &checkout.InitiationResult{
		Success:          true,
		Reference:        "NEXA_TEST_REF",
		AuthorizationURL: "https://checkout.paystack.com/test",
		AccessCode:       "test_access_code",
	}, nil
}

func (m *MockInitiationClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// --- Widget Fake ---

// FakeWidget is a scriptable checkout.WidgetClient. By default it is ready
// immediately and completes successfully echoing the configured reference.
type FakeWidget struct {
	mu       sync.Mutex
	opened   []checkout.WidgetConfig
	ReadyErr error

	OpenFunc func(ctx context.Context, cfg checkout.WidgetConfig) (checkout.WidgetPayload, error)
}

func (f *FakeWidget) Ready(ctx context.Context) error {
	return f.ReadyErr
}

func (f *FakeWidget) Open(ctx context.Context, cfg checkout.WidgetConfig) (checkout.WidgetPayload, error) {
	f.mu.Lock()
	f.opened = append(f.opened, cfg)
	f.mu.Unlock()

	if f.OpenFunc != nil {
		return f.OpenFunc(ctx, cfg)
	}
	return checkout.WidgetPayload{Reference: cfg.Reference, Status: "success"}, nil
}

// Opened returns the widget configurations passed to Open.
func (f *FakeWidget) Opened() []checkout.WidgetConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]checkout.WidgetConfig, len(f.opened))
	copy(out, f.opened)
	return out
}
