package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/nexastore/storefront/internal/domain/checkout"
	domainErrors "github.com/nexastore/storefront/internal/domain/errors"
	"github.com/nexastore/storefront/internal/gateway"
	"github.com/nexastore/storefront/internal/registry"
	"github.com/nexastore/storefront/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupInitiationService(gw *testutil.MockGateway) *InitiationService {
	return NewInitiationService(
		testutil.NewTestPaystackConfig(),
		"NEXA",
		gw,
		checkout.NewGenerator(),
		registry.NewMemory(time.Hour),
		testutil.NewTestMetrics(),
		zerolog.Nop(),
	)
}

func TestInitiate_Success(t *testing.T) {
	gw := testutil.NewMockGateway()
	gw.InitializeFunc = func(ctx context.Context, req gateway.InitializeRequest) (*gateway.InitializeResult, error) {
		return &gateway.InitializeResult{
			Reference:        "R1",
			AuthorizationURL: "https://x",
			AccessCode:       "ac_1",
		}, nil
	}
	svc := setupInitiationService(gw)

	res, err := svc.Initiate(context.Background(), testutil.NewTestPurchase())
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "R1", res.Reference) // gateway echo is authoritative
	assert.Equal(t, "https://x", res.AuthorizationURL)
	assert.Equal(t, "ac_1", res.AccessCode)

	sent := gw.LastRequest()
	assert.Equal(t, "a@b.com", sent.Email)
	assert.Equal(t, int64(4500000), sent.AmountMinor)
	assert.Equal(t, "NGN", sent.Currency)
	assert.Equal(t, "http://localhost:3000/success", sent.CallbackURL)
	assert.True(t, strings.HasPrefix(sent.Reference, "NEXA_"))
}

func TestInitiate_AmountBelowMinimum(t *testing.T) {
	gw := testutil.NewMockGateway()
	svc := setupInitiationService(gw)

	req := testutil.NewTestPurchase()
	req.AmountMinor = 50 // minimum is 100

	_, err := svc.Initiate(context.Background(), req)

	var ve *domainErrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "amount", ve.Field)
	assert.Equal(t, 0, gw.Calls(), "no outbound gateway call may be made")
}

func TestInitiate_InvalidEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
	}{
		{"empty", ""},
		{"not an address", "not-an-email"},
		{"missing domain dot", "a@b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := testutil.NewMockGateway()
			svc := setupInitiationService(gw)

			req := testutil.NewTestPurchase()
			req.Email = tt.email

			_, err := svc.Initiate(context.Background(), req)

			var ve *domainErrors.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, "email", ve.Field)
			assert.Equal(t, 0, gw.Calls())
		})
	}
}

func TestInitiate_MissingSecretKey(t *testing.T) {
	gw := testutil.NewMockGateway()
	svc := setupInitiationService(gw)
	svc.cfg.SecretKey = ""

	_, err := svc.Initiate(context.Background(), testutil.NewTestPurchase())
	assert.ErrorIs(t, err, domainErrors.ErrMissingCredentials)
	assert.Equal(t, 0, gw.Calls())
}

func TestInitiate_GatewayRejected_NoRetry(t *testing.T) {
	gw := testutil.NewMockGateway()
	gw.InitializeFunc = func(ctx context.Context, req gateway.InitializeRequest) (*gateway.InitializeResult, error) {
		return nil, domainErrors.NewGatewayError("Duplicate reference")
	}
	svc := setupInitiationService(gw)

	_, err := svc.Initiate(context.Background(), testutil.NewTestPurchase())

	var ge *domainErrors.GatewayError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, "Duplicate reference", ge.Message)
	assert.Equal(t, 1, gw.Calls(), "a decline is terminal, no retry")
}

func TestInitiate_TransportFailure_NoRetry(t *testing.T) {
	gw := testutil.NewMockGateway()
	gw.InitializeFunc = func(ctx context.Context, req gateway.InitializeRequest) (*gateway.InitializeResult, error) {
		return nil, domainErrors.ErrGatewayUnavailable
	}
	svc := setupInitiationService(gw)

	_, err := svc.Initiate(context.Background(), testutil.NewTestPurchase())
	assert.ErrorIs(t, err, domainErrors.ErrGatewayUnavailable)
	assert.Equal(t, 1, gw.Calls())
}

func TestInitiate_FreshReferencePerAttempt(t *testing.T) {
	gw := testutil.NewMockGateway()
	svc := setupInitiationService(gw)

	refs := make(map[string]struct{})
	for i := 0; i < 5; i++ {
		_, err := svc.Initiate(context.Background(), testutil.NewTestPurchase())
		require.NoError(t, err)
		refs[gw.LastRequest().Reference] = struct{}{}
	}
	assert.Len(t, refs, 5, "every attempt must mint a new reference")
}
