package checkout_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nexastore/storefront/internal/domain/checkout"
	domainErrors "github.com/nexastore/storefront/internal/domain/errors"
	"github.com/nexastore/storefront/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headphones() checkout.ProductContext {
	return checkout.ProductContext{Name: "Wireless Pro Headphones", AmountMinor: 4500000}
}

func johnDoe() checkout.Form {
	return checkout.Form{
		Email:     "a@b.com",
		FirstName: "John",
		LastName:  "Doe",
		Phone:     "+2348000000000",
	}
}

func newController(init *testutil.MockInitiationClient, widget *testutil.FakeWidget) *checkout.Controller {
	return checkout.NewController(init, widget, "pk_test_public", "NGN",
		checkout.WithWidgetPolling(time.Millisecond, 50*time.Millisecond))
}

func TestCheckout_EndToEndSuccess(t *testing.T) {
	init := &testutil.MockInitiationClient{
		InitiateFunc: func(ctx context.Context, req checkout.PurchaseRequest) (*checkout.InitiationResult, error) {
			return &checkout.InitiationResult{
				Success:    true,
				Reference:  "NEXA_1_ABC",
				AccessCode: "ac_1",
			}, nil
		},
	}
	widget := &testutil.FakeWidget{
		OpenFunc: func(ctx context.Context, cfg checkout.WidgetConfig) (checkout.WidgetPayload, error) {
			return checkout.WidgetPayload{Reference: "T1", Status: "success"}, nil
		},
	}
	c := newController(init, widget)

	res, err := c.Checkout(context.Background(), headphones(), johnDoe())
	require.NoError(t, err)
	require.Equal(t, checkout.StateSucceeded, res.State)

	require.NotNil(t, res.Outcome)
	assert.Equal(t, "T1", res.Outcome.Reference)
	assert.Equal(t, "Wireless Pro Headphones", res.Outcome.Product)
	assert.Equal(t, int64(4500000), res.Outcome.AmountMinor)
	assert.Equal(t, "John Doe", res.Outcome.Customer)
	assert.Equal(t, "a@b.com", res.Outcome.Email)

	// Controller is reusable once the attempt completed.
	assert.Equal(t, checkout.StateIdle, c.State())
}

func TestCheckout_WidgetConfigContents(t *testing.T) {
	init := &testutil.MockInitiationClient{
		InitiateFunc: func(ctx context.Context, req checkout.PurchaseRequest) (*checkout.InitiationResult, error) {
			return &checkout.InitiationResult{Success: true, Reference: "NEXA_9_XYZ", AccessCode: "ac_9"}, nil
		},
	}
	widget := &testutil.FakeWidget{}
	c := newController(init, widget)

	_, err := c.Checkout(context.Background(), headphones(), johnDoe())
	require.NoError(t, err)

	opened := widget.Opened()
	require.Len(t, opened, 1)
	cfg := opened[0]
	assert.Equal(t, "pk_test_public", cfg.PublicKey)
	assert.Equal(t, "a@b.com", cfg.Email)
	assert.Equal(t, int64(4500000), cfg.AmountMinor)
	assert.Equal(t, "NGN", cfg.Currency)
	assert.Equal(t, "NEXA_9_XYZ", cfg.Reference)
	assert.Equal(t, "ac_9", cfg.AccessCode)
	assert.Equal(t, "Wireless Pro Headphones", cfg.Metadata["product"])
	assert.Equal(t, "John Doe", cfg.Metadata["customer_name"])
}

func TestCheckout_ValidationFailureMakesNoNetworkCall(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*checkout.Form)
		wantField string
	}{
		{"missing email", func(f *checkout.Form) { f.Email = "" }, "email"},
		{"missing first name", func(f *checkout.Form) { f.FirstName = "" }, "first_name"},
		{"missing last name", func(f *checkout.Form) { f.LastName = "" }, "last_name"},
		{"missing phone", func(f *checkout.Form) { f.Phone = "" }, "phone"},
		{"malformed email", func(f *checkout.Form) { f.Email = "not-an-email" }, "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			init := &testutil.MockInitiationClient{}
			c := newController(init, &testutil.FakeWidget{})

			form := johnDoe()
			tt.mutate(&form)

			_, err := c.Checkout(context.Background(), headphones(), form)
			var ve *domainErrors.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
			assert.Equal(t, 0, init.Calls())
			assert.Equal(t, checkout.StateIdle, c.State())
		})
	}
}

func TestCheckout_InitiationFailureReturnsToIdle(t *testing.T) {
	init := &testutil.MockInitiationClient{
		InitiateFunc: func(ctx context.Context, req checkout.PurchaseRequest) (*checkout.InitiationResult, error) {
			return nil, domainErrors.NewGatewayError("Duplicate reference")
		},
	}
	widget := &testutil.FakeWidget{}
	c := newController(init, widget)

	_, err := c.Checkout(context.Background(), headphones(), johnDoe())
	require.Error(t, err)

	// The gateway's message survives verbatim for the user.
	var ge *domainErrors.GatewayError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, "Duplicate reference", ge.Message)

	assert.Empty(t, widget.Opened())
	assert.Equal(t, checkout.StateIdle, c.State())
}

func TestCheckout_UserClosesWidget(t *testing.T) {
	init := &testutil.MockInitiationClient{}
	widget := &testutil.FakeWidget{
		OpenFunc: func(ctx context.Context, cfg checkout.WidgetConfig) (checkout.WidgetPayload, error) {
			return checkout.WidgetPayload{}, domainErrors.ErrWidgetClosed
		},
	}
	c := newController(init, widget)

	res, err := c.Checkout(context.Background(), headphones(), johnDoe())
	require.NoError(t, err)
	assert.Equal(t, checkout.StateCancelled, res.State)
	assert.Nil(t, res.Outcome)
	assert.Equal(t, checkout.StateIdle, c.State())
}

func TestCheckout_WidgetLoadFailure(t *testing.T) {
	init := &testutil.MockInitiationClient{}
	widget := &testutil.FakeWidget{ReadyErr: errors.New("script blocked")}
	c := newController(init, widget)

	_, err := c.Checkout(context.Background(), headphones(), johnDoe())
	assert.ErrorIs(t, err, domainErrors.ErrWidgetLoad)
	assert.Empty(t, widget.Opened())
	assert.Equal(t, checkout.StateIdle, c.State())
}

func TestCheckout_WidgetLoadTimesOut(t *testing.T) {
	init := &testutil.MockInitiationClient{}
	widget := &testutil.FakeWidget{ReadyErr: domainErrors.ErrWidgetNotReady}
	c := newController(init, widget)

	_, err := c.Checkout(context.Background(), headphones(), johnDoe())
	assert.ErrorIs(t, err, domainErrors.ErrWidgetLoad)
}

func TestCheckout_DoubleSubmitMakesOneInitiationCall(t *testing.T) {
	release := make(chan struct{})
	opened := make(chan struct{})

	init := &testutil.MockInitiationClient{}
	widget := &testutil.FakeWidget{
		OpenFunc: func(ctx context.Context, cfg checkout.WidgetConfig) (checkout.WidgetPayload, error) {
			close(opened)
			<-release
			return checkout.WidgetPayload{Reference: cfg.Reference, Status: "success"}, nil
		},
	}
	c := newController(init, widget)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := c.Checkout(context.Background(), headphones(), johnDoe())
		assert.NoError(t, err)
	}()

	// Second click lands while the first attempt sits in the widget.
	<-opened
	_, err := c.Checkout(context.Background(), headphones(), johnDoe())
	assert.ErrorIs(t, err, domainErrors.ErrCheckoutInFlight)

	close(release)
	wg.Wait()

	assert.Equal(t, 1, init.Calls())
}
