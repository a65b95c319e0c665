package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	domainErrors "github.com/nexastore/storefront/internal/domain/errors"
)

// State is the checkout controller's position in its state machine.
type State string

const (
	StateIdle           State = "idle"
	StateValidating     State = "validating"
	StateSubmitting     State = "submitting"
	StateAwaitingWidget State = "awaiting_widget"
	StateSucceeded      State = "succeeded"
	StateCancelled      State = "cancelled"
	StateFailed         State = "failed"
)

const (
	defaultWidgetPollInterval = 100 * time.Millisecond
	defaultWidgetLoadTimeout  = 10 * time.Second
)

// Controller drives one checkout attempt end to end:
// Idle → Validating → Submitting → AwaitingWidget → {Succeeded, Cancelled,
// Failed}, with the failure states returning to Idle so the user can
// resubmit with the form contents intact. At most one attempt may be in
// flight; a concurrent Checkout call fails fast without minting a
// reference or touching the network.
type Controller struct {
	initiation InitiationClient
	widget     WidgetClient
	publicKey  string
	currency   string

	pollInterval time.Duration
	loadTimeout  time.Duration

	mu       sync.Mutex
	state    State
	inFlight bool
}

// ControllerOption customizes a Controller.
type ControllerOption func(*Controller)

// WithWidgetPolling overrides how the controller waits for the widget
// asset to load.
func WithWidgetPolling(interval, timeout time.Duration) ControllerOption {
	return func(c *Controller) {
		c.pollInterval = interval
		c.loadTimeout = timeout
	}
}

// NewController creates a checkout controller over the given ports.
func NewController(initiation InitiationClient, widget WidgetClient, publicKey, currency string, opts ...ControllerOption) *Controller {
	c := &Controller{
		initiation:   initiation,
		widget:       widget,
		publicKey:    publicKey,
		currency:     currency,
		pollInterval: defaultWidgetPollInterval,
		loadTimeout:  defaultWidgetLoadTimeout,
		state:        StateIdle,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// State returns the controller's current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Result is the terminal outcome of one checkout attempt that reached the
// widget: either Succeeded with a normalized outcome, or Cancelled when
// the user closed the widget without paying.
type Result struct {
	State   State
	Outcome *TransactionOutcome
}

// Checkout runs one attempt for the given product and form. Errors leave
// the controller back in Idle; the caller keeps the form contents, so
// nothing is lost on failure. Cancellation by the user is not an error:
// it comes back as a Cancelled result.
func (c *Controller) Checkout(ctx context.Context, product ProductContext, form Form) (*Result, error) {
	if err := c.begin(); err != nil {
		return nil, err
	}
	defer c.finish()

	c.setState(StateValidating)
	if err := form.Validate(); err != nil {
		c.setState(StateIdle)
		return nil, err
	}

	c.setState(StateSubmitting)
	res, err := c.initiation.Initiate(ctx, PurchaseRequest{
		Email:       form.Email,
		AmountMinor: product.AmountMinor,
		Metadata: map[string]string{
			"product_name":  product.Name,
			"customer_name": form.CustomerName(),
			"phone":         form.Phone,
			"address":       form.Address,
		},
	})
	if err != nil {
		c.setState(StateIdle)
		return nil, err
	}

	c.setState(StateAwaitingWidget)
	if err := c.awaitWidget(ctx); err != nil {
		c.setState(StateIdle)
		return nil, err
	}

	payload, err := c.widget.Open(ctx, WidgetConfig{
		PublicKey:   c.publicKey,
		Email:       form.Email,
		AmountMinor: product.AmountMinor,
		Currency:    c.currency,
		Reference:   res.Reference,
		AccessCode:  res.AccessCode,
		Metadata: map[string]string{
			"product":       product.Name,
			"customer_name": form.CustomerName(),
		},
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrWidgetClosed) {
			// User abandoned; there is nothing to confirm server-side.
			c.setState(StateCancelled)
			return &Result{State: StateCancelled}, nil
		}
		c.setState(StateFailed)
		return nil, err
	}

	outcome := NormalizeOutcome(payload, product, form)
	c.setState(StateSucceeded)
	return &Result{State: StateSucceeded, Outcome: &outcome}, nil
}

// awaitWidget polls until the widget asset has loaded. A load that fails
// outright or does not finish within the timeout is a WidgetLoadError.
func (c *Controller) awaitWidget(ctx context.Context) error {
	deadline := time.Now().Add(c.loadTimeout)
	for {
		err := c.widget.Ready(ctx)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domainErrors.ErrWidgetNotReady) {
			return fmt.Errorf("%w: %s", domainErrors.ErrWidgetLoad, err)
		}
		if time.Now().After(deadline) {
			return domainErrors.ErrWidgetLoad
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}
}

func (c *Controller) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return domainErrors.ErrCheckoutInFlight
	}
	c.inFlight = true
	return nil
}

// finish releases the attempt and returns the machine to Idle so the next
// submission can start; the terminal state lives on in the Result.
func (c *Controller) finish() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
	c.state = StateIdle
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
}
