package checkout

import "context"

// WidgetConfig is what the embedded payment widget needs to render and
// collect payment. Amount is in minor units, as the widget contract
// requires.
type WidgetConfig struct {
	PublicKey   string
	Email       string
	AmountMinor int64
	Currency    string
	Reference   string
	AccessCode  string
	Metadata    map[string]string
}

// WidgetClient is the embedded payment widget, modelled as an injected
// port instead of ambient global state so a fake can stand in for it.
type WidgetClient interface {
	// Ready reports whether the widget asset has finished loading.
	// ErrWidgetNotReady means "still loading, ask again"; any other error
	// means the load failed for good.
	Ready(ctx context.Context) error

	// Open renders the widget and blocks until a terminal outcome: the
	// success payload, ErrWidgetClosed when the user abandons the widget,
	// or a context error.
	Open(ctx context.Context, cfg WidgetConfig) (WidgetPayload, error)
}

// InitiationClient is the controller's port to the payment initiation
// service, whether in-process or over HTTP.
type InitiationClient interface {
	Initiate(ctx context.Context, req PurchaseRequest) (*InitiationResult, error)
}
