package checkout

import "time"

// WidgetPayload is what the payment widget hands back on its success
// callback. Reference is the only field every gateway fills in.
type WidgetPayload struct {
	Reference string
	Status    string
}

// ProductContext carries the product fields the outcome needs for display.
type ProductContext struct {
	Name        string
	AmountMinor int64
}

// NormalizeOutcome reconciles the widget's success payload with the product
// and form context captured when checkout started. The widget's reference
// wins over the one that was sent: some gateways normalize references, and
// theirs is the value support can look up.
func NormalizeOutcome(payload WidgetPayload, product ProductContext, form Form) TransactionOutcome {
	return TransactionOutcome{
		Reference:   payload.Reference,
		Product:     product.Name,
		AmountMinor: product.AmountMinor,
		Customer:    form.CustomerName(),
		Email:       form.Email,
		Phone:       form.Phone,
		CompletedAt: time.Now(),
	}
}
