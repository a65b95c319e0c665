package testutil

import (
	"time"

	"github.com/nexastore/storefront/internal/config"
	"github.com/nexastore/storefront/internal/domain/checkout"
	"github.com/nexastore/storefront/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
)

// NewTestPaystackConfig returns a gateway config suitable for unit tests.
func NewTestPaystackConfig() config.PaystackConfig {
	return config.PaystackConfig{
		SecretKey:      "sk_test_secret",
		PublicKey:      "pk_test_public",
		BaseURL:        "https://api.paystack.co",
		Currency:       "NGN",
		MinAmountMinor: 100,
		CallbackURL:    "http://localhost:3000/success",
		RequestTimeout: 30 * time.Second,
	}
}

// NewTestMetrics returns metrics registered against a throwaway registry so
// parallel tests never collide on the default registerer.
func NewTestMetrics() *observability.Metrics {
	return observability.NewMetrics("test", prometheus.NewRegistry())
}

// NewTestPurchase returns a valid purchase request for the default product.
func NewTestPurchase() checkout.PurchaseRequest {
	return checkout.PurchaseRequest{
		Email:       "a@b.com",
		AmountMinor: 4500000,
		Metadata: map[string]string{
			"product_name":  "Wireless Pro Headphones",
			"customer_name": "John Doe",
			"phone":         "+2348000000000",
		},
	}
}
