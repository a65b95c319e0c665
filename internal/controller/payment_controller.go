package controller

import (
	"net/http"

	"github.com/nexastore/storefront/internal/domain/checkout"
	"github.com/nexastore/storefront/internal/service"
)

// PaymentController handles the payment-initiation HTTP surface.
type PaymentController struct {
	initiationService *service.InitiationService
}

// NewPaymentController creates a new PaymentController.
func NewPaymentController(initiationService *service.InitiationService) *PaymentController {
	return &PaymentController{initiationService: initiationService}
}

// Initiate handles POST /payment/initiate. The request carries the amount
// in display currency; everything past this handler runs in minor units.
func (h *PaymentController) Initiate(w http.ResponseWriter, r *http.Request) {
	var req InitiateRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := h.initiationService.Initiate(r.Context(), checkout.PurchaseRequest{
		Email:       req.Email,
		AmountMinor: req.Amount * 100,
		Metadata:    req.Metadata,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, InitiateResponse{
		Success:          true,
		Reference:        res.Reference,
		AuthorizationURL: res.AuthorizationURL,
		AccessCode:       res.AccessCode,
		Message:          "Payment initialized successfully",
	})
}

// Describe handles GET /payment/initiate, a self-description kept for
// quick manual checks of a deployment.
func (h *PaymentController) Describe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Payment initiation API",
		"status":  "active",
		"usage":   "Send POST request with email, amount, and metadata to initialize payment",
		"example": map[string]any{
			"email":  "customer@example.com",
			"amount": 5000,
			"metadata": map[string]string{
				"product_name":  "Wireless Pro Headphones",
				"customer_name": "John Doe",
			},
		},
	})
}
