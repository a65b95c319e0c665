package controller

import (
	"net/http"

	"github.com/nexastore/storefront/internal/ipdetect"
	"github.com/rs/zerolog/log"
)

// DiagnosticsController exposes operational lookups that are not part of
// the payment protocol proper.
type DiagnosticsController struct {
	detector *ipdetect.Detector
}

// NewDiagnosticsController creates a new DiagnosticsController.
func NewDiagnosticsController(detector *ipdetect.Detector) *DiagnosticsController {
	return &DiagnosticsController{detector: detector}
}

// OutboundIP handles GET /diagnostics/outbound-ip. The forwarded headers
// are echoed back so operators can see what the proxy chain reports for
// inbound traffic alongside the gateway-facing outbound address.
func (h *DiagnosticsController) OutboundIP(w http.ResponseWriter, r *http.Request) {
	ip, err := h.detector.OutboundIP(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("outbound ip lookup failed")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error: "Failed to detect IP",
			Code:  "ip_lookup_failed",
		})
		return
	}

	writeJSON(w, http.StatusOK, OutboundIPResponse{
		OutboundIP: ip,
		Headers: map[string]string{
			"x-forwarded-for": r.Header.Get("X-Forwarded-For"),
			"x-real-ip":       r.Header.Get("X-Real-Ip"),
		},
		Note: "Add the outbound_ip to the gateway allow-list",
	})
}
