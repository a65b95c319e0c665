package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/nexastore/storefront/internal/catalog"
	domainErrors "github.com/nexastore/storefront/internal/domain/errors"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

type errorMapping struct {
	err     error
	status  int
	code    string
	message string // overrides err.Error() when the detail must not leak
}

var errorMappings = []errorMapping{
	{catalog.ErrProductNotFound, http.StatusNotFound, "not_found", ""},
	{domainErrors.ErrMissingCredentials, http.StatusInternalServerError, "configuration_error",
		"Payment service is not configured properly"},
	{domainErrors.ErrGatewayUnavailable, http.StatusBadGateway, "gateway_unavailable",
		"Internal server error. Please try again."},
	{domainErrors.ErrGatewayTimeout, http.StatusBadGateway, "gateway_unavailable",
		"Internal server error. Please try again."},
	{domainErrors.ErrDuplicateReference, http.StatusInternalServerError, "internal_error",
		"Internal server error. Please try again."},
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	resp := ErrorResponse{Error: err.Error()}

	var validationErr *domainErrors.ValidationError
	if errors.As(err, &validationErr) {
		resp.Code = "validation_error"
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}

	// A structured gateway decline is user-visible verbatim, as the
	// gateway phrased it.
	var gatewayErr *domainErrors.GatewayError
	if errors.As(err, &gatewayErr) {
		resp.Code = "gateway_rejected"
		resp.Error = gatewayErr.Message
		if resp.Error == "" {
			resp.Error = "Failed to initialize payment"
		}
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			resp.Code = m.code
			if m.message != "" {
				resp.Error = m.message
			}
			writeJSON(w, m.status, resp)
			return
		}
	}

	log.Error().Err(err).Msg("unhandled error in handler")
	resp.Code = "internal_error"
	resp.Error = "internal server error"
	writeJSON(w, http.StatusInternalServerError, resp)
}

func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domainErrors.NewValidationError("body", "invalid JSON: "+err.Error())
	}
	if err := validate.Struct(dst); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok && len(ve) > 0 {
			return domainErrors.NewValidationError(ve[0].Field(), ve[0].Tag()+" validation failed")
		}
		return domainErrors.NewValidationError("body", err.Error())
	}
	return nil
}
