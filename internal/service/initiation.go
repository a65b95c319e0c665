package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nexastore/storefront/internal/config"
	"github.com/nexastore/storefront/internal/domain/checkout"
	domainErrors "github.com/nexastore/storefront/internal/domain/errors"
	"github.com/nexastore/storefront/internal/gateway"
	"github.com/nexastore/storefront/internal/observability"
	"github.com/nexastore/storefront/internal/registry"
	"github.com/rs/zerolog"
)

// InitiationService validates purchase requests and initializes them at the
// payment gateway. One call, one fresh reference, never an automatic retry:
// if the gateway charged and the response was lost, a blind retry would
// charge twice. Retries come from fresh user actions with fresh references.
type InitiationService struct {
	cfg       config.PaystackConfig
	refPrefix string
	gateway   gateway.Gateway
	refs      *checkout.Generator
	registry  registry.ReferenceRegistry
	metrics   *observability.Metrics
	logger    zerolog.Logger
}

// NewInitiationService creates an InitiationService.
func NewInitiationService(
	cfg config.PaystackConfig,
	refPrefix string,
	gw gateway.Gateway,
	refs *checkout.Generator,
	refRegistry registry.ReferenceRegistry,
	metrics *observability.Metrics,
	logger zerolog.Logger,
) *InitiationService {
	return &InitiationService{
		cfg:       cfg,
		refPrefix: refPrefix,
		gateway:   gw,
		refs:      refs,
		registry:  refRegistry,
		metrics:   metrics,
		logger:    logger,
	}
}

// Initiate runs one payment initiation attempt. Validation failures never
// reach the gateway. The returned result is only populated on success; on
// failure the typed error tells the caller which taxonomy bucket applies.
func (s *InitiationService) Initiate(ctx context.Context, req checkout.PurchaseRequest) (*checkout.InitiationResult, error) {
	if err := s.validate(req); err != nil {
		s.metrics.InitiationsTotal.WithLabelValues("validation_error").Inc()
		return nil, err
	}

	if s.cfg.SecretKey == "" {
		// Operator misconfiguration, not bad input. Config validation
		// catches this at startup; this guard covers hand-built configs.
		s.logger.Error().Msg("paystack secret key is not configured")
		s.metrics.InitiationsTotal.WithLabelValues("config_error").Inc()
		return nil, domainErrors.ErrMissingCredentials
	}

	reference := s.refs.Generate(s.refPrefix)
	if err := s.registry.Record(ctx, reference); err != nil {
		s.logger.Error().Err(err).Str("reference", reference).Msg("failed to register reference")
		s.metrics.InitiationsTotal.WithLabelValues("duplicate_reference").Inc()
		return nil, fmt.Errorf("register reference: %w", err)
	}

	s.logger.Info().
		Str("email", req.Email).
		Int64("amount_minor", req.AmountMinor).
		Str("reference", reference).
		Str("product", req.Metadata["product_name"]).
		Msg("initializing payment")

	start := time.Now()
	res, err := s.gateway.Initialize(ctx, gateway.InitializeRequest{
		Email:       req.Email,
		AmountMinor: req.AmountMinor,
		Reference:   reference,
		Currency:    s.cfg.Currency,
		Metadata:    req.Metadata,
		CallbackURL: s.cfg.CallbackURL,
	})
	s.metrics.GatewayCallDuration.WithLabelValues(s.gateway.Name()).Observe(time.Since(start).Seconds())

	if err != nil {
		var ge *domainErrors.GatewayError
		if errors.As(err, &ge) {
			s.metrics.GatewayCallsTotal.WithLabelValues(s.gateway.Name(), "rejected").Inc()
			s.metrics.InitiationsTotal.WithLabelValues("gateway_rejected").Inc()
		} else {
			s.metrics.GatewayCallsTotal.WithLabelValues(s.gateway.Name(), "transport_error").Inc()
			s.metrics.InitiationsTotal.WithLabelValues("transport_error").Inc()
		}
		return nil, err
	}
	s.metrics.GatewayCallsTotal.WithLabelValues(s.gateway.Name(), "success").Inc()

	if res.Reference != reference {
		s.logger.Info().
			Str("sent", reference).
			Str("echoed", res.Reference).
			Msg("gateway normalized reference; using the gateway's value")
	}

	s.metrics.InitiationsTotal.WithLabelValues("success").Inc()
	s.metrics.InitiationAmounts.Observe(float64(req.AmountMinor))

	return &checkout.InitiationResult{
		Success:          true,
		Reference:        res.Reference,
		AuthorizationURL: res.AuthorizationURL,
		AccessCode:       res.AccessCode,
	}, nil
}

func (s *InitiationService) validate(req checkout.PurchaseRequest) error {
	if req.Email == "" {
		return domainErrors.NewValidationError("email", "email is required")
	}
	if !checkout.ValidEmail(req.Email) {
		return domainErrors.NewValidationError("email", "must be a valid email address")
	}
	if req.AmountMinor < s.cfg.MinAmountMinor {
		return domainErrors.NewValidationError("amount",
			fmt.Sprintf("amount must be at least %d minor units", s.cfg.MinAmountMinor))
	}
	return nil
}
