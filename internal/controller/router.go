package controller

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/nexastore/storefront/internal/catalog"
	"github.com/nexastore/storefront/internal/config"
	"github.com/nexastore/storefront/internal/ipdetect"
	customMW "github.com/nexastore/storefront/internal/middleware"
	"github.com/nexastore/storefront/internal/observability"
	"github.com/nexastore/storefront/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

type RouterDeps struct {
	RedisClient       *redis.Client
	Catalog           *catalog.Catalog
	InitiationService *service.InitiationService
	Detector          *ipdetect.Detector
	Metrics           *observability.Metrics
	ServerConfig      config.ServerConfig
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(customMW.Tracing())
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.ServerConfig.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: deps.ServerConfig.CORS.AllowCredentials,
		MaxAge:           300,
	}))
	r.Use(customMW.SecurityHeaders())
	r.Use(customMW.Metrics(deps.Metrics))

	healthH := NewHealthController(deps.RedisClient)
	catalogH := NewCatalogController(deps.Catalog)
	paymentH := NewPaymentController(deps.InitiationService)
	diagnosticsH := NewDiagnosticsController(deps.Detector)

	r.Get("/health", healthH.Health)
	r.Get("/health/live", healthH.Liveness)
	r.Get("/health/ready", healthH.Readiness)

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/products", catalogH.List)
	r.Get("/products/{id}", catalogH.Get)

	r.Route("/payment", func(r chi.Router) {
		r.With(customMW.RateLimit(deps.ServerConfig.InitiationRPM)).
			Post("/initiate", paymentH.Initiate)
		r.Get("/initiate", paymentH.Describe)
	})

	r.Get("/diagnostics/outbound-ip", diagnosticsH.OutboundIP)

	return r
}
