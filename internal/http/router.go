package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/maavergroup/payos-link/internal/metrics"
)

// LegacyPrefix is where the Next.js frontend proxy expects the API.
const LegacyPrefix = "/api/py"

type RouterConfig struct {
	ServiceName    string
	AllowedOrigins []string
}

func NewRouter(cfg RouterConfig, payments *PaymentLinkHandler, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(RequestIDMiddleware)
	r.Use(AccessLogMiddleware(log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	health := Health(cfg.ServiceName)

	r.Get("/health", health)
	r.Post("/create-payment-link", payments.CreatePaymentLink)
	r.Handle("/metrics", metrics.Handler())

	r.Route(LegacyPrefix, func(r chi.Router) {
		r.Get("/helloFastApi", health)
		r.Post("/create-payment-link", payments.CreatePaymentLink)
	})

	return otelhttp.NewHandler(r, cfg.ServiceName)
}
