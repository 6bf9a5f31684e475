package chi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog"
	"github.com/marcelsud/troquecommerce-bridge/metrics"
	"github.com/marcelsud/troquecommerce-bridge/troquecommerce"
	"github.com/marcelsud/troquecommerce-bridge/webhook"
	"github.com/marcelsud/troquecommerce-bridge/webhook/secret"
	"github.com/rs/zerolog"
)

// LookupDispatcher schedules an ERP lookup without waiting for it
type LookupDispatcher interface {
	Submit(orderNumber string) bool
}

// Deps is everything the router needs. Lookups, Recorder and Metrics are optional.
type Deps struct {
	Prefix         string
	Secret         secret.Secret
	AllowList      webhook.AllowList
	Events         webhook.UseCase
	Lookups        LookupDispatcher
	Proxy          *troquecommerce.Client
	Recorder       metrics.Recorder
	Metrics        http.Handler
	Logger         zerolog.Logger
	MaxBodyBytes   int64
	RequestTimeout time.Duration
	StartedAt      time.Time
}

func (d *Deps) withDefaults() {
	d.Prefix = strings.TrimRight(d.Prefix, "/")
	if d.Recorder == nil {
		d.Recorder = metrics.Nop{}
	}
	if d.Proxy == nil {
		d.Proxy = troquecommerce.NewClient(nil)
	}
	if d.MaxBodyBytes <= 0 {
		d.MaxBodyBytes = 1 << 20
	}
	if d.RequestTimeout <= 0 {
		d.RequestTimeout = 30 * time.Second
	}
	if d.StartedAt.IsZero() {
		d.StartedAt = time.Now()
	}
}

// endpointMap is what GET / advertises
type endpointMap struct {
	Health           string `json:"health"`
	Webhook          string `json:"webhook"`
	OrderListProxy   string `json:"orderListProxy"`
	OrderDetailProxy string `json:"orderDetailProxy"`
	WebhookEvents    string `json:"webhookEvents"`
	Metrics          string `json:"metrics,omitempty"`
}

type rootResponse struct {
	Message   string      `json:"message"`
	Endpoints endpointMap `json:"endpoints"`
}

type healthResponse struct {
	Status string  `json:"status"`
	Uptime float64 `json:"uptime"`
}

// Handlers sets up the bridge routes
func Handlers(ctx context.Context, d Deps) *chi.Mux {
	d.withDefaults()

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(d.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(d.RequestTimeout))
	r.Use(middleware.RequestSize(d.MaxBodyBytes))
	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool { return true },
		AllowedMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:  []string{"*"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{
			Status: "ok",
			Uptime: time.Since(d.StartedAt).Seconds(),
		})
	})

	endpoints := endpointMap{
		Health:           "/health",
		Webhook:          d.Prefix + "/webhook",
		OrderListProxy:   d.Prefix + "/order-list",
		OrderDetailProxy: d.Prefix + "/order-detail",
		WebhookEvents:    d.Prefix + "/webhook-events",
	}
	if d.Metrics != nil {
		endpoints.Metrics = "/metrics"
		r.Method(http.MethodGet, "/metrics", d.Metrics)
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, rootResponse{
			Message:   "Troquecommerce webhook/proxy ativo",
			Endpoints: endpoints,
		})
	})

	api := func(r chi.Router) {
		r.Method(http.MethodPost, "/webhook", postWebhook(d))
		r.Method(http.MethodGet, "/webhook-events", getWebhookEvents(d.Events))
		r.Method(http.MethodPost, "/order-list", postOrderList(d.Proxy, d.Recorder))
		r.Method(http.MethodPost, "/order-detail", postOrderDetail(d.Proxy, d.Recorder))
	}
	if d.Prefix == "" {
		r.Group(api)
	} else {
		r.Route(d.Prefix, api)
	}

	return r
}
