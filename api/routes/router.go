package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shivamcrackers/posbill-backend/api/controllers"
	cartcontrollers "github.com/shivamcrackers/posbill-backend/api/controllers/cart"
	catalogcontrollers "github.com/shivamcrackers/posbill-backend/api/controllers/catalog"
	invoicecontrollers "github.com/shivamcrackers/posbill-backend/api/controllers/invoices"
	"github.com/shivamcrackers/posbill-backend/api/middleware"
	"github.com/shivamcrackers/posbill-backend/internal/cart"
	"github.com/shivamcrackers/posbill-backend/internal/catalog"
	"github.com/shivamcrackers/posbill-backend/internal/invoices"
	"github.com/shivamcrackers/posbill-backend/pkg/config"
	"github.com/shivamcrackers/posbill-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	registry *prometheus.Registry,
	catalogService catalog.Service,
	cartService cart.Service,
	invoiceService invoices.Service,
	readiness ...controllers.NamedPinger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness...))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", catalogcontrollers.List(catalogService, logg))
			r.Get("/search", catalogcontrollers.Search(catalogService, logg))
			r.Put("/items", catalogcontrollers.Upsert(catalogService, logg))
			r.Get("/items/{name}", catalogcontrollers.Fetch(catalogService, logg))
			r.Delete("/items/{name}", catalogcontrollers.Remove(catalogService, logg))
		})

		r.Route("/carts", func(r chi.Router) {
			r.Post("/", cartcontrollers.CreateSession(cartService, logg))
			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", cartcontrollers.Fetch(cartService, logg))
				r.Post("/lines", cartcontrollers.AddLine(cartService, logg))
				r.Delete("/lines", cartcontrollers.Clear(cartService, logg))
				r.Delete("/lines/{index}", cartcontrollers.RemoveLine(cartService, logg))
				r.Post("/invoice", invoicecontrollers.GenerateFromCart(invoiceService, cfg, logg))
			})
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Post("/", invoicecontrollers.GenerateAdHoc(invoiceService, cfg, logg))
			r.Post("/export/xlsx", invoicecontrollers.ExportXLSX(logg))
		})
	})

	return r
}
