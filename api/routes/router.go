package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cometcontrol/comet-backend/api/controllers"
	"github.com/cometcontrol/comet-backend/api/middleware"
	"github.com/cometcontrol/comet-backend/internal/catalog"
	"github.com/cometcontrol/comet-backend/internal/ratelimit"
	"github.com/cometcontrol/comet-backend/internal/submissions"
	"github.com/cometcontrol/comet-backend/pkg/config"
	"github.com/cometcontrol/comet-backend/pkg/logger"
	"github.com/cometcontrol/comet-backend/pkg/storage/blob"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Limiter     *ratelimit.Limiter
	AuthPolicy  ratelimit.Policy
	Submissions submissions.Service
	Catalog     catalog.Service
	CatalogPing controllers.CatalogPinger
	Uploads     blob.Store
	Metrics     http.Handler
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.CatalogPing, deps.Uploads))
	})

	metricsHandler := deps.Metrics
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Post("/contact", controllers.SubmitContact(deps.Submissions, logg))
	r.Post("/quote", controllers.SubmitQuote(deps.Submissions, logg))

	if cfg.Upload.Dir != "" {
		files := http.StripPrefix(cfg.Upload.BaseURL+"/", http.FileServer(http.Dir(cfg.Upload.Dir)))
		r.Method(http.MethodGet, cfg.Upload.BaseURL+"/*", files)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", controllers.ListProducts(deps.Catalog, logg))
		r.Get("/products/{slug}", controllers.GetProductBySlug(deps.Catalog, logg))
		r.Get("/products/{slug}/related", controllers.GetRelatedProducts(deps.Catalog, logg))
		r.Get("/categories", controllers.ListCategories(deps.Catalog, logg))

		r.Route("/admin", func(r chi.Router) {
			r.Post("/auth", controllers.AdminLogin(cfg.Admin, deps.Limiter, deps.AuthPolicy, logg))
			r.Post("/auth/logout", controllers.AdminLogout())

			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminAuth(cfg.Admin, logg))
				r.Get("/products", controllers.AdminListProducts(deps.Catalog, logg))
				r.Post("/products", controllers.AdminCreateProduct(deps.Catalog, logg))
				r.Get("/products/{id}", controllers.AdminGetProduct(deps.Catalog, logg))
				r.Put("/products/{id}", controllers.AdminUpdateProduct(deps.Catalog, logg))
				r.Delete("/products/{id}", controllers.AdminDeleteProduct(deps.Catalog, logg))
				r.Post("/upload", controllers.AdminUpload(deps.Uploads, logg))
			})
		})
	})

	return r
}
