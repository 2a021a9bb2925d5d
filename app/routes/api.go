package routes

import (
	"encoding/json"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/controllers"
	appgraphql "github.com/shashiranjanraj/storefront/app/graphql"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/cache"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/event"
	pkggraphql "github.com/shashiranjanraj/storefront/pkg/graphql"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/shashiranjanraj/storefront/pkg/reqid"
	"github.com/shashiranjanraj/storefront/pkg/response"
	"github.com/shashiranjanraj/storefront/pkg/router"
	"github.com/shashiranjanraj/storefront/pkg/ws"
)

// RegisterAPI mounts the whole HTTP surface on r: the public catalog,
// the password-gated admin CRUD, the read-only GraphQL endpoint, the
// catalog websocket and the operational endpoints.
func RegisterAPI(r *router.Router, db *gorm.DB) error {
	repo := repositories.NewProductRepository(db)
	catalogService := services.NewCatalogService(repo)
	gate := services.NewGateService()

	catalog := controllers.NewCatalogController(catalogService)
	auth := controllers.NewAuthController(gate)
	admin := controllers.NewAdminController(catalogService)
	upload := controllers.NewUploadController()

	// Recovery sits inside reqid/Logger so a recovered panic still gets
	// a request_id on its log record and an access-log line.
	r.Use(
		metrics.Middleware(),
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.Recovery,
	)

	// Public read surface.
	api := r.Group("/api")
	api.Get("/products", "products.index", ctx.Wrap(catalog.List))
	api.Get("/products/{id}", "products.show", ctx.Wrap(catalog.Show))

	// Login only verifies the shared secret; no session is created.
	api.Post("/admin/login", "admin.login", ctx.Wrap(auth.Login))

	// Every gated request re-presents the secret in X-Admin-Password.
	gated := api.Group("/admin", middleware.AdminGate(gate.Authenticate))
	gated.Get("/products", "admin.products.index", ctx.Wrap(admin.List))
	gated.Post("/products", "admin.products.store", ctx.Wrap(admin.Create))
	gated.Put("/products/{id}", "admin.products.update", ctx.Wrap(admin.Update))
	gated.Delete("/products/{id}", "admin.products.destroy", ctx.Wrap(admin.Delete))
	gated.Post("/uploads", "admin.uploads.store", ctx.Wrap(upload.Store))

	// Read-only GraphQL mirror of the catalog.
	schema, err := appgraphql.NewSchema(catalogService)
	if err != nil {
		return err
	}
	api.Post("/graphql", "graphql", pkggraphql.Handler(schema))

	// Websocket hub: broadcasts a re-fetch nudge after every mutation.
	hub := ws.NewHub()
	go hub.Run()
	event.Listen(services.CatalogUpdated, func(payload interface{}) {
		msg, err := json.Marshal(map[string]interface{}{
			"event":      services.CatalogUpdated,
			"product_id": payload,
			"ts":         time.Now().UTC().Format(time.RFC3339),
		})
		if err != nil {
			logger.Error("catalog broadcast marshal failed", "error", err)
			return
		}
		hub.Broadcast <- msg
	})
	api.Get("/ws/catalog", "ws.catalog", func(w http.ResponseWriter, r *http.Request) {
		ws.Upgrade(w, r, hub)
	})

	// Operational endpoints.
	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/healthz", "healthz", healthz(db))

	return nil
}

// healthz reports database and redis health. Redis is optional, so a
// missing redis degrades the report without failing it.
func healthz(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]string{"database": "ok", "redis": "ok"}
		healthy := true

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(r.Context())
		}
		if err != nil {
			status["database"] = err.Error()
			healthy = false
		}

		if err := cache.Ping(r.Context()); err != nil {
			status["redis"] = "unavailable"
		}

		if !healthy {
			response.Error(w, http.StatusServiceUnavailable, "unhealthy")
			return
		}
		response.Success(w, status)
	}
}
