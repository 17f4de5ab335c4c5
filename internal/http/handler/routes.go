package handler

import (
	"context"
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"pixiu/internal/service"
	"pixiu/internal/storage"
)

// Deps are the collaborators RegisterRoutes wires into handlers.
// Assets may be nil, which disables the frontends.
type Deps struct {
	DB       *sql.DB
	Funds    service.FundService
	Balances service.BalanceService
	Assets   storage.Assets
	Migrate  func(context.Context) error
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// API routes are registered before the frontend fallbacks that share their prefix.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/pixiu")
	api.Post("/init", InitSchema(d.Migrate))

	api.Get("/fund", ListFunds(d.Funds))
	api.Post("/fund", CreateFund(d.Funds))
	api.Get("/fund/sources", FundSources(d.Funds))
	api.Get("/fund/types", FundTypes(d.Funds))
	api.Put("/fund/:id", UpdateFund(d.Funds))
	api.Delete("/fund/:id", DeleteFund(d.Funds))

	api.Get("/debt", ListDebts(d.Balances))
	api.Get("/property", ListProperties(d.Balances))

	assets := Assets(d.Assets)
	for _, p := range []string{"/pixium", "/pixium/*", "/pixiu", "/pixiu/*"} {
		app.Get(p, assets)
	}
}
