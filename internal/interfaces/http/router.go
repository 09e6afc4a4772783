package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/supplychain-pro/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RevenueUC *usecase.RevenueUseCase
	RuleUC    *usecase.DistributionRuleUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Revenue (protegido)
	revenue := protected.Group("/revenue")
	revenueHandler := NewRevenueHandler(deps.RevenueUC)
	revenue.Post("/simulate", revenueHandler.Simulate)
	revenue.Post("/transactions", revenueHandler.Record)
	revenue.Get("/transactions", revenueHandler.List)
	revenue.Get("/summary", revenueHandler.Summary)

	// Distribution rules (protegido; mutaciones solo admin)
	distribution := protected.Group("/distribution")
	distributionHandler := NewDistributionHandler(deps.RuleUC)
	distribution.Get("/rules", distributionHandler.List)
	distribution.Get("/rules/:id", distributionHandler.GetByID)
	distribution.Get("/active", distributionHandler.ResolveActive)
	distribution.Post("/simulate", distributionHandler.Simulate)

	adminOnly := RequireRole(RoleAdmin)
	distribution.Post("/rules", adminOnly, distributionHandler.Create)
	distribution.Put("/rules/:id", adminOnly, distributionHandler.Update)
	distribution.Delete("/rules/:id", adminOnly, distributionHandler.Deactivate)
}
