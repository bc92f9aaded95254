package route

import (
	"github.com/gofiber/fiber/v2"

	service "school-dashboard/app/service/dashboard"
	"school-dashboard/middleware"
)

func SetupRoutes(app *fiber.App, svc *service.DashboardService, jwtSecret string) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1", middleware.AuthRequired(jwtSecret))

	// Screens
	api.Get("/screens", svc.ListScreens)
	api.Post("/screens/:screen/sessions", svc.CreateSession)

	// Sessions
	sessions := api.Group("/sessions")
	sessions.Get("/:id", svc.GetSession)
	sessions.Delete("/:id", svc.CloseSession)
	sessions.Get("/:id/records/:dataset", svc.GetRecords)

	// Filters & drill-down
	sessions.Post("/:id/filters/:dataset/toggle", svc.ToggleFilter)
	sessions.Post("/:id/filters/:dataset/only", svc.SelectOnlyFilter)
	sessions.Post("/:id/drill/:dataset", svc.Drill)
	sessions.Delete("/:id/drill/:dataset/:field", svc.ClearDrill)

	// Chart clicks
	sessions.Post("/:id/charts/:chart/activate", svc.ActivateChart)
}
