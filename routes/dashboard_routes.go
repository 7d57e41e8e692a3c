package routes

import (
	"wastetrack/config"
	"wastetrack/controllers"
	"wastetrack/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupDashboardRoutes(app *fiber.App, dashboardController *controllers.DashboardController) {
	api := app.Group(config.MAIN_ROUTES+"/dashboard", middleware.AuthMiddleware)
	api.Get("/", dashboardController.GetDashboard)
	api.Get("/monthly", dashboardController.GetMonthly)
}
