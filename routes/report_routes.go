package routes

import (
	"wastetrack/config"
	"wastetrack/controllers"
	"wastetrack/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupReportRoutes(app *fiber.App, reportController *controllers.ReportController) {
	api := app.Group(config.MAIN_ROUTES+"/reports", middleware.AuthMiddleware, middleware.RequireAdmin)
	api.Get("/inward", reportController.ExportInwardRegister)
	api.Get("/outward", reportController.ExportOutwardRegister)
	api.Get("/invoices/:id", reportController.ExportInvoice)
}
