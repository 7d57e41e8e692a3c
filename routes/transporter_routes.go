package routes

import (
	"wastetrack/config"
	"wastetrack/controllers"
	"wastetrack/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupTransporterRoutes(app *fiber.App, transporterController *controllers.TransporterController) {
	api := app.Group(config.MAIN_ROUTES+"/transporters", middleware.AuthMiddleware)
	api.Post("/", transporterController.CreateTransporter)
	api.Get("/", transporterController.GetAllTransporters)
	api.Get("/:id", transporterController.GetTransporterByID)
	api.Put("/:id", transporterController.UpdateTransporter)
	api.Delete("/:id", middleware.RequireAdmin, transporterController.DeleteTransporter)
}
