package routes

import (
	"wastetrack/config"
	"wastetrack/controllers"
	"wastetrack/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupInwardRoutes(app *fiber.App, inwardController *controllers.InwardController) {
	api := app.Group(config.MAIN_ROUTES+"/inward", middleware.AuthMiddleware)
	api.Post("/", inwardController.CreateInward)
	api.Get("/", inwardController.GetAllInward)
	api.Get("/uninvoiced", inwardController.GetUninvoiced)
	api.Get("/:id", inwardController.GetInwardByID)
	api.Put("/:id", inwardController.UpdateInward)
	api.Delete("/:id", middleware.RequireAdmin, inwardController.DeleteInward)
}
