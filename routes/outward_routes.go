package routes

import (
	"wastetrack/config"
	"wastetrack/controllers"
	"wastetrack/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupOutwardRoutes(app *fiber.App, outwardController *controllers.OutwardController) {
	api := app.Group(config.MAIN_ROUTES+"/outward", middleware.AuthMiddleware)
	api.Post("/", outwardController.CreateOutward)
	api.Get("/", outwardController.GetAllOutward)
	api.Get("/uninvoiced", outwardController.GetUninvoiced)
	api.Get("/:id", outwardController.GetOutwardByID)
	api.Put("/:id", outwardController.UpdateOutward)
	api.Delete("/:id", middleware.RequireAdmin, outwardController.DeleteOutward)
}
