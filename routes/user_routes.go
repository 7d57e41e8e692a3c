package routes

import (
	"wastetrack/config"
	"wastetrack/controllers"
	"wastetrack/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App, userController *controllers.UserController) {
	api := app.Group(config.MAIN_ROUTES+"/users", middleware.AuthMiddleware, middleware.RequireAdmin)
	api.Post("/", userController.CreateUser)
	api.Get("/", userController.GetAllUsers)
	api.Put("/:id", userController.UpdateUser)
}
