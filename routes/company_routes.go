package routes

import (
	"wastetrack/config"
	"wastetrack/controllers"
	"wastetrack/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupCompanyRoutes(app *fiber.App, companyController *controllers.CompanyController) {
	api := app.Group(config.MAIN_ROUTES+"/companies", middleware.AuthMiddleware)
	api.Post("/", companyController.CreateCompany)
	api.Get("/", companyController.GetAllCompanies)
	api.Post("/price-list/upload", middleware.RequireAdmin, companyController.UploadPriceList)
	api.Get("/:id", companyController.GetCompanyByID)
	api.Put("/:id", companyController.UpdateCompany)
	api.Delete("/:id", middleware.RequireAdmin, companyController.DeleteCompany)
	api.Get("/:id/materials", companyController.GetMaterials)
	api.Put("/:id/materials", middleware.RequireAdmin, companyController.ReplaceMaterials)
}
