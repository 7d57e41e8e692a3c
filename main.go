package main

import (
	"fmt"
	"log"

	"wastetrack/config"
	"wastetrack/controllers"
	"wastetrack/controllers/idgen"
	"wastetrack/database"
	"wastetrack/routes"

	"github.com/gofiber/fiber/v2"
)

func main() {
	config.LoadConfig()

	app := fiber.New()

	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	idgen.Init()
	database.RunSeeders(db)

	config.SetupCORS(app)

	routes.SetupAuthRoutes(app, controllers.NewAuthController(db))
	routes.SetupUserRoutes(app, controllers.NewUserController(db))
	routes.SetupDashboardRoutes(app, controllers.NewDashboardController(db))
	routes.SetupCompanyRoutes(app, controllers.NewCompanyController(db))
	routes.SetupTransporterRoutes(app, controllers.NewTransporterController(db))
	routes.SetupInwardRoutes(app, controllers.NewInwardController(db))
	routes.SetupOutwardRoutes(app, controllers.NewOutwardController(db))
	routes.SetupInvoiceRoutes(app, controllers.NewInvoiceController(db), controllers.NewPaymentController(db))
	routes.SetupReportRoutes(app, controllers.NewReportController(db))

	port := config.APP_PORT
	fmt.Println("Server running on port " + port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
