package routes

import (
	"wastetrack/config"
	"wastetrack/controllers"
	"wastetrack/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupInvoiceRoutes(app *fiber.App, invoiceController *controllers.InvoiceController, paymentController *controllers.PaymentController) {
	// Invoices carry rates and amounts, so the whole surface is admin-only.
	api := app.Group(config.MAIN_ROUTES+"/invoices", middleware.AuthMiddleware, middleware.RequireAdmin)
	api.Post("/", invoiceController.CreateInvoice)
	api.Get("/", invoiceController.GetAllInvoices)
	api.Get("/open", invoiceController.GetOpenInvoices)
	api.Get("/:id", invoiceController.GetInvoiceByID)
	api.Put("/:id", invoiceController.UpdateInvoice)
	api.Delete("/:id", invoiceController.DeleteInvoice)
	api.Post("/:id/append", invoiceController.AppendToInvoice)

	api.Post("/:id/payments", paymentController.RecordPayment)
	api.Get("/:id/payments", paymentController.GetPayments)

	payments := app.Group(config.MAIN_ROUTES+"/payments", middleware.AuthMiddleware, middleware.RequireAdmin)
	payments.Delete("/:id", paymentController.DeletePayment)
}
