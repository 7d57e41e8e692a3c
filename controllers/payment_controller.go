package controllers

import (
	"strconv"

	"wastetrack/controllers/helpers"
	"wastetrack/models"
	"wastetrack/services"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PaymentController struct {
	DB      *gorm.DB
	service *services.InvoiceService
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db, service: services.NewInvoiceService(db)}
}

func (c *PaymentController) RecordPayment(ctx *fiber.Ctx) error {
	invoiceID, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input services.PaymentInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	invoice, err := c.service.RecordPayment(invoiceID, input, actorID(ctx))
	if err != nil {
		return serviceError(ctx, err)
	}

	helpers.InsertTransactionHistory(c.DB, invoice.InvoiceNo, invoice.PaymentStatus, "payment", "Payment recorded", actorID(ctx))

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Payment recorded successfully", "data": invoice})
}

func (c *PaymentController) GetPayments(ctx *fiber.Ctx) error {
	invoiceID, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var payments []models.Payment
	if err := c.DB.Where("invoice_id = ?", invoiceID).Order("payment_date ASC").Find(&payments).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Payments found", "data": payments})
}

// DeletePayment reverses a wrongly captured payment.
func (c *PaymentController) DeletePayment(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	invoice, err := c.service.DeletePayment(uint(id), actorID(ctx))
	if err != nil {
		return serviceError(ctx, err)
	}

	helpers.InsertTransactionHistory(c.DB, invoice.InvoiceNo, invoice.PaymentStatus, "payment", "Payment reversed", actorID(ctx))

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Payment deleted successfully", "data": invoice})
}
