package controllers

import (
	"errors"
	"strconv"

	"wastetrack/controllers/helpers"
	"wastetrack/models"
	"wastetrack/repositories"
	"wastetrack/services"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type InvoiceController struct {
	DB      *gorm.DB
	service *services.InvoiceService
	repo    *repositories.InvoiceRepository
}

func NewInvoiceController(db *gorm.DB) *InvoiceController {
	return &InvoiceController{
		DB:      db,
		service: services.NewInvoiceService(db),
		repo:    repositories.NewInvoiceRepository(db),
	}
}

// serviceError maps service failures onto the three error kinds.
func serviceError(ctx *fiber.Ctx, err error) error {
	switch {
	case services.IsValidationError(err):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Invoice not found"})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

func (c *InvoiceController) CreateInvoice(ctx *fiber.Ctx) error {
	var input services.CreateInvoiceInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	invoice, err := c.service.CreateInvoice(input, actorID(ctx))
	if err != nil {
		return serviceError(ctx, err)
	}

	helpers.InsertTransactionHistory(c.DB, invoice.InvoiceNo, "created", "invoice", "Invoice created", actorID(ctx))

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Invoice created successfully", "data": invoice})
}

// AppendToInvoice merges freshly selected entries into an open invoice
// instead of opening a new one.
func (c *InvoiceController) AppendToInvoice(ctx *fiber.Ctx) error {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input services.AppendInvoiceInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	invoice, err := c.service.AppendToInvoice(id, input, actorID(ctx))
	if err != nil {
		return serviceError(ctx, err)
	}

	helpers.InsertTransactionHistory(c.DB, invoice.InvoiceNo, "appended", "invoice", "Entries appended to invoice", actorID(ctx))

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Invoice updated successfully", "data": invoice})
}

// GetOpenInvoices lists a company's not-fully-paid invoices, the candidates
// for appending.
func (c *InvoiceController) GetOpenInvoices(ctx *fiber.Ctx) error {
	companyID, err := strconv.Atoi(ctx.Query("company_id", ""))
	if err != nil || companyID <= 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "company_id is required"})
	}

	invoices, err := c.repo.GetOpen(uint(companyID), ctx.Query("type", ""))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Open invoices found", "data": invoices})
}

func (c *InvoiceController) GetAllInvoices(ctx *fiber.Ctx) error {
	var invoices []models.Invoice
	var total int64

	page, limit, offset := pageParams(ctx)

	query := c.DB.Model(&models.Invoice{})

	if invoiceType := ctx.Query("type", ""); invoiceType != "" {
		query = query.Where("invoice_type = ?", invoiceType)
	}
	if companyID, err := strconv.Atoi(ctx.Query("company_id", "")); err == nil && companyID > 0 {
		query = query.Where("company_id = ?", companyID)
	}
	if status := ctx.Query("payment_status", ""); status != "" {
		query = query.Where("payment_status = ?", status)
	}
	if from := ctx.Query("from", ""); from != "" {
		query = query.Where("invoice_date >= ?", from)
	}
	if to := ctx.Query("to", ""); to != "" {
		query = query.Where("invoice_date <= ?", to)
	}
	if search := ctx.Query("search", ""); search != "" {
		query = query.Where("invoice_no LIKE ?", "%"+search+"%")
	}

	query.Count(&total)

	if err := query.Preload("Company").
		Offset(offset).Limit(limit).
		Order("invoice_date DESC, invoice_no DESC").
		Find(&invoices).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Invoices found",
		"data":    invoices,
		"meta":    paginationMeta(total, page, limit),
	})
}

func (c *InvoiceController) GetInvoiceByID(ctx *fiber.Ctx) error {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	invoice, err := c.repo.GetWithChildren(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Invoice not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	// Linked entries ride along so the detail screen can show them.
	var linkedInward []models.InwardEntry
	var linkedOutward []models.OutwardEntry
	switch invoice.InvoiceType {
	case models.InvoiceTypeInward:
		c.DB.Where("invoice_id = ?", invoice.ID).Find(&linkedInward)
	case models.InvoiceTypeOutward:
		c.DB.Where("invoice_id = ?", invoice.ID).Find(&linkedOutward)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Invoice found",
		"data": fiber.Map{
			"invoice":         invoice,
			"inward_entries":  linkedInward,
			"outward_entries": linkedOutward,
		},
	})
}

func (c *InvoiceController) UpdateInvoice(ctx *fiber.Ctx) error {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input services.UpdateHeaderInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	invoice, err := c.service.UpdateHeader(id, input, actorID(ctx))
	if err != nil {
		return serviceError(ctx, err)
	}

	helpers.InsertTransactionHistory(c.DB, invoice.InvoiceNo, "updated", "invoice", "Invoice header updated", actorID(ctx))

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Invoice updated successfully", "data": invoice})
}

func (c *InvoiceController) DeleteInvoice(ctx *fiber.Ctx) error {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var invoice models.Invoice
	if err := c.DB.First(&invoice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Invoice not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.service.DeleteInvoice(id, actorID(ctx)); err != nil {
		return serviceError(ctx, err)
	}

	helpers.InsertTransactionHistory(c.DB, invoice.InvoiceNo, "deleted", "invoice", "Invoice deleted, entries unlinked", actorID(ctx))

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Invoice deleted successfully"})
}
