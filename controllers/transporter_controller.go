package controllers

import (
	"errors"

	"wastetrack/models"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TransporterController struct {
	DB *gorm.DB
}

func NewTransporterController(db *gorm.DB) *TransporterController {
	return &TransporterController{DB: db}
}

func (c *TransporterController) CreateTransporter(ctx *fiber.Ctx) error {
	var transporter models.Transporter
	if err := ctx.BodyParser(&transporter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(transporter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	transporter.IsActive = true
	transporter.CreatedBy = actorID(ctx)

	if err := c.DB.Create(&transporter).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Transporter created successfully", "data": transporter})
}

func (c *TransporterController) GetAllTransporters(ctx *fiber.Ctx) error {
	var transporters []models.Transporter
	var total int64

	page, limit, offset := pageParams(ctx)
	search := ctx.Query("search", "")

	query := c.DB.Model(&models.Transporter{})
	if search != "" {
		query = query.Where("transporter_name LIKE ? OR gst_no LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	query.Count(&total)

	if err := query.Offset(offset).Limit(limit).Order("transporter_name ASC").Find(&transporters).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Transporters found",
		"data":    transporters,
		"meta":    paginationMeta(total, page, limit),
	})
}

func (c *TransporterController) GetTransporterByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var result models.Transporter
	if err := c.DB.First(&result, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transporter not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Transporter found", "data": result})
}

func (c *TransporterController) UpdateTransporter(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var existing models.Transporter
	if err := c.DB.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transporter not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var transporter models.Transporter
	if err := ctx.BodyParser(&transporter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	transporter.UpdatedBy = actorID(ctx)

	if err := c.DB.Model(&existing).Updates(transporter).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Transporter updated successfully", "data": existing})
}

func (c *TransporterController) DeleteTransporter(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var transporter models.Transporter
	if err := c.DB.First(&transporter, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transporter not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var linked int64
	c.DB.Model(&models.InwardEntry{}).Where("transporter_id = ?", transporter.ID).Count(&linked)
	if linked == 0 {
		c.DB.Model(&models.OutwardEntry{}).Where("transporter_id = ?", transporter.ID).Count(&linked)
	}
	if linked > 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Transporter has linked entries and cannot be deleted",
		})
	}

	transporter.DeletedBy = actorID(ctx)
	if err := c.DB.Select("deleted_by").Updates(&transporter).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Delete(&transporter).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Transporter deleted successfully"})
}
