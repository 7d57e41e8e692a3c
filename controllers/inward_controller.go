package controllers

import (
	"errors"
	"strconv"

	"wastetrack/controllers/helpers"
	"wastetrack/middleware"
	"wastetrack/models"
	"wastetrack/repositories"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type InwardController struct {
	DB   *gorm.DB
	repo *repositories.InwardRepository
}

func NewInwardController(db *gorm.DB) *InwardController {
	return &InwardController{DB: db, repo: repositories.NewInwardRepository(db)}
}

// inwardRow shapes one entry for list responses. Staff users don't see
// money fields.
func inwardRow(e models.InwardEntry, admin bool) fiber.Map {
	row := fiber.Map{
		"id":               e.ID,
		"lot_no":           e.LotNo,
		"manifest_no":      e.ManifestNo,
		"company_id":       e.CompanyID,
		"company_name":     e.Company.CompanyName,
		"transporter_id":   e.TransporterID,
		"transporter_name": e.Transporter.TransporterName,
		"waste_name":       e.WasteName,
		"quantity":         e.Quantity,
		"unit":             e.Unit,
		"vehicle_no":       e.VehicleNo,
		"entry_date":       e.EntryDate,
		"remarks":          e.Remarks,
		"invoice_id":       e.InvoiceID,
	}
	if admin {
		row["rate"] = e.Rate
		row["amount"] = e.Amount
	}
	return row
}

func (c *InwardController) CreateInward(ctx *fiber.Ctx) error {
	var entry models.InwardEntry
	if err := ctx.BodyParser(&entry); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(entry); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var company models.Company
	if err := c.DB.First(&company, entry.CompanyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Company does not exist"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	lotNo, err := c.repo.GenerateLotNo()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	entry.LotNo = lotNo

	if entry.Unit == "" {
		entry.Unit = "KG"
	}

	// Missing rate falls back to the company's agreed price list.
	if entry.Rate == 0 {
		rate, err := c.repo.MaterialRate(entry.CompanyID, entry.WasteName)
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		entry.Rate = rate
	}

	// Amount is never trusted from the client.
	entry.Amount = round2(entry.Quantity * entry.Rate)
	entry.InvoiceID = nil
	entry.CreatedBy = actorID(ctx)

	if err := c.DB.Create(&entry).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	helpers.InsertTransactionHistory(c.DB, entry.LotNo, "created", "inward", "Inward entry created", actorID(ctx))

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Inward entry created successfully", "data": entry})
}

func (c *InwardController) GetAllInward(ctx *fiber.Ctx) error {
	var entries []models.InwardEntry
	var total int64

	page, limit, offset := pageParams(ctx)
	search := ctx.Query("search", "")

	query := c.DB.Model(&models.InwardEntry{})

	if companyID, err := strconv.Atoi(ctx.Query("company_id", "")); err == nil && companyID > 0 {
		query = query.Where("company_id = ?", companyID)
	}
	if transporterID, err := strconv.Atoi(ctx.Query("transporter_id", "")); err == nil && transporterID > 0 {
		query = query.Where("transporter_id = ?", transporterID)
	}
	if from := ctx.Query("from", ""); from != "" {
		query = query.Where("entry_date >= ?", from)
	}
	if to := ctx.Query("to", ""); to != "" {
		query = query.Where("entry_date <= ?", to)
	}
	switch ctx.Query("invoiced", "") {
	case "true":
		query = query.Where("invoice_id IS NOT NULL")
	case "false":
		query = query.Where("invoice_id IS NULL")
	}
	if search != "" {
		query = query.Where("lot_no LIKE ? OR manifest_no LIKE ? OR waste_name LIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	query.Count(&total)

	if err := query.Preload("Company").Preload("Transporter").
		Offset(offset).Limit(limit).
		Order("entry_date DESC, lot_no DESC").
		Find(&entries).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	admin := middleware.IsAdmin(ctx)
	rows := make([]fiber.Map, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, inwardRow(e, admin))
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Inward entries found",
		"data":    rows,
		"meta":    paginationMeta(total, page, limit),
	})
}

func (c *InwardController) GetInwardByID(ctx *fiber.Ctx) error {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var entry models.InwardEntry
	if err := c.DB.Preload("Company").Preload("Transporter").First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Inward entry not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Inward entry found", "data": inwardRow(entry, middleware.IsAdmin(ctx))})
}

func (c *InwardController) UpdateInward(ctx *fiber.Ctx) error {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var existing models.InwardEntry
	if err := c.DB.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Inward entry not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if existing.InvoiceID != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Entry is invoiced and cannot be edited"})
	}

	var input models.InwardEntry
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if input.ManifestNo != "" {
		existing.ManifestNo = input.ManifestNo
	}
	if input.WasteName != "" {
		existing.WasteName = input.WasteName
	}
	if input.Quantity > 0 {
		existing.Quantity = input.Quantity
	}
	if input.Unit != "" {
		existing.Unit = input.Unit
	}
	if input.Rate > 0 {
		existing.Rate = input.Rate
	}
	if input.TransporterID > 0 {
		existing.TransporterID = input.TransporterID
	}
	if input.VehicleNo != "" {
		existing.VehicleNo = input.VehicleNo
	}
	if input.EntryDate != "" {
		existing.EntryDate = input.EntryDate
	}
	if input.Remarks != "" {
		existing.Remarks = input.Remarks
	}

	existing.Amount = round2(existing.Quantity * existing.Rate)
	existing.UpdatedBy = actorID(ctx)

	if err := c.DB.Omit("Company", "Transporter").Save(&existing).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	helpers.InsertTransactionHistory(c.DB, existing.LotNo, "updated", "inward", "Inward entry updated", actorID(ctx))

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Inward entry updated successfully", "data": existing})
}

func (c *InwardController) DeleteInward(ctx *fiber.Ctx) error {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var entry models.InwardEntry
	if err := c.DB.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Inward entry not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if entry.InvoiceID != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Entry is invoiced and cannot be deleted"})
	}

	entry.DeletedBy = actorID(ctx)
	if err := c.DB.Select("deleted_by").Updates(&entry).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Delete(&entry).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	helpers.InsertTransactionHistory(c.DB, entry.LotNo, "deleted", "inward", "Inward entry deleted", actorID(ctx))

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Inward entry deleted successfully"})
}

// GetUninvoiced lists the company's entries still open for billing. The
// invoice screen uses this to offer entry links.
func (c *InwardController) GetUninvoiced(ctx *fiber.Ctx) error {
	companyID, err := strconv.Atoi(ctx.Query("company_id", ""))
	if err != nil || companyID <= 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "company_id is required"})
	}

	entries, err := c.repo.GetUninvoiced(uint(companyID))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	admin := middleware.IsAdmin(ctx)
	rows := make([]fiber.Map, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, inwardRow(e, admin))
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Uninvoiced entries found", "data": rows})
}
