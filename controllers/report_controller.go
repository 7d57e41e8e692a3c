package controllers

import (
	"errors"
	"fmt"
	"strconv"

	"wastetrack/models"
	"wastetrack/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

func writeWorkbook(ctx *fiber.Ctx, f *excelize.File, filename string) error {
	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))

	if err := f.Write(ctx.Response().BodyWriter()); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).SendString("Failed to generate Excel file")
	}
	return nil
}

// ExportInwardRegister writes the inward register for an optional date range.
func (c *ReportController) ExportInwardRegister(ctx *fiber.Ctx) error {
	query := c.DB.Preload("Company").Preload("Transporter").Order("entry_date ASC, lot_no ASC")
	if from := ctx.Query("from", ""); from != "" {
		query = query.Where("entry_date >= ?", from)
	}
	if to := ctx.Query("to", ""); to != "" {
		query = query.Where("entry_date <= ?", to)
	}

	var entries []models.InwardEntry
	if err := query.Find(&entries).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	f := excelize.NewFile()
	sheet := "Sheet1"

	f.SetCellValue(sheet, "A1", "Lot No")
	f.SetCellValue(sheet, "B1", "Manifest No")
	f.SetCellValue(sheet, "C1", "Entry Date")
	f.SetCellValue(sheet, "D1", "Company")
	f.SetCellValue(sheet, "E1", "Transporter")
	f.SetCellValue(sheet, "F1", "Waste Name")
	f.SetCellValue(sheet, "G1", "Quantity")
	f.SetCellValue(sheet, "H1", "Unit")
	f.SetCellValue(sheet, "I1", "Rate")
	f.SetCellValue(sheet, "J1", "Amount")
	f.SetCellValue(sheet, "K1", "Vehicle No")

	for i, e := range entries {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), e.LotNo)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), e.ManifestNo)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), e.EntryDate)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), e.Company.CompanyName)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), e.Transporter.TransporterName)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), e.WasteName)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), e.Quantity)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), e.Unit)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), e.Rate)
		f.SetCellValue(sheet, fmt.Sprintf("J%d", row), e.Amount)
		f.SetCellValue(sheet, fmt.Sprintf("K%d", row), e.VehicleNo)
	}

	return writeWorkbook(ctx, f, "inward_register.xlsx")
}

func (c *ReportController) ExportOutwardRegister(ctx *fiber.Ctx) error {
	query := c.DB.Preload("Company").Preload("Transporter").Order("entry_date ASC, lot_no ASC")
	if from := ctx.Query("from", ""); from != "" {
		query = query.Where("entry_date >= ?", from)
	}
	if to := ctx.Query("to", ""); to != "" {
		query = query.Where("entry_date <= ?", to)
	}

	var entries []models.OutwardEntry
	if err := query.Find(&entries).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	f := excelize.NewFile()
	sheet := "Sheet1"

	f.SetCellValue(sheet, "A1", "Lot No")
	f.SetCellValue(sheet, "B1", "Manifest No")
	f.SetCellValue(sheet, "C1", "Entry Date")
	f.SetCellValue(sheet, "D1", "Facility")
	f.SetCellValue(sheet, "E1", "Transporter")
	f.SetCellValue(sheet, "F1", "Waste Name")
	f.SetCellValue(sheet, "G1", "Quantity")
	f.SetCellValue(sheet, "H1", "Unit")
	f.SetCellValue(sheet, "I1", "Rate")
	f.SetCellValue(sheet, "J1", "Amount")
	f.SetCellValue(sheet, "K1", "Vehicle No")

	for i, e := range entries {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), e.LotNo)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), e.ManifestNo)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), e.EntryDate)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), e.Company.CompanyName)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), e.Transporter.TransporterName)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), e.WasteName)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), e.Quantity)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), e.Unit)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), e.Rate)
		f.SetCellValue(sheet, fmt.Sprintf("J%d", row), e.Amount)
		f.SetCellValue(sheet, fmt.Sprintf("K%d", row), e.VehicleNo)
	}

	return writeWorkbook(ctx, f, "outward_register.xlsx")
}

// ExportInvoice writes one invoice as a workbook: header block, billed
// material lines, tax block and the covered manifests.
func (c *ReportController) ExportInvoice(ctx *fiber.Ctx) error {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	repo := repositories.NewInvoiceRepository(c.DB)
	invoice, err := repo.GetWithChildren(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Invoice not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	f := excelize.NewFile()
	sheet := "Sheet1"

	f.SetCellValue(sheet, "A1", "Invoice No")
	f.SetCellValue(sheet, "B1", invoice.InvoiceNo)
	f.SetCellValue(sheet, "A2", "Invoice Date")
	f.SetCellValue(sheet, "B2", invoice.InvoiceDate)
	f.SetCellValue(sheet, "A3", "Invoice Type")
	f.SetCellValue(sheet, "B3", invoice.InvoiceType)
	f.SetCellValue(sheet, "A4", "Company")
	f.SetCellValue(sheet, "B4", invoice.Company.CompanyName)
	f.SetCellValue(sheet, "A5", "GST No")
	f.SetCellValue(sheet, "B5", invoice.Company.GSTNo)

	f.SetCellValue(sheet, "A7", "Material")
	f.SetCellValue(sheet, "B7", "HSN Code")
	f.SetCellValue(sheet, "C7", "Quantity")
	f.SetCellValue(sheet, "D7", "Unit")
	f.SetCellValue(sheet, "E7", "Rate")
	f.SetCellValue(sheet, "F7", "Amount")

	row := 8
	for _, m := range invoice.Materials {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), m.MaterialName)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), m.HSNCode)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), m.Quantity)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), m.Unit)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), m.Rate)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), m.Amount)
		row++
	}

	row++
	f.SetCellValue(sheet, fmt.Sprintf("E%d", row), "Sub Total")
	f.SetCellValue(sheet, fmt.Sprintf("F%d", row), invoice.SubTotal)
	row++
	f.SetCellValue(sheet, fmt.Sprintf("E%d", row), "Additional Charges")
	f.SetCellValue(sheet, fmt.Sprintf("F%d", row), invoice.AdditionalCharges)
	row++
	f.SetCellValue(sheet, fmt.Sprintf("E%d", row), fmt.Sprintf("CGST %.2f%%", invoice.CGSTPercent))
	f.SetCellValue(sheet, fmt.Sprintf("F%d", row), invoice.CGSTAmount)
	row++
	f.SetCellValue(sheet, fmt.Sprintf("E%d", row), fmt.Sprintf("SGST %.2f%%", invoice.SGSTPercent))
	f.SetCellValue(sheet, fmt.Sprintf("F%d", row), invoice.SGSTAmount)
	row++
	f.SetCellValue(sheet, fmt.Sprintf("E%d", row), "Grand Total")
	f.SetCellValue(sheet, fmt.Sprintf("F%d", row), invoice.GrandTotal)

	row += 2
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Manifest No")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), "Lot No")
	f.SetCellValue(sheet, fmt.Sprintf("C%d", row), "Date")
	row++
	for _, m := range invoice.Manifests {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), m.ManifestNo)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), m.LotNo)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), m.ManifestDate)
		row++
	}

	return writeWorkbook(ctx, f, invoice.InvoiceNo+".xlsx")
}
