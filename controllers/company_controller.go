package controllers

import (
	"errors"
	"fmt"
	"strconv"

	"wastetrack/models"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type CompanyController struct {
	DB *gorm.DB
}

func NewCompanyController(db *gorm.DB) *CompanyController {
	return &CompanyController{DB: db}
}

func (c *CompanyController) CreateCompany(ctx *fiber.Ctx) error {
	var company models.Company
	if err := ctx.BodyParser(&company); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(company); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	company.IsActive = true
	company.CreatedBy = actorID(ctx)

	if err := c.DB.Create(&company).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Company created successfully", "data": company})
}

func (c *CompanyController) GetAllCompanies(ctx *fiber.Ctx) error {
	var companies []models.Company
	var total int64

	page, limit, offset := pageParams(ctx)
	search := ctx.Query("search", "")

	query := c.DB.Model(&models.Company{})
	if search != "" {
		query = query.Where("company_name LIKE ? OR gst_no LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	query.Count(&total)

	if err := query.Offset(offset).Limit(limit).Order("company_name ASC").Find(&companies).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Companies found",
		"data":    companies,
		"meta":    paginationMeta(total, page, limit),
	})
}

func (c *CompanyController) GetCompanyByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var company models.Company
	if err := c.DB.Preload("Materials").First(&company, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Company not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Company found", "data": company})
}

func (c *CompanyController) UpdateCompany(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var existing models.Company
	if err := c.DB.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Company not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var company models.Company
	if err := ctx.BodyParser(&company); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	company.UpdatedBy = actorID(ctx)

	if err := c.DB.Model(&existing).Omit("Materials").Updates(company).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Company updated successfully", "data": existing})
}

func (c *CompanyController) DeleteCompany(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var company models.Company
	if err := c.DB.First(&company, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Company not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	// A company with shipments on file must stay on the books.
	var linked int64
	c.DB.Model(&models.InwardEntry{}).Where("company_id = ?", company.ID).Count(&linked)
	if linked == 0 {
		c.DB.Model(&models.OutwardEntry{}).Where("company_id = ?", company.ID).Count(&linked)
	}
	if linked > 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Company has linked entries and cannot be deleted",
		})
	}

	company.DeletedBy = actorID(ctx)
	if err := c.DB.Select("deleted_by").Updates(&company).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Delete(&company).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Company deleted successfully"})
}

func (c *CompanyController) GetMaterials(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var materials []models.CompanyMaterial
	if err := c.DB.Where("company_id = ?", id).Order("material_name ASC").Find(&materials).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Materials found", "data": materials})
}

// ReplaceMaterials swaps the company's whole price list for the posted one.
func (c *CompanyController) ReplaceMaterials(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var company models.Company
	if err := c.DB.First(&company, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Company not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var materials []models.CompanyMaterial
	if err := ctx.BodyParser(&materials); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	for _, m := range materials {
		if err := validate.Struct(m); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}

	err = c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("company_id = ?", company.ID).Delete(&models.CompanyMaterial{}).Error; err != nil {
			return err
		}
		for i := range materials {
			materials[i].ID = 0
			materials[i].CompanyID = company.ID
			materials[i].CreatedBy = actorID(ctx)
			if materials[i].Unit == "" {
				materials[i].Unit = "KG"
			}
			if err := tx.Create(&materials[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Price list updated", "data": materials})
}

type PriceListUploadResult struct {
	TotalRows    int      `json:"total_rows"`
	SuccessCount int      `json:"success_count"`
	SkippedCount int      `json:"skipped_count"`
	ErrorCount   int      `json:"error_count"`
	Errors       []string `json:"errors"`
}

// UploadPriceList imports a price list sheet: company_id | material_name |
// unit | rate, one header row.
func (c *CompanyController) UploadPriceList(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "File is required",
		})
	}

	fileContent, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to open file",
		})
	}
	defer fileContent.Close()

	f, err := excelize.OpenReader(fileContent)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to read Excel file",
		})
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "No sheets found in Excel file",
		})
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to read rows",
		})
	}

	if len(rows) < 2 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Excel file must contain header and at least one data row",
		})
	}

	result := PriceListUploadResult{TotalRows: len(rows) - 1}

	for i, row := range rows[1:] {
		rowNo := i + 2
		if len(row) < 4 {
			result.SkippedCount++
			continue
		}

		companyID, err := strconv.Atoi(row[0])
		if err != nil || companyID <= 0 {
			result.ErrorCount++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: invalid company id %q", rowNo, row[0]))
			continue
		}

		materialName := row[1]
		if materialName == "" {
			result.SkippedCount++
			continue
		}

		unit := row[2]
		if unit == "" {
			unit = "KG"
		}

		rate, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			result.ErrorCount++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: invalid rate %q", rowNo, row[3]))
			continue
		}

		var company models.Company
		if err := c.DB.First(&company, companyID).Error; err != nil {
			result.ErrorCount++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: company %d not found", rowNo, companyID))
			continue
		}

		material := models.CompanyMaterial{
			CompanyID:    uint(companyID),
			MaterialName: materialName,
			Unit:         unit,
			Rate:         rate,
			CreatedBy:    actorID(ctx),
		}

		var existing models.CompanyMaterial
		err = c.DB.Where("company_id = ? AND material_name = ?", companyID, materialName).First(&existing).Error
		if err == nil {
			existing.Unit = unit
			existing.Rate = rate
			existing.UpdatedBy = actorID(ctx)
			c.DB.Save(&existing)
			result.SuccessCount++
			continue
		}

		if err := c.DB.Create(&material).Error; err != nil {
			result.ErrorCount++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNo, err))
			continue
		}
		result.SuccessCount++
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Price list processed",
		"data":    result,
	})
}
