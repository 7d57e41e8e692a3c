package repositories

import (
	"wastetrack/models"

	"gorm.io/gorm"
)

type InwardRepository struct {
	DB *gorm.DB
}

func NewInwardRepository(db *gorm.DB) *InwardRepository {
	return &InwardRepository{DB: db}
}

func (r *InwardRepository) GenerateLotNo() (string, error) {
	return nextNumber(r.DB, &models.InwardEntry{}, "lot_no", "LOT")
}

// GetUninvoiced returns the company's inward entries not yet linked to any
// invoice, oldest first. These feed the invoice creation screen.
func (r *InwardRepository) GetUninvoiced(companyID uint) ([]models.InwardEntry, error) {
	var entries []models.InwardEntry
	err := r.DB.Preload("Company").Preload("Transporter").
		Where("company_id = ? AND invoice_id IS NULL", companyID).
		Order("entry_date ASC, lot_no ASC").
		Find(&entries).Error
	return entries, err
}

func (r *InwardRepository) GetByIDs(ids []int64) ([]models.InwardEntry, error) {
	var entries []models.InwardEntry
	err := r.DB.Where("id IN ?", ids).Find(&entries).Error
	return entries, err
}

// MaterialRate looks up the agreed rate for a material on the company's
// price list. Returns 0 with no error when the material is not listed.
func (r *InwardRepository) MaterialRate(companyID uint, materialName string) (float64, error) {
	var material models.CompanyMaterial
	err := r.DB.Where("company_id = ? AND material_name = ?", companyID, materialName).
		First(&material).Error
	if err == gorm.ErrRecordNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return material.Rate, nil
}
