package repositories

import (
	"wastetrack/models"

	"gorm.io/gorm"
)

type OutwardRepository struct {
	DB *gorm.DB
}

func NewOutwardRepository(db *gorm.DB) *OutwardRepository {
	return &OutwardRepository{DB: db}
}

func (r *OutwardRepository) GenerateLotNo() (string, error) {
	return nextNumber(r.DB, &models.OutwardEntry{}, "lot_no", "OUT")
}

func (r *OutwardRepository) GetUninvoiced(companyID uint) ([]models.OutwardEntry, error) {
	var entries []models.OutwardEntry
	err := r.DB.Preload("Company").Preload("Transporter").
		Where("company_id = ? AND invoice_id IS NULL", companyID).
		Order("entry_date ASC, lot_no ASC").
		Find(&entries).Error
	return entries, err
}

func (r *OutwardRepository) GetByIDs(ids []int64) ([]models.OutwardEntry, error) {
	var entries []models.OutwardEntry
	err := r.DB.Where("id IN ?", ids).Find(&entries).Error
	return entries, err
}
