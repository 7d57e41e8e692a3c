package helpers

import (
	"time"

	"wastetrack/models"

	"gorm.io/gorm"
)

// InsertTransactionHistory inserts a new audit trail record. refNo is the
// lot or invoice number the action touched.
func InsertTransactionHistory(db *gorm.DB, refNo, status, txType, detail string, actor int) error {
	history := models.TransactionHistory{
		RefNo:     refNo,
		Status:    status,
		Type:      txType,
		Detail:    detail,
		CreatedAt: time.Now(),
		CreatedBy: actor,
		UpdatedAt: time.Now(),
		UpdatedBy: actor,
	}

	if err := db.Create(&history).Error; err != nil {
		return err
	}

	return nil
}
