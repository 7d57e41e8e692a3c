// database/migrate.go
package database

import (
	"wastetrack/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserSession{},
		&models.LoginLog{},
		&models.Company{},
		&models.CompanyMaterial{},
		&models.Transporter{},
		&models.InwardEntry{},
		&models.OutwardEntry{},
		&models.Invoice{},
		&models.InvoiceMaterial{},
		&models.InvoiceManifest{},
		&models.Payment{},
		&models.ReminderLog{},
		&models.TransactionHistory{},
	)
}
