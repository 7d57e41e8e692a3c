// database/seeder.go
package database

import (
	"log"

	"wastetrack/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func RunSeeders(db *gorm.DB) {
	SeedAdminUser(db)
	SeedTransporters(db)
}

func SeedAdminUser(db *gorm.DB) {
	var existing models.User
	err := db.Where("username = ?", "admin").First(&existing).Error
	if err == nil {
		return
	}
	if err != gorm.ErrRecordNotFound {
		log.Fatalf("Unexpected DB error: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	admin := models.User{
		Name:     "Administrator",
		Username: "admin",
		Email:    "admin@wastetrack.local",
		Password: string(hashed),
		Role:     models.RoleAdmin,
		IsActive: true,
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}
}

func SeedTransporters(db *gorm.DB) {
	transporters := []models.Transporter{
		{TransporterName: "OWN VEHICLE", IsActive: true},
	}

	for _, t := range transporters {
		var existing models.Transporter
		if err := db.Where("transporter_name = ?", t.TransporterName).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				db.Create(&t)
			}
		}
	}
}
