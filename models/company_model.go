package models

import "gorm.io/gorm"

// Company is a waste generator we collect from (inward) or a disposal /
// recycling facility we ship to (outward).
type Company struct {
	gorm.Model
	CompanyName   string `json:"company_name" gorm:"unique" validate:"required,min=3"`
	GSTNo         string `json:"gst_no"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	IsActive      bool   `json:"is_active" gorm:"default:true"`
	CreatedBy     int
	UpdatedBy     int
	DeletedBy     int

	// Relations
	Materials []CompanyMaterial `gorm:"foreignKey:CompanyID;references:ID;constraint:OnDelete:CASCADE" json:"materials"`
}

// CompanyMaterial is one row of the company's agreed price list. The rate
// autofills new inward entries for that company and material.
type CompanyMaterial struct {
	gorm.Model
	CompanyID    uint    `json:"company_id" gorm:"index"`
	MaterialName string  `json:"material_name" validate:"required"`
	Unit         string  `json:"unit" gorm:"default:'KG'"`
	Rate         float64 `json:"rate" gorm:"type:decimal(12,2);default:0"`
	CreatedBy    int
	UpdatedBy    int
}
