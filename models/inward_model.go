package models

import (
	"wastetrack/controllers/idgen"

	"gorm.io/gorm"
)

// InwardEntry is one shipment of waste received from a company. LotNo is
// generated server-side and is the reference printed on gate passes.
type InwardEntry struct {
	gorm.Model
	ID            int64   `json:"id" gorm:"primary_key"`
	LotNo         string  `json:"lot_no" gorm:"unique"`
	ManifestNo    string  `json:"manifest_no" validate:"required"`
	CompanyID     uint    `json:"company_id" gorm:"index" validate:"required"`
	TransporterID uint    `json:"transporter_id" gorm:"index"`
	WasteName     string  `json:"waste_name" validate:"required"`
	Quantity      float64 `json:"quantity" gorm:"type:decimal(12,3)" validate:"required,gt=0"`
	Unit          string  `json:"unit" gorm:"default:'KG'"`
	Rate          float64 `json:"rate" gorm:"type:decimal(12,2)"`
	Amount        float64 `json:"amount" gorm:"type:decimal(14,2)"`
	VehicleNo     string  `json:"vehicle_no"`
	EntryDate     string  `json:"entry_date" gorm:"type:date"`
	Remarks       string  `json:"remarks"`

	// An entry links to at most one invoice.
	InvoiceID *int64 `json:"invoice_id" gorm:"index;default:null"`

	CreatedBy int
	UpdatedBy int
	DeletedBy int

	// Relations
	Company     Company     `gorm:"foreignKey:CompanyID" json:"company"`
	Transporter Transporter `gorm:"foreignKey:TransporterID" json:"transporter"`
}

func (e *InwardEntry) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == 0 {
		e.ID = idgen.GenerateID()
	}
	return
}
