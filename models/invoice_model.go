package models

import (
	"wastetrack/controllers/idgen"

	"gorm.io/gorm"
)

const (
	InvoiceTypeInward      = "Inward"
	InvoiceTypeOutward     = "Outward"
	InvoiceTypeTransporter = "Transporter"

	PaymentStatusUnpaid  = "Unpaid"
	PaymentStatusPartial = "Partial"
	PaymentStatusPaid    = "Paid"
)

// Invoice header. GrandTotal = SubTotal + AdditionalCharges + CGSTAmount +
// SGSTAmount; all money fields are recomputed server-side on every write.
type Invoice struct {
	gorm.Model
	ID          int64  `json:"id" gorm:"primary_key"`
	InvoiceNo   string `json:"invoice_no" gorm:"unique"`
	InvoiceType string `json:"invoice_type" gorm:"index" validate:"required,oneof=Inward Outward Transporter"`
	CompanyID   uint   `json:"company_id" gorm:"index" validate:"required"`
	InvoiceDate string `json:"invoice_date" gorm:"type:date"`

	SubTotal          float64 `json:"sub_total" gorm:"type:decimal(14,2)"`
	AdditionalCharges float64 `json:"additional_charges" gorm:"type:decimal(14,2)"`
	CGSTPercent       float64 `json:"cgst_percent" gorm:"type:decimal(5,2)"`
	SGSTPercent       float64 `json:"sgst_percent" gorm:"type:decimal(5,2)"`
	CGSTAmount        float64 `json:"cgst_amount" gorm:"type:decimal(14,2)"`
	SGSTAmount        float64 `json:"sgst_amount" gorm:"type:decimal(14,2)"`
	GrandTotal        float64 `json:"grand_total" gorm:"type:decimal(14,2)"`

	AmountPaid    float64 `json:"amount_paid" gorm:"type:decimal(14,2)"`
	PaymentStatus string  `json:"payment_status" gorm:"default:'Unpaid';index"`
	PaymentDate   string  `json:"payment_date" gorm:"type:date"`
	Remarks       string  `json:"remarks"`

	CreatedBy int
	UpdatedBy int
	DeletedBy int

	// Relations
	Company   Company           `gorm:"foreignKey:CompanyID" json:"company"`
	Materials []InvoiceMaterial `gorm:"foreignKey:InvoiceID;references:ID;constraint:OnDelete:CASCADE" json:"materials"`
	Manifests []InvoiceManifest `gorm:"foreignKey:InvoiceID;references:ID;constraint:OnDelete:CASCADE" json:"manifests"`
	Payments  []Payment         `gorm:"foreignKey:InvoiceID;references:ID;constraint:OnDelete:CASCADE" json:"payments"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == 0 {
		i.ID = idgen.GenerateID()
	}
	return
}

// InvoiceMaterial is one billed line on the invoice body.
type InvoiceMaterial struct {
	gorm.Model
	InvoiceID    int64   `json:"invoice_id" gorm:"index"`
	MaterialName string  `json:"material_name"`
	HSNCode      string  `json:"hsn_code"`
	Quantity     float64 `json:"quantity" gorm:"type:decimal(12,3)"`
	Unit         string  `json:"unit" gorm:"default:'KG'"`
	Rate         float64 `json:"rate" gorm:"type:decimal(12,2)"`
	Amount       float64 `json:"amount" gorm:"type:decimal(14,2)"`
}

// InvoiceManifest records which manifests/lots the invoice covers.
type InvoiceManifest struct {
	gorm.Model
	InvoiceID    int64  `json:"invoice_id" gorm:"index"`
	ManifestNo   string `json:"manifest_no"`
	LotNo        string `json:"lot_no"`
	ManifestDate string `json:"manifest_date" gorm:"type:date"`
}

type Payment struct {
	gorm.Model
	InvoiceID   int64   `json:"invoice_id" gorm:"index"`
	Amount      float64 `json:"amount" gorm:"type:decimal(14,2)" validate:"required,gt=0"`
	PaymentDate string  `json:"payment_date" gorm:"type:date"`
	PaymentMode string  `json:"payment_mode" gorm:"default:'NEFT'"`
	ReferenceNo string  `json:"reference_no"`
	Remarks     string  `json:"remarks"`
	CreatedBy   int
}

// ReminderLog keeps one row per reminder mail so the processor does not
// re-mail the same invoice inside the reminder interval.
type ReminderLog struct {
	gorm.Model
	InvoiceID int64  `json:"invoice_id" gorm:"index"`
	SentTo    string `json:"sent_to"`
}
