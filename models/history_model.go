package models

import "time"

// TransactionHistory is the audit trail for entry and invoice mutations.
// RefNo holds the lot number or invoice number the action touched.
type TransactionHistory struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	RefNo     string    `json:"ref_no" gorm:"index"`
	Status    string    `json:"status"`
	Type      string    `json:"type"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy int       `json:"created_by"`
	UpdatedAt time.Time `json:"updated_at"`
	UpdatedBy int       `json:"updated_by"`
}
