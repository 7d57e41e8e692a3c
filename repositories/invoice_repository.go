package repositories

import (
	"wastetrack/models"

	"gorm.io/gorm"
)

type InvoiceRepository struct {
	DB *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{DB: db}
}

func (r *InvoiceRepository) GenerateInvoiceNo() (string, error) {
	return nextNumber(r.DB, &models.Invoice{}, "invoice_no", "INV")
}

// GetOpen returns the company's invoices that are not fully paid. The
// invoice screen offers these as append targets instead of opening a new
// invoice.
func (r *InvoiceRepository) GetOpen(companyID uint, invoiceType string) ([]models.Invoice, error) {
	var invoices []models.Invoice
	query := r.DB.Where("company_id = ? AND payment_status <> ?", companyID, models.PaymentStatusPaid)
	if invoiceType != "" {
		query = query.Where("invoice_type = ?", invoiceType)
	}
	err := query.Order("invoice_date DESC, invoice_no DESC").Find(&invoices).Error
	return invoices, err
}

func (r *InvoiceRepository) GetWithChildren(id int64) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.DB.Preload("Company").
		Preload("Materials").
		Preload("Manifests").
		Preload("Payments").
		First(&invoice, id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// UnlinkEntries clears the invoice link on every inward and outward entry
// that points at the invoice. Used before invoice delete.
func (r *InvoiceRepository) UnlinkEntries(invoiceID int64) error {
	if err := r.DB.Model(&models.InwardEntry{}).
		Where("invoice_id = ?", invoiceID).
		Update("invoice_id", nil).Error; err != nil {
		return err
	}
	return r.DB.Model(&models.OutwardEntry{}).
		Where("invoice_id = ?", invoiceID).
		Update("invoice_id", nil).Error
}
