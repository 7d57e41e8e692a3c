package services

import (
	"fmt"
	"time"

	"wastetrack/models"
	"wastetrack/repositories"
	"wastetrack/types"

	"gorm.io/gorm"
)

type InvoiceService struct {
	DB       *gorm.DB
	invoices *repositories.InvoiceRepository
	inward   *repositories.InwardRepository
	outward  *repositories.OutwardRepository
}

func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{
		DB:       db,
		invoices: repositories.NewInvoiceRepository(db),
		inward:   repositories.NewInwardRepository(db),
		outward:  repositories.NewOutwardRepository(db),
	}
}

type MaterialInput struct {
	MaterialName string  `json:"material_name" validate:"required"`
	HSNCode      string  `json:"hsn_code"`
	Quantity     float64 `json:"quantity" validate:"required,gt=0"`
	Unit         string  `json:"unit"`
	Rate         float64 `json:"rate"`
}

type CreateInvoiceInput struct {
	InvoiceType       string              `json:"invoice_type" validate:"required,oneof=Inward Outward Transporter"`
	CompanyID         uint                `json:"company_id" validate:"required"`
	InvoiceDate       string              `json:"invoice_date"`
	CGSTPercent       float64             `json:"cgst_percent"`
	SGSTPercent       float64             `json:"sgst_percent"`
	AdditionalCharges float64             `json:"additional_charges"`
	EntryIDs          []types.SnowflakeID `json:"entry_ids"`
	Materials         []MaterialInput     `json:"materials"`
	Remarks           string              `json:"remarks"`
}

type AppendInvoiceInput struct {
	EntryIDs          []types.SnowflakeID `json:"entry_ids"`
	Materials         []MaterialInput     `json:"materials"`
	AdditionalCharges *float64            `json:"additional_charges"`
	Remarks           string              `json:"remarks"`
}

type PaymentInput struct {
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	PaymentDate string  `json:"payment_date"`
	PaymentMode string  `json:"payment_mode"`
	ReferenceNo string  `json:"reference_no"`
	Remarks     string  `json:"remarks"`
}

func manualMaterials(inputs []MaterialInput) []models.InvoiceMaterial {
	materials := make([]models.InvoiceMaterial, 0, len(inputs))
	for _, in := range inputs {
		unit := in.Unit
		if unit == "" {
			unit = "KG"
		}
		materials = append(materials, models.InvoiceMaterial{
			MaterialName: in.MaterialName,
			HSNCode:      in.HSNCode,
			Quantity:     in.Quantity,
			Unit:         unit,
			Rate:         in.Rate,
			Amount:       round2(in.Quantity * in.Rate),
		})
	}
	return materials
}

func toInt64(ids []types.SnowflakeID) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		out = append(out, int64(id))
	}
	return out
}

// collectEntryLines loads and guards the entries selected for billing. Every
// entry must exist, belong to the invoice's company and not be linked to an
// invoice already.
func (s *InvoiceService) collectEntryLines(invoiceType string, companyID uint, entryIDs []int64) ([]EntryLine, error) {
	if len(entryIDs) == 0 {
		return nil, nil
	}

	switch invoiceType {
	case models.InvoiceTypeInward:
		entries, err := s.inward.GetByIDs(entryIDs)
		if err != nil {
			return nil, err
		}
		if len(entries) != len(entryIDs) {
			return nil, NewValidationError("one or more selected inward entries do not exist")
		}
		for _, e := range entries {
			if e.InvoiceID != nil {
				return nil, NewValidationError(fmt.Sprintf("entry %s is already invoiced", e.LotNo))
			}
			if e.CompanyID != companyID {
				return nil, NewValidationError(fmt.Sprintf("entry %s belongs to another company", e.LotNo))
			}
		}
		return LinesFromInward(entries), nil
	case models.InvoiceTypeOutward:
		entries, err := s.outward.GetByIDs(entryIDs)
		if err != nil {
			return nil, err
		}
		if len(entries) != len(entryIDs) {
			return nil, NewValidationError("one or more selected outward entries do not exist")
		}
		for _, e := range entries {
			if e.InvoiceID != nil {
				return nil, NewValidationError(fmt.Sprintf("entry %s is already invoiced", e.LotNo))
			}
			if e.CompanyID != companyID {
				return nil, NewValidationError(fmt.Sprintf("entry %s belongs to another company", e.LotNo))
			}
		}
		return LinesFromOutward(entries), nil
	default:
		return nil, NewValidationError("transporter invoices take manual material lines, not entry links")
	}
}

func (s *InvoiceService) linkEntries(tx *gorm.DB, invoiceType string, invoiceID int64, entryIDs []int64, actor int) error {
	if len(entryIDs) == 0 {
		return nil
	}
	var model interface{}
	if invoiceType == models.InvoiceTypeInward {
		model = &models.InwardEntry{}
	} else {
		model = &models.OutwardEntry{}
	}
	return tx.Model(model).
		Where("id IN ?", entryIDs).
		Updates(map[string]interface{}{"invoice_id": invoiceID, "updated_by": actor}).Error
}

func (s *InvoiceService) CreateInvoice(input CreateInvoiceInput, actor int) (*models.Invoice, error) {
	var company models.Company
	if err := s.DB.First(&company, input.CompanyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, NewValidationError("company does not exist")
		}
		return nil, err
	}

	entryIDs := toInt64(input.EntryIDs)
	lines, err := s.collectEntryLines(input.InvoiceType, input.CompanyID, entryIDs)
	if err != nil {
		return nil, err
	}

	materials := AggregateMaterials(lines)
	materials = MergeMaterials(materials, manualMaterials(input.Materials))
	if len(materials) == 0 {
		return nil, NewValidationError("invoice needs at least one entry or material line")
	}

	subTotal, cgst, sgst, grand := ComputeTotals(materials, input.AdditionalCharges, input.CGSTPercent, input.SGSTPercent)

	invoiceNo, err := s.invoices.GenerateInvoiceNo()
	if err != nil {
		return nil, err
	}

	invoiceDate := input.InvoiceDate
	if invoiceDate == "" {
		invoiceDate = time.Now().Format("2006-01-02")
	}

	invoice := models.Invoice{
		InvoiceNo:         invoiceNo,
		InvoiceType:       input.InvoiceType,
		CompanyID:         input.CompanyID,
		InvoiceDate:       invoiceDate,
		SubTotal:          subTotal,
		AdditionalCharges: input.AdditionalCharges,
		CGSTPercent:       input.CGSTPercent,
		SGSTPercent:       input.SGSTPercent,
		CGSTAmount:        cgst,
		SGSTAmount:        sgst,
		GrandTotal:        grand,
		PaymentStatus:     models.PaymentStatusUnpaid,
		Remarks:           input.Remarks,
		CreatedBy:         actor,
		Materials:         materials,
		Manifests:         BuildManifests(lines),
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}
		return s.linkEntries(tx, input.InvoiceType, invoice.ID, entryIDs, actor)
	})
	if err != nil {
		return nil, err
	}

	return &invoice, nil
}

// AppendToInvoice merges newly selected entries and material lines into an
// existing, not fully paid invoice instead of opening a new one. Material
// rows with the same name, unit and rate gain quantity, everything else is
// appended; totals are recomputed with the invoice's stored tax rates.
// AmountPaid is preserved, so a Paid invoice a user appends to would drop
// back to Partial — which is why fully paid invoices refuse appends.
func (s *InvoiceService) AppendToInvoice(invoiceID int64, input AppendInvoiceInput, actor int) (*models.Invoice, error) {
	invoice, err := s.invoices.GetWithChildren(invoiceID)
	if err != nil {
		return nil, err
	}

	if invoice.PaymentStatus == models.PaymentStatusPaid {
		return nil, NewValidationError("invoice is fully paid; create a new invoice instead")
	}

	entryIDs := toInt64(input.EntryIDs)
	lines, err := s.collectEntryLines(invoice.InvoiceType, invoice.CompanyID, entryIDs)
	if err != nil {
		return nil, err
	}

	incoming := AggregateMaterials(lines)
	incoming = MergeMaterials(incoming, manualMaterials(input.Materials))
	if len(incoming) == 0 {
		return nil, NewValidationError("nothing to append")
	}

	merged := MergeMaterials(invoice.Materials, incoming)

	if input.AdditionalCharges != nil {
		invoice.AdditionalCharges = *input.AdditionalCharges
	}
	if input.Remarks != "" {
		invoice.Remarks = input.Remarks
	}

	subTotal, cgst, sgst, grand := ComputeTotals(merged, invoice.AdditionalCharges, invoice.CGSTPercent, invoice.SGSTPercent)
	invoice.SubTotal = subTotal
	invoice.CGSTAmount = cgst
	invoice.SGSTAmount = sgst
	invoice.GrandTotal = grand
	invoice.PaymentStatus = DerivePaymentStatus(invoice.AmountPaid, grand)
	if invoice.PaymentStatus != models.PaymentStatusPaid {
		invoice.PaymentDate = ""
	}
	invoice.UpdatedBy = actor

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		for i := range merged {
			merged[i].InvoiceID = invoice.ID
			if err := tx.Save(&merged[i]).Error; err != nil {
				return err
			}
		}
		for _, manifest := range BuildManifests(lines) {
			manifest.InvoiceID = invoice.ID
			if err := tx.Create(&manifest).Error; err != nil {
				return err
			}
		}
		if err := s.linkEntries(tx, invoice.InvoiceType, invoice.ID, entryIDs, actor); err != nil {
			return err
		}
		invoice.Materials = nil
		invoice.Manifests = nil
		invoice.Payments = nil
		return tx.Omit("Materials", "Manifests", "Payments", "Company").Save(invoice).Error
	})
	if err != nil {
		return nil, err
	}

	return s.invoices.GetWithChildren(invoiceID)
}

// UpdateHeaderInput carries the editable invoice header fields. Totals are
// recomputed; material lines are changed through the append workflow only.
type UpdateHeaderInput struct {
	InvoiceDate       string   `json:"invoice_date"`
	AdditionalCharges *float64 `json:"additional_charges"`
	CGSTPercent       *float64 `json:"cgst_percent"`
	SGSTPercent       *float64 `json:"sgst_percent"`
	Remarks           string   `json:"remarks"`
}

func (s *InvoiceService) UpdateHeader(invoiceID int64, input UpdateHeaderInput, actor int) (*models.Invoice, error) {
	invoice, err := s.invoices.GetWithChildren(invoiceID)
	if err != nil {
		return nil, err
	}

	if input.InvoiceDate != "" {
		invoice.InvoiceDate = input.InvoiceDate
	}
	if input.AdditionalCharges != nil {
		invoice.AdditionalCharges = *input.AdditionalCharges
	}
	if input.CGSTPercent != nil {
		invoice.CGSTPercent = *input.CGSTPercent
	}
	if input.SGSTPercent != nil {
		invoice.SGSTPercent = *input.SGSTPercent
	}
	if input.Remarks != "" {
		invoice.Remarks = input.Remarks
	}

	subTotal, cgst, sgst, grand := ComputeTotals(invoice.Materials, invoice.AdditionalCharges, invoice.CGSTPercent, invoice.SGSTPercent)
	invoice.SubTotal = subTotal
	invoice.CGSTAmount = cgst
	invoice.SGSTAmount = sgst
	invoice.GrandTotal = grand
	invoice.PaymentStatus = DerivePaymentStatus(invoice.AmountPaid, grand)
	if invoice.PaymentStatus != models.PaymentStatusPaid {
		invoice.PaymentDate = ""
	}
	invoice.UpdatedBy = actor

	if err := s.DB.Omit("Materials", "Manifests", "Payments", "Company").Save(invoice).Error; err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *InvoiceService) RecordPayment(invoiceID int64, input PaymentInput, actor int) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := s.DB.First(&invoice, invoiceID).Error; err != nil {
		return nil, err
	}

	if input.Amount <= 0 {
		return nil, NewValidationError("payment amount must be greater than zero")
	}
	outstanding := round2(invoice.GrandTotal - invoice.AmountPaid)
	if input.Amount > outstanding+0.01 {
		return nil, NewValidationError(fmt.Sprintf("payment exceeds outstanding balance of %.2f", outstanding))
	}

	paymentDate := input.PaymentDate
	if paymentDate == "" {
		paymentDate = time.Now().Format("2006-01-02")
	}
	paymentMode := input.PaymentMode
	if paymentMode == "" {
		paymentMode = "NEFT"
	}

	payment := models.Payment{
		InvoiceID:   invoice.ID,
		Amount:      input.Amount,
		PaymentDate: paymentDate,
		PaymentMode: paymentMode,
		ReferenceNo: input.ReferenceNo,
		Remarks:     input.Remarks,
		CreatedBy:   actor,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		invoice.AmountPaid = round2(invoice.AmountPaid + input.Amount)
		invoice.PaymentStatus = DerivePaymentStatus(invoice.AmountPaid, invoice.GrandTotal)
		if invoice.PaymentStatus == models.PaymentStatusPaid {
			invoice.PaymentDate = paymentDate
		}
		invoice.UpdatedBy = actor
		return tx.Save(&invoice).Error
	})
	if err != nil {
		return nil, err
	}

	return &invoice, nil
}

// DeletePayment reverses one recorded payment and re-derives the invoice's
// payment fields.
func (s *InvoiceService) DeletePayment(paymentID uint, actor int) (*models.Invoice, error) {
	var payment models.Payment
	if err := s.DB.First(&payment, paymentID).Error; err != nil {
		return nil, err
	}

	var invoice models.Invoice
	if err := s.DB.First(&invoice, payment.InvoiceID).Error; err != nil {
		return nil, err
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&payment).Error; err != nil {
			return err
		}
		invoice.AmountPaid = round2(invoice.AmountPaid - payment.Amount)
		if invoice.AmountPaid < 0 {
			invoice.AmountPaid = 0
		}
		invoice.PaymentStatus = DerivePaymentStatus(invoice.AmountPaid, invoice.GrandTotal)
		if invoice.PaymentStatus != models.PaymentStatusPaid {
			invoice.PaymentDate = ""
		}
		invoice.UpdatedBy = actor
		return tx.Save(&invoice).Error
	})
	if err != nil {
		return nil, err
	}

	return &invoice, nil
}

// DeleteInvoice unlinks every entry first so the shipments become billable
// again, then soft deletes the invoice with its children.
func (s *InvoiceService) DeleteInvoice(invoiceID int64, actor int) error {
	var invoice models.Invoice
	if err := s.DB.First(&invoice, invoiceID).Error; err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		repo := repositories.NewInvoiceRepository(tx)
		if err := repo.UnlinkEntries(invoice.ID); err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.InvoiceMaterial{}).Error; err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.InvoiceManifest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		invoice.DeletedBy = actor
		if err := tx.Select("deleted_by").Updates(&invoice).Error; err != nil {
			return err
		}
		return tx.Delete(&invoice).Error
	})
}
