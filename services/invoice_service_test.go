package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"wastetrack/database"
	"wastetrack/models"
	"wastetrack/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var dbSeq int64

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedCompany(t *testing.T, db *gorm.DB, name string) models.Company {
	t.Helper()
	company := models.Company{CompanyName: name, GSTNo: "27AAAPL1234C1ZV", IsActive: true}
	require.NoError(t, db.Create(&company).Error)
	return company
}

var lotSeq int64

func seedInward(t *testing.T, db *gorm.DB, companyID uint, waste string, qty, rate float64) models.InwardEntry {
	t.Helper()
	entry := models.InwardEntry{
		LotNo:      fmt.Sprintf("LOT99%08d", atomic.AddInt64(&lotSeq, 1)),
		ManifestNo: fmt.Sprintf("MF-%d", lotSeq),
		CompanyID:  companyID,
		WasteName:  waste,
		Quantity:   qty,
		Unit:       "KG",
		Rate:       rate,
		Amount:     qty * rate,
		EntryDate:  "2026-08-01",
	}
	require.NoError(t, db.Create(&entry).Error)
	return entry
}

func entryIDs(entries ...models.InwardEntry) []types.SnowflakeID {
	ids := make([]types.SnowflakeID, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, types.SnowflakeID(e.ID))
	}
	return ids
}

func TestCreateInvoiceFromEntries(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInvoiceService(db)
	company := seedCompany(t, db, "Acme Chemicals")

	e1 := seedInward(t, db, company.ID, "Spent Solvent", 60, 12.5)
	e2 := seedInward(t, db, company.ID, "Spent Solvent", 40, 12.5)

	invoice, err := svc.CreateInvoice(CreateInvoiceInput{
		InvoiceType: models.InvoiceTypeInward,
		CompanyID:   company.ID,
		InvoiceDate: "2026-08-15",
		CGSTPercent: 9,
		SGSTPercent: 9,
		EntryIDs:    entryIDs(e1, e2),
	}, 1)
	require.NoError(t, err)

	assert.Contains(t, invoice.InvoiceNo, "INV")
	require.Len(t, invoice.Materials, 1)
	assert.Equal(t, 100.0, invoice.Materials[0].Quantity)
	assert.Equal(t, 1250.0, invoice.Materials[0].Amount)
	assert.Len(t, invoice.Manifests, 2)

	assert.Equal(t, 1250.0, invoice.SubTotal)
	assert.Equal(t, 112.5, invoice.CGSTAmount)
	assert.Equal(t, 112.5, invoice.SGSTAmount)
	assert.Equal(t, 1475.0, invoice.GrandTotal)
	assert.Equal(t, models.PaymentStatusUnpaid, invoice.PaymentStatus)

	// Both entries now point at the invoice.
	var linked int64
	db.Model(&models.InwardEntry{}).Where("invoice_id = ?", invoice.ID).Count(&linked)
	assert.Equal(t, int64(2), linked)
}

func TestCreateInvoiceRejectsAlreadyInvoicedEntry(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInvoiceService(db)
	company := seedCompany(t, db, "Acme Chemicals")

	e1 := seedInward(t, db, company.ID, "Spent Solvent", 60, 12.5)

	_, err := svc.CreateInvoice(CreateInvoiceInput{
		InvoiceType: models.InvoiceTypeInward,
		CompanyID:   company.ID,
		EntryIDs:    entryIDs(e1),
	}, 1)
	require.NoError(t, err)

	_, err = svc.CreateInvoice(CreateInvoiceInput{
		InvoiceType: models.InvoiceTypeInward,
		CompanyID:   company.ID,
		EntryIDs:    entryIDs(e1),
	}, 1)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "already invoiced")
}

func TestCreateInvoiceRejectsForeignCompanyEntry(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInvoiceService(db)
	companyA := seedCompany(t, db, "Acme Chemicals")
	companyB := seedCompany(t, db, "Bharat Pigments")

	entry := seedInward(t, db, companyB.ID, "ETP Sludge", 40, 8)

	_, err := svc.CreateInvoice(CreateInvoiceInput{
		InvoiceType: models.InvoiceTypeInward,
		CompanyID:   companyA.ID,
		EntryIDs:    entryIDs(entry),
	}, 1)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "another company")
}

func TestCreateInvoiceNeedsSomethingToBill(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInvoiceService(db)
	company := seedCompany(t, db, "Acme Chemicals")

	_, err := svc.CreateInvoice(CreateInvoiceInput{
		InvoiceType: models.InvoiceTypeInward,
		CompanyID:   company.ID,
	}, 1)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestCreateTransporterInvoiceWithManualLines(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInvoiceService(db)
	company := seedCompany(t, db, "Safe Haul Logistics")

	invoice, err := svc.CreateInvoice(CreateInvoiceInput{
		InvoiceType: models.InvoiceTypeTransporter,
		CompanyID:   company.ID,
		CGSTPercent: 6,
		SGSTPercent: 6,
		Materials: []MaterialInput{
			{MaterialName: "Freight - August", Quantity: 4, Unit: "TRIP", Rate: 5000},
		},
	}, 1)
	require.NoError(t, err)

	assert.Equal(t, 20000.0, invoice.SubTotal)
	assert.Equal(t, 22400.0, invoice.GrandTotal)
	assert.Empty(t, invoice.Manifests)
}

func TestTransporterInvoiceRefusesEntryLinks(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInvoiceService(db)
	company := seedCompany(t, db, "Safe Haul Logistics")
	entry := seedInward(t, db, company.ID, "Spent Solvent", 10, 10)

	_, err := svc.CreateInvoice(CreateInvoiceInput{
		InvoiceType: models.InvoiceTypeTransporter,
		CompanyID:   company.ID,
		EntryIDs:    entryIDs(entry),
	}, 1)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestAppendToInvoiceMergesWithoutDoubleCount(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInvoiceService(db)
	company := seedCompany(t, db, "Acme Chemicals")

	e1 := seedInward(t, db, company.ID, "Spent Solvent", 100, 12.5)
	invoice, err := svc.CreateInvoice(CreateInvoiceInput{
		InvoiceType: models.InvoiceTypeInward,
		CompanyID:   company.ID,
		CGSTPercent: 9,
		SGSTPercent: 9,
		EntryIDs:    entryIDs(e1),
	}, 1)
	require.NoError(t, err)

	// Part payment before the next shipment arrives.
	_, err = svc.RecordPayment(invoice.ID, PaymentInput{Amount: 500, PaymentDate: "2026-08-20"}, 1)
	require.NoError(t, err)

	e2 := seedInward(t, db, company.ID, "Spent Solvent", 50, 12.5)
	updated, err := svc.AppendToInvoice(invoice.ID, AppendInvoiceInput{
		EntryIDs: entryIDs(e2),
	}, 1)
	require.NoError(t, err)

	// Matching material line grew in place, no duplicate row.
	require.Len(t, updated.Materials, 1)
	assert.Equal(t, 150.0, updated.Materials[0].Quantity)
	assert.Equal(t, 1875.0, updated.Materials[0].Amount)

	assert.Equal(t, 1875.0, updated.SubTotal)
	assert.Equal(t, 2212.5, updated.GrandTotal)

	// Payment fields survived the merge.
	assert.Equal(t, 500.0, updated.AmountPaid)
	assert.Equal(t, models.PaymentStatusPartial, updated.PaymentStatus)

	assert.Len(t, updated.Manifests, 2)

	var entry models.InwardEntry
	require.NoError(t, db.First(&entry, e2.ID).Error)
	require.NotNil(t, entry.InvoiceID)
	assert.Equal(t, invoice.ID, *entry.InvoiceID)
}

func TestAppendRefusedOnPaidInvoice(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInvoiceService(db)
	company := seedCompany(t, db, "Acme Chemicals")

	e1 := seedInward(t, db, company.ID, "Spent Solvent", 100, 10)
	invoice, err := svc.CreateInvoice(CreateInvoiceInput{
		InvoiceType: models.InvoiceTypeInward,
		CompanyID:   company.ID,
		EntryIDs:    entryIDs(e1),
	}, 1)
	require.NoError(t, err)

	_, err = svc.RecordPayment(invoice.ID, PaymentInput{Amount: 1000}, 1)
	require.NoError(t, err)

	e2 := seedInward(t, db, company.ID, "Spent Solvent", 50, 10)
	_, err = svc.AppendToInvoice(invoice.ID, AppendInvoiceInput{EntryIDs: entryIDs(e2)}, 1)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "fully paid")
}

func TestAppendRejectsEntryOnAnotherInvoice(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInvoiceService(db)
	company := seedCompany(t, db, "Acme Chemicals")

	e1 := seedInward(t, db, company.ID, "Spent Solvent", 100, 10)
	first, err := svc.CreateInvoice(CreateInvoiceInput{
		InvoiceType: models.InvoiceTypeInward,
		CompanyID:   company.ID,
		EntryIDs:    entryIDs(e1),
	}, 1)
	require.NoError(t, err)

	e2 := seedInward(t, db, company.ID, "ETP Sludge", 40, 8)
	second, err := svc.CreateInvoice(CreateInvoiceInput{
		InvoiceType: models.InvoiceTypeInward,
		CompanyID:   company.ID,
		EntryIDs:    entryIDs(e2),
	}, 1)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	_, err = svc.AppendToInvoice(first.ID, AppendInvoiceInput{EntryIDs: entryIDs(e2)}, 1)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "already invoiced")
}

func TestRecordPaymentDerivesStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInvoiceService(db)
	company := seedCompany(t, db, "Acme Chemicals")

	e1 := seedInward(t, db, company.ID, "Spent Solvent", 100, 10)
	invoice, err := svc.CreateInvoice(CreateInvoiceInput{
		InvoiceType: models.InvoiceTypeInward,
		CompanyID:   company.ID,
		EntryIDs:    entryIDs(e1),
	}, 1)
	require.NoError(t, err)
	require.Equal(t, 1000.0, invoice.GrandTotal)

	partial, err := svc.RecordPayment(invoice.ID, PaymentInput{Amount: 400, PaymentDate: "2026-08-20"}, 1)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPartial, partial.PaymentStatus)
	assert.Equal(t, 400.0, partial.AmountPaid)
	assert.Empty(t, partial.PaymentDate)

	paid, err := svc.RecordPayment(invoice.ID, PaymentInput{Amount: 600, PaymentDate: "2026-08-25"}, 1)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, paid.PaymentStatus)
	assert.Equal(t, "2026-08-25", paid.PaymentDate)
}

func TestRecordPaymentRefusesOverCapture(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInvoiceService(db)
	company := seedCompany(t, db, "Acme Chemicals")

	e1 := seedInward(t, db, company.ID, "Spent Solvent", 100, 10)
	invoice, err := svc.CreateInvoice(CreateInvoiceInput{
		InvoiceType: models.InvoiceTypeInward,
		CompanyID:   company.ID,
		EntryIDs:    entryIDs(e1),
	}, 1)
	require.NoError(t, err)

	_, err = svc.RecordPayment(invoice.ID, PaymentInput{Amount: 1200}, 1)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "exceeds outstanding")
}

func TestUpdateHeaderRederivesPaymentFields(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInvoiceService(db)
	company := seedCompany(t, db, "Acme Chemicals")

	e1 := seedInward(t, db, company.ID, "Spent Solvent", 100, 10)
	invoice, err := svc.CreateInvoice(CreateInvoiceInput{
		InvoiceType: models.InvoiceTypeInward,
		CompanyID:   company.ID,
		EntryIDs:    entryIDs(e1),
	}, 1)
	require.NoError(t, err)

	_, err = svc.RecordPayment(invoice.ID, PaymentInput{Amount: 1000, PaymentDate: "2026-08-25"}, 1)
	require.NoError(t, err)

	// Adding tax after settlement reopens the balance.
	cgst, sgst := 9.0, 9.0
	updated, err := svc.UpdateHeader(invoice.ID, UpdateHeaderInput{
		CGSTPercent: &cgst,
		SGSTPercent: &sgst,
	}, 1)
	require.NoError(t, err)

	assert.Equal(t, 1180.0, updated.GrandTotal)
	assert.Equal(t, models.PaymentStatusPartial, updated.PaymentStatus)
	assert.Empty(t, updated.PaymentDate)
	assert.Equal(t, 1000.0, updated.AmountPaid)
}

func TestDeletePaymentRevertsStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInvoiceService(db)
	company := seedCompany(t, db, "Acme Chemicals")

	e1 := seedInward(t, db, company.ID, "Spent Solvent", 100, 10)
	invoice, err := svc.CreateInvoice(CreateInvoiceInput{
		InvoiceType: models.InvoiceTypeInward,
		CompanyID:   company.ID,
		EntryIDs:    entryIDs(e1),
	}, 1)
	require.NoError(t, err)

	_, err = svc.RecordPayment(invoice.ID, PaymentInput{Amount: 1000, PaymentDate: "2026-08-25"}, 1)
	require.NoError(t, err)

	var payment models.Payment
	require.NoError(t, db.Where("invoice_id = ?", invoice.ID).First(&payment).Error)

	reverted, err := svc.DeletePayment(payment.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusUnpaid, reverted.PaymentStatus)
	assert.Zero(t, reverted.AmountPaid)
	assert.Empty(t, reverted.PaymentDate)
}

func TestDeleteInvoiceUnlinksEntries(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInvoiceService(db)
	company := seedCompany(t, db, "Acme Chemicals")

	e1 := seedInward(t, db, company.ID, "Spent Solvent", 100, 10)
	e2 := seedInward(t, db, company.ID, "Spent Solvent", 50, 10)
	invoice, err := svc.CreateInvoice(CreateInvoiceInput{
		InvoiceType: models.InvoiceTypeInward,
		CompanyID:   company.ID,
		EntryIDs:    entryIDs(e1, e2),
	}, 1)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteInvoice(invoice.ID, 1))

	var stillLinked int64
	db.Model(&models.InwardEntry{}).Where("invoice_id = ?", invoice.ID).Count(&stillLinked)
	assert.Zero(t, stillLinked)

	err = db.First(&models.Invoice{}, invoice.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
