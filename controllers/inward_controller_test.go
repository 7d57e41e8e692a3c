package controllers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"wastetrack/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newInwardApp(db *gorm.DB, role string) *fiber.App {
	app := fiber.New()
	c := NewInwardController(db)
	app.Use(asUser(1, role))
	app.Post("/inward", c.CreateInward)
	app.Get("/inward/uninvoiced", c.GetUninvoiced)
	app.Get("/inward", c.GetAllInward)
	app.Get("/inward/:id", c.GetInwardByID)
	app.Put("/inward/:id", c.UpdateInward)
	app.Delete("/inward/:id", c.DeleteInward)
	return app
}

func seedEntryCompany(t *testing.T, db *gorm.DB) models.Company {
	t.Helper()
	company := models.Company{CompanyName: "Acme Chemicals", IsActive: true}
	require.NoError(t, db.Create(&company).Error)
	return company
}

func TestCreateInwardGeneratesLotAndAmount(t *testing.T) {
	db := setupTestDB(t)
	app := newInwardApp(db, models.RoleAdmin)
	company := seedEntryCompany(t, db)

	status, body := doJSON(t, app, http.MethodPost, "/inward", fiber.Map{
		"manifest_no": "MF-1001",
		"company_id":  company.ID,
		"waste_name":  "Spent Solvent",
		"quantity":    120.5,
		"rate":        12.5,
		"entry_date":  "2026-08-29",
		"amount":      1, // ignored, server computes
	})
	require.Equal(t, http.StatusCreated, status)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "LOT"+time.Now().Format("060102")+"0001", data["lot_no"])
	assert.Equal(t, 1506.25, data["amount"])
	assert.Equal(t, "KG", data["unit"])
	assert.Nil(t, data["invoice_id"])
}

func TestCreateInwardAutofillsRateFromPriceList(t *testing.T) {
	db := setupTestDB(t)
	app := newInwardApp(db, models.RoleAdmin)
	company := seedEntryCompany(t, db)

	require.NoError(t, db.Create(&models.CompanyMaterial{
		CompanyID: company.ID, MaterialName: "ETP Sludge", Unit: "KG", Rate: 8.75,
	}).Error)

	status, body := doJSON(t, app, http.MethodPost, "/inward", fiber.Map{
		"manifest_no": "MF-1002",
		"company_id":  company.ID,
		"waste_name":  "ETP Sludge",
		"quantity":    100,
		"entry_date":  "2026-08-29",
	})
	require.Equal(t, http.StatusCreated, status)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, 8.75, data["rate"])
	assert.Equal(t, 875.0, data["amount"])
}

func TestCreateInwardUnknownCompany(t *testing.T) {
	db := setupTestDB(t)
	app := newInwardApp(db, models.RoleAdmin)

	status, body := doJSON(t, app, http.MethodPost, "/inward", fiber.Map{
		"manifest_no": "MF-1003",
		"company_id":  999,
		"waste_name":  "Spent Solvent",
		"quantity":    10,
		"entry_date":  "2026-08-29",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Company does not exist", body["error"])
}

func TestStaffListingHidesMoneyFields(t *testing.T) {
	db := setupTestDB(t)
	company := seedEntryCompany(t, db)

	require.NoError(t, db.Create(&models.InwardEntry{
		LotNo: "LOT2608290001", ManifestNo: "MF-1", CompanyID: company.ID,
		WasteName: "Spent Solvent", Quantity: 10, Unit: "KG",
		Rate: 12.5, Amount: 125, EntryDate: "2026-08-29",
	}).Error)

	adminApp := newInwardApp(db, models.RoleAdmin)
	status, body := doJSON(t, adminApp, http.MethodGet, "/inward", nil)
	require.Equal(t, http.StatusOK, status)
	row := body["data"].([]interface{})[0].(map[string]interface{})
	assert.Contains(t, row, "rate")
	assert.Contains(t, row, "amount")

	staffApp := newInwardApp(db, models.RoleStaff)
	status, body = doJSON(t, staffApp, http.MethodGet, "/inward", nil)
	require.Equal(t, http.StatusOK, status)
	row = body["data"].([]interface{})[0].(map[string]interface{})
	assert.NotContains(t, row, "rate")
	assert.NotContains(t, row, "amount")
	assert.Equal(t, "LOT2608290001", row["lot_no"])
}

func TestUninvoicedListingHidesMoneyFields(t *testing.T) {
	db := setupTestDB(t)
	company := seedEntryCompany(t, db)

	require.NoError(t, db.Create(&models.InwardEntry{
		LotNo: "LOT2608290009", ManifestNo: "MF-9", CompanyID: company.ID,
		WasteName: "Spent Solvent", Quantity: 10, Unit: "KG",
		Rate: 12.5, Amount: 125, EntryDate: "2026-08-29",
	}).Error)

	url := fmt.Sprintf("/inward/uninvoiced?company_id=%d", company.ID)

	adminApp := newInwardApp(db, models.RoleAdmin)
	status, body := doJSON(t, adminApp, http.MethodGet, url, nil)
	require.Equal(t, http.StatusOK, status)
	row := body["data"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, 12.5, row["rate"])
	assert.Equal(t, 125.0, row["amount"])
	assert.Equal(t, "Acme Chemicals", row["company_name"])

	staffApp := newInwardApp(db, models.RoleStaff)
	status, body = doJSON(t, staffApp, http.MethodGet, url, nil)
	require.Equal(t, http.StatusOK, status)
	row = body["data"].([]interface{})[0].(map[string]interface{})
	assert.NotContains(t, row, "rate")
	assert.NotContains(t, row, "amount")
	assert.Equal(t, "LOT2608290009", row["lot_no"])
}

func TestGetAllInwardInvoicedFilter(t *testing.T) {
	db := setupTestDB(t)
	app := newInwardApp(db, models.RoleAdmin)
	company := seedEntryCompany(t, db)

	invoiceID := int64(42)
	require.NoError(t, db.Create(&models.InwardEntry{
		LotNo: "LOT2608290001", ManifestNo: "MF-1", CompanyID: company.ID,
		WasteName: "Spent Solvent", Quantity: 10, Unit: "KG", EntryDate: "2026-08-29",
		InvoiceID: &invoiceID,
	}).Error)
	require.NoError(t, db.Create(&models.InwardEntry{
		LotNo: "LOT2608290002", ManifestNo: "MF-2", CompanyID: company.ID,
		WasteName: "ETP Sludge", Quantity: 20, Unit: "KG", EntryDate: "2026-08-29",
	}).Error)

	status, body := doJSON(t, app, http.MethodGet, "/inward?invoiced=false", nil)
	require.Equal(t, http.StatusOK, status)
	data := body["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "LOT2608290002", data[0].(map[string]interface{})["lot_no"])

	status, body = doJSON(t, app, http.MethodGet, "/inward?invoiced=true", nil)
	require.Equal(t, http.StatusOK, status)
	data = body["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "LOT2608290001", data[0].(map[string]interface{})["lot_no"])
}

func TestUpdateInwardRefusedOnceInvoiced(t *testing.T) {
	db := setupTestDB(t)
	app := newInwardApp(db, models.RoleAdmin)
	company := seedEntryCompany(t, db)

	invoiceID := int64(42)
	entry := models.InwardEntry{
		LotNo: "LOT2608290001", ManifestNo: "MF-1", CompanyID: company.ID,
		WasteName: "Spent Solvent", Quantity: 10, Unit: "KG", EntryDate: "2026-08-29",
		InvoiceID: &invoiceID,
	}
	require.NoError(t, db.Create(&entry).Error)

	status, body := doJSON(t, app, http.MethodPut, fmt.Sprintf("/inward/%d", entry.ID), fiber.Map{
		"quantity": 99,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Entry is invoiced and cannot be edited", body["error"])

	status, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/inward/%d", entry.ID), nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestUpdateInwardRecomputesAmount(t *testing.T) {
	db := setupTestDB(t)
	app := newInwardApp(db, models.RoleAdmin)
	company := seedEntryCompany(t, db)

	entry := models.InwardEntry{
		LotNo: "LOT2608290001", ManifestNo: "MF-1", CompanyID: company.ID,
		WasteName: "Spent Solvent", Quantity: 10, Unit: "KG",
		Rate: 12.5, Amount: 125, EntryDate: "2026-08-29",
	}
	require.NoError(t, db.Create(&entry).Error)

	status, body := doJSON(t, app, http.MethodPut, fmt.Sprintf("/inward/%d", entry.ID), fiber.Map{
		"quantity": 20,
	})
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, 250.0, data["amount"])
}

func TestGetUninvoicedRequiresCompany(t *testing.T) {
	db := setupTestDB(t)
	app := newInwardApp(db, models.RoleAdmin)

	status, body := doJSON(t, app, http.MethodGet, "/inward/uninvoiced", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "company_id is required", body["error"])
}
