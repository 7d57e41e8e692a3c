package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"wastetrack/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newOutwardApp(db *gorm.DB, role string) *fiber.App {
	app := fiber.New()
	c := NewOutwardController(db)
	app.Use(asUser(1, role))
	app.Post("/outward", c.CreateOutward)
	app.Get("/outward/uninvoiced", c.GetUninvoiced)
	app.Get("/outward", c.GetAllOutward)
	return app
}

func TestCreateOutwardGeneratesLotNo(t *testing.T) {
	db := setupTestDB(t)
	app := newOutwardApp(db, models.RoleAdmin)
	company := seedEntryCompany(t, db)

	status, body := doJSON(t, app, http.MethodPost, "/outward", fiber.Map{
		"manifest_no": "MF-2001",
		"company_id":  company.ID,
		"waste_name":  "Incinerable Waste",
		"quantity":    250,
		"rate":        4.2,
		"entry_date":  "2026-08-29",
	})
	require.Equal(t, http.StatusCreated, status)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "OUT", data["lot_no"].(string)[:3])
	assert.Equal(t, 1050.0, data["amount"])
}

func TestOutwardUninvoicedHidesMoneyFields(t *testing.T) {
	db := setupTestDB(t)
	company := seedEntryCompany(t, db)

	require.NoError(t, db.Create(&models.OutwardEntry{
		LotNo: "OUT2608290001", ManifestNo: "MF-1", CompanyID: company.ID,
		WasteName: "Incinerable Waste", Quantity: 50, Unit: "KG",
		Rate: 4.2, Amount: 210, EntryDate: "2026-08-29",
	}).Error)

	url := fmt.Sprintf("/outward/uninvoiced?company_id=%d", company.ID)

	adminApp := newOutwardApp(db, models.RoleAdmin)
	status, body := doJSON(t, adminApp, http.MethodGet, url, nil)
	require.Equal(t, http.StatusOK, status)
	row := body["data"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, 4.2, row["rate"])
	assert.Equal(t, 210.0, row["amount"])

	staffApp := newOutwardApp(db, models.RoleStaff)
	status, body = doJSON(t, staffApp, http.MethodGet, url, nil)
	require.Equal(t, http.StatusOK, status)
	row = body["data"].([]interface{})[0].(map[string]interface{})
	assert.NotContains(t, row, "rate")
	assert.NotContains(t, row, "amount")
	assert.Equal(t, "OUT2608290001", row["lot_no"])
}
