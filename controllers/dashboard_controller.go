package controllers

import (
	"strconv"
	"time"

	"wastetrack/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DashboardController serves the landing-page aggregates. The raw queries
// use LIMIT and SUBSTR, which run on the mysql, postgres and sqlite
// dialects; the sqlserver driver option does not cover the dashboard.
type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

func (c *DashboardController) GetDashboard(ctx *fiber.Ctx) error {
	var companyCount, transporterCount int64
	c.DB.Model(&models.Company{}).Count(&companyCount)
	c.DB.Model(&models.Transporter{}).Count(&transporterCount)

	monthPrefix := time.Now().Format("2006-01") + "%"

	var monthTotals struct {
		InwardQty  float64 `json:"inward_qty"`
		OutwardQty float64 `json:"outward_qty"`
	}
	c.DB.Raw(`SELECT
			(SELECT COALESCE(SUM(quantity), 0) FROM inward_entries
				WHERE entry_date LIKE ? AND deleted_at IS NULL) AS inward_qty,
			(SELECT COALESCE(SUM(quantity), 0) FROM outward_entries
				WHERE entry_date LIKE ? AND deleted_at IS NULL) AS outward_qty`,
		monthPrefix, monthPrefix).Scan(&monthTotals)

	var invoiceSummary []struct {
		PaymentStatus string  `json:"payment_status"`
		Count         int     `json:"count"`
		TotalAmount   float64 `json:"total_amount"`
		AmountPaid    float64 `json:"amount_paid"`
		Outstanding   float64 `json:"outstanding"`
	}
	if err := c.DB.Raw(`SELECT payment_status,
			COUNT(*) AS count,
			COALESCE(SUM(grand_total), 0) AS total_amount,
			COALESCE(SUM(amount_paid), 0) AS amount_paid,
			COALESCE(SUM(grand_total - amount_paid), 0) AS outstanding
		FROM invoices
		WHERE deleted_at IS NULL
		GROUP BY payment_status`).Scan(&invoiceSummary).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	sql := `WITH iw AS (
			SELECT lot_no, manifest_no, waste_name, quantity, entry_date, 'inward' AS trans_type
			FROM inward_entries WHERE deleted_at IS NULL
		), ow AS (
			SELECT lot_no, manifest_no, waste_name, quantity, entry_date, 'outward' AS trans_type
			FROM outward_entries WHERE deleted_at IS NULL
		)
		SELECT * FROM iw
		UNION ALL
		SELECT * FROM ow
		ORDER BY entry_date DESC, lot_no DESC
		LIMIT 10`

	var recent []struct {
		LotNo      string  `json:"lot_no"`
		ManifestNo string  `json:"manifest_no"`
		WasteName  string  `json:"waste_name"`
		Quantity   float64 `json:"quantity"`
		EntryDate  string  `json:"entry_date"`
		TransType  string  `json:"trans_type"`
	}
	if err := c.DB.Raw(sql).Scan(&recent).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Dashboard found",
		"data": fiber.Map{
			"companies":       companyCount,
			"transporters":    transporterCount,
			"month_totals":    monthTotals,
			"invoice_summary": invoiceSummary,
			"recent_entries":  recent,
		},
	})
}

// GetMonthly returns per-month quantity and invoiced amount for the chart
// on the dashboard.
func (c *DashboardController) GetMonthly(ctx *fiber.Ctx) error {
	year, err := strconv.Atoi(ctx.Query("year", strconv.Itoa(time.Now().Year())))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid year"})
	}
	yearPrefix := strconv.Itoa(year) + "-%"

	sql := `WITH iw AS (
			SELECT SUBSTR(entry_date, 1, 7) AS month, SUM(quantity) AS qty
			FROM inward_entries WHERE entry_date LIKE ? AND deleted_at IS NULL
			GROUP BY SUBSTR(entry_date, 1, 7)
		), ow AS (
			SELECT SUBSTR(entry_date, 1, 7) AS month, SUM(quantity) AS qty
			FROM outward_entries WHERE entry_date LIKE ? AND deleted_at IS NULL
			GROUP BY SUBSTR(entry_date, 1, 7)
		), inv AS (
			SELECT SUBSTR(invoice_date, 1, 7) AS month, SUM(grand_total) AS amount
			FROM invoices WHERE invoice_date LIKE ? AND deleted_at IS NULL
			GROUP BY SUBSTR(invoice_date, 1, 7)
		)
		SELECT m.month,
			COALESCE(iw.qty, 0) AS inward_qty,
			COALESCE(ow.qty, 0) AS outward_qty,
			COALESCE(inv.amount, 0) AS invoiced_amount
		FROM (
			SELECT month FROM iw
			UNION SELECT month FROM ow
			UNION SELECT month FROM inv
		) m
		LEFT JOIN iw ON iw.month = m.month
		LEFT JOIN ow ON ow.month = m.month
		LEFT JOIN inv ON inv.month = m.month
		ORDER BY m.month`

	var rows []struct {
		Month          string  `json:"month"`
		InwardQty      float64 `json:"inward_qty"`
		OutwardQty     float64 `json:"outward_qty"`
		InvoicedAmount float64 `json:"invoiced_amount"`
	}
	if err := c.DB.Raw(sql, yearPrefix, yearPrefix, yearPrefix).Scan(&rows).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Monthly summary found", "data": rows})
}
