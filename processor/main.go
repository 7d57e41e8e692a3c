// Standalone reminder job. Run from cron: scans for invoices unpaid past
// the configured age and mails the company contact, at most one reminder
// per invoice per interval.
package main

import (
	"fmt"
	"log"
	"time"

	"wastetrack/config"
	"wastetrack/database"
	"wastetrack/models"
	"wastetrack/utils"

	"gorm.io/gorm"
)

func overdueInvoices(db *gorm.DB) ([]models.Invoice, error) {
	cutoff := time.Now().AddDate(0, 0, -config.ReminderAfterDays).Format("2006-01-02")

	var invoices []models.Invoice
	err := db.Preload("Company").
		Where("payment_status <> ? AND invoice_date <= ?", models.PaymentStatusPaid, cutoff).
		Find(&invoices).Error
	return invoices, err
}

// recentlyReminded reports whether the invoice got a reminder inside the
// current interval.
func recentlyReminded(db *gorm.DB, invoiceID int64) bool {
	since := time.Now().AddDate(0, 0, -config.ReminderAfterDays)

	var count int64
	db.Model(&models.ReminderLog{}).
		Where("invoice_id = ? AND created_at > ?", invoiceID, since).
		Count(&count)
	return count > 0
}

func processReminders(db *gorm.DB) {
	invoices, err := overdueInvoices(db)
	if err != nil {
		log.Println("Failed to load overdue invoices:", err)
		return
	}

	fmt.Printf("Found %d overdue invoice(s)\n", len(invoices))

	for _, invoice := range invoices {
		if recentlyReminded(db, invoice.ID) {
			continue
		}

		if err := utils.SendPaymentReminder(invoice, invoice.Company); err != nil {
			log.Printf("Reminder for %s failed: %v", invoice.InvoiceNo, err)
			continue
		}

		db.Create(&models.ReminderLog{
			InvoiceID: invoice.ID,
			SentTo:    invoice.Company.Email,
		})
		fmt.Printf("Reminder sent for %s to %s\n", invoice.InvoiceNo, invoice.Company.Email)
	}
}

func main() {
	config.LoadConfig()

	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	fmt.Println("Reminder processor running...")
	processReminders(db)
}
