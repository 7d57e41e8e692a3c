package utils

import (
	"fmt"

	"wastetrack/config"
	"wastetrack/models"

	"gopkg.in/gomail.v2"
)

// SendPaymentReminder mails the company contact about an outstanding
// invoice balance.
func SendPaymentReminder(invoice models.Invoice, company models.Company) error {
	if company.Email == "" {
		return fmt.Errorf("company %s has no email on file", company.CompanyName)
	}

	outstanding := invoice.GrandTotal - invoice.AmountPaid

	subject := fmt.Sprintf("Payment Reminder - Invoice %s", invoice.InvoiceNo)
	body := fmt.Sprintf(`
		<html>
			<body>
				<p>Dear %s,</p>
				<p>This is a reminder that invoice <b>%s</b> dated %s has an
				outstanding balance of <b>%.2f</b> (grand total %.2f, paid %.2f).</p>
				<p>Kindly arrange the payment at the earliest.</p>
				<p>Regards,<br/>Accounts</p>
			</body>
		</html>
	`, company.CompanyName, invoice.InvoiceNo, invoice.InvoiceDate,
		outstanding, invoice.GrandTotal, invoice.AmountPaid)

	msg := gomail.NewMessage()
	msg.SetHeader("From", config.SMTPSender)
	msg.SetHeader("To", company.Email)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPSender, config.SMTPPassword)
	if err := dialer.DialAndSend(msg); err != nil {
		return err
	}

	return nil
}
