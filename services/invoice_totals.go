package services

import (
	"math"

	"wastetrack/models"
)

// EntryLine is the billing view of an inward or outward entry.
type EntryLine struct {
	ManifestNo string
	LotNo      string
	WasteName  string
	Unit       string
	EntryDate  string
	Quantity   float64
	Rate       float64
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func LinesFromInward(entries []models.InwardEntry) []EntryLine {
	lines := make([]EntryLine, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, EntryLine{
			ManifestNo: e.ManifestNo,
			LotNo:      e.LotNo,
			WasteName:  e.WasteName,
			Unit:       e.Unit,
			EntryDate:  e.EntryDate,
			Quantity:   e.Quantity,
			Rate:       e.Rate,
		})
	}
	return lines
}

func LinesFromOutward(entries []models.OutwardEntry) []EntryLine {
	lines := make([]EntryLine, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, EntryLine{
			ManifestNo: e.ManifestNo,
			LotNo:      e.LotNo,
			WasteName:  e.WasteName,
			Unit:       e.Unit,
			EntryDate:  e.EntryDate,
			Quantity:   e.Quantity,
			Rate:       e.Rate,
		})
	}
	return lines
}

// AggregateMaterials folds entry lines into invoice material lines. Lines
// with the same waste name, unit and rate become one billed row.
func AggregateMaterials(lines []EntryLine) []models.InvoiceMaterial {
	var materials []models.InvoiceMaterial
	for _, line := range lines {
		merged := false
		for i := range materials {
			m := &materials[i]
			if m.MaterialName == line.WasteName && m.Unit == line.Unit && m.Rate == line.Rate {
				m.Quantity += line.Quantity
				m.Amount = round2(m.Quantity * m.Rate)
				merged = true
				break
			}
		}
		if !merged {
			materials = append(materials, models.InvoiceMaterial{
				MaterialName: line.WasteName,
				Unit:         line.Unit,
				Quantity:     line.Quantity,
				Rate:         line.Rate,
				Amount:       round2(line.Quantity * line.Rate),
			})
		}
	}
	return materials
}

func BuildManifests(lines []EntryLine) []models.InvoiceManifest {
	manifests := make([]models.InvoiceManifest, 0, len(lines))
	for _, line := range lines {
		manifests = append(manifests, models.InvoiceManifest{
			ManifestNo:   line.ManifestNo,
			LotNo:        line.LotNo,
			ManifestDate: line.EntryDate,
		})
	}
	return manifests
}

// MergeMaterials folds incoming lines into the invoice's existing material
// rows. A row with the same name, unit and rate gains quantity; anything
// else is appended as a new row. Existing rows keep their IDs so the merge
// updates in place.
func MergeMaterials(existing, incoming []models.InvoiceMaterial) []models.InvoiceMaterial {
	merged := make([]models.InvoiceMaterial, len(existing))
	copy(merged, existing)

	for _, in := range incoming {
		found := false
		for i := range merged {
			m := &merged[i]
			if m.MaterialName == in.MaterialName && m.Unit == in.Unit && m.Rate == in.Rate {
				m.Quantity += in.Quantity
				m.Amount = round2(m.Quantity * m.Rate)
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, models.InvoiceMaterial{
				MaterialName: in.MaterialName,
				HSNCode:      in.HSNCode,
				Unit:         in.Unit,
				Quantity:     in.Quantity,
				Rate:         in.Rate,
				Amount:       round2(in.Quantity * in.Rate),
			})
		}
	}
	return merged
}

// ComputeTotals recomputes every derived money field from the material
// lines. grand = subtotal + additional charges + CGST + SGST.
func ComputeTotals(materials []models.InvoiceMaterial, additionalCharges, cgstPercent, sgstPercent float64) (subTotal, cgstAmount, sgstAmount, grandTotal float64) {
	for _, m := range materials {
		subTotal += m.Amount
	}
	subTotal = round2(subTotal)
	cgstAmount = round2(subTotal * cgstPercent / 100)
	sgstAmount = round2(subTotal * sgstPercent / 100)
	grandTotal = round2(subTotal + additionalCharges + cgstAmount + sgstAmount)
	return
}

// DerivePaymentStatus maps amount paid against the grand total. Payments are
// compared with a paisa of slack so float arithmetic cannot strand an
// invoice at Partial.
func DerivePaymentStatus(amountPaid, grandTotal float64) string {
	switch {
	case amountPaid <= 0:
		return models.PaymentStatusUnpaid
	case amountPaid >= grandTotal-0.01:
		return models.PaymentStatusPaid
	default:
		return models.PaymentStatusPartial
	}
}
