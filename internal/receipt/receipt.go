// Package receipt renders downloadable payment receipts as PDF.
package receipt

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/opendoorexp/wildex-frontend/internal/models"
	"github.com/opendoorexp/wildex-frontend/internal/utils"
)

// ErrPaymentNotCompleted is returned when a receipt is requested for a
// payment that has not been captured.
var ErrPaymentNotCompleted = errors.New("payment not completed")

// Data is everything a receipt needs. CustomerName and CustomerPhone
// come from the session, the rest from the upstream records.
type Data struct {
	Booking       models.Booking
	Payment       models.PaymentDetails
	PackageName   string
	CustomerName  string
	CustomerPhone string
}

// Generate renders a payment receipt PDF. Returns the document bytes
// and a download filename.
func Generate(d Data) ([]byte, string, error) {
	if !d.Payment.IsCompleted() {
		return nil, "", ErrPaymentNotCompleted
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payment Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "PAYMENT RECEIPT")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, "Open Door Expeditions")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	issuedAt := time.Now()
	if d.Payment.PaidAt != nil {
		issuedAt = *d.Payment.PaidAt
	}

	lines := []string{
		fmt.Sprintf("Receipt No   : receipt_%s", safe(d.Booking.ID, "-")),
		fmt.Sprintf("Date         : %s", issuedAt.Format("2006-01-02 15:04")),
		fmt.Sprintf("Customer     : %s", safe(d.CustomerName, "-")),
		fmt.Sprintf("Phone        : %s", safe(d.CustomerPhone, "-")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Booking details:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	details := []string{
		fmt.Sprintf("Package      : %s", safe(packageName(d), "-")),
		fmt.Sprintf("Travel Date  : %s", safe(d.Booking.TravelDate, "-")),
		fmt.Sprintf("Participants : %d", d.Booking.Participants),
		fmt.Sprintf("Booking ID   : %s", safe(d.Booking.ID, "-")),
		fmt.Sprintf("Payment ID   : %s", safe(d.Payment.PaymentID, "-")),
		fmt.Sprintf("Status       : %s", d.Payment.DisplayStatus()),
	}
	for _, line := range details {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Amount Paid: Rs. "+utils.FormatINR(int64(d.Payment.Amount)))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This is a computer generated receipt and does not require a signature.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render receipt: %w", err)
	}

	filename := fmt.Sprintf("receipt_%s.pdf", safeFilenamePart(d.Booking.ID))
	return buf.Bytes(), filename, nil
}

func packageName(d Data) string {
	if d.PackageName != "" {
		return d.PackageName
	}
	if d.Booking.PackageName != "" {
		return d.Booking.PackageName
	}
	return d.Booking.Package
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	return replacer.Replace(s)
}
