// Package passport renders an assessment result into the digital
// product passport artifacts: a fixed-layout PDF document and a
// machine-readable key-value snapshot.
package passport

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/go-pdf/fpdf"

	"gozai/internal/assess"
	"gozai/internal/logging"
)

// Render produces the passport PDF for a result. The layout is fixed;
// the output is deterministic given the result and timestamp. Any
// internal failure aborts the whole document, no partial bytes are
// returned.
func Render(r *assess.Result, now time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Digital Product Passport "+r.PassportID, false)
	pdf.AddPage()

	// Header
	pdf.SetFillColor(16, 185, 129)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 14, "Digital Product Passport", "", 1, "C", true, 0, "")
	pdf.Ln(4)

	pdf.SetTextColor(15, 23, 42)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, r.PassportID, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 116, 139)
	pdf.CellFormat(0, 5, r.UUID, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	section := func(title string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetTextColor(15, 23, 42)
		pdf.CellFormat(0, 8, title, "B", 1, "L", false, 0, "")
		pdf.Ln(1)
	}
	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 116, 139)
		pdf.CellFormat(55, 6, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(15, 23, 42)
		pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
	}

	section("Product")
	row("Name", r.ProductName)
	row("Brand", r.Brand)
	row("Category", string(r.Category))
	row("Manufacturer", r.Manufacturer)
	row("Origin", r.Origin)
	pdf.Ln(4)

	section("Condition")
	row("Damage level", fmt.Sprintf("%d / 8", r.DamageLevel))
	row("Damage type", r.DamageType)
	row("Recommended action", string(r.Action))
	row("Repairability", fmt.Sprintf("%.1f / 10", r.RepairabilityScore))
	row("Confidence", fmt.Sprintf("%.0f%%", r.Confidence*100))
	pdf.Ln(4)

	section("Valuation")
	row("Market value", fmt.Sprintf("%d PLN", r.MarketValue))
	row("Estimated value", fmt.Sprintf("%d PLN", r.EstimatedValue))
	if r.RepairCost > 0 {
		row("Repair cost", fmt.Sprintf("%d PLN", r.RepairCost))
	}
	pdf.Ln(4)

	if len(r.Materials) > 0 {
		section("Materials")
		names := make([]string, 0, len(r.Materials))
		for name := range r.Materials {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			row(name, r.Materials[name])
		}
		pdf.Ln(4)
	}

	if len(r.Lifecycle) > 0 {
		section("Lifecycle")
		for _, ev := range r.Lifecycle {
			row(ev.Date, ev.Type)
		}
		pdf.Ln(4)
	}

	pdf.SetY(-20)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(100, 116, 139)
	pdf.CellFormat(0, 5, "Generated "+now.Format(time.RFC3339), "T", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		logging.PassportError("render %s: %v", r.PassportID, err)
		return nil, fmt.Errorf("failed to render passport %s: %w", r.PassportID, err)
	}
	logging.Passport("rendered passport %s (%d bytes)", r.PassportID, buf.Len())
	return buf.Bytes(), nil
}

// Filename is the suggested download name for the passport document.
func Filename(r *assess.Result) string {
	return fmt.Sprintf("passport_%s.pdf", r.PassportID)
}
