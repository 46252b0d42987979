package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/skylinegeo/quote-service/internal/model"
	"github.com/skylinegeo/quote-service/internal/service"
)

// Generator renders the customer-facing quote document.
type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

func (g *Generator) Generate(n service.Notification) ([]byte, error) {
	sub := n.Submission

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 16)
	pdf.CellFormat(0, 10, "Aerial Survey Quote", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Reference %s, %s", sub.Metadata.RequestID, formatDate(sub.Metadata.SubmittedAt)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	g.contactBlock(pdf, sub)
	pdf.Ln(2)
	g.areaBlock(pdf, sub)
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Estimate", "", 1, "L", false, 0, "")

	headers := []string{"Item", "Amount"}
	colWidths := []float64{120, 60}
	drawTableRow(pdf, g.fontName, headers, colWidths, true)
	for _, line := range estimateLines(n) {
		drawTableRow(pdf, g.fontName, []string{line.label, line.amount}, colWidths, false)
	}

	pdf.Ln(4)
	pdf.SetFont(g.fontName, "B", 13)
	if n.Quote.Manual {
		pdf.CellFormat(0, 8, "Total: pending manual review", "", 1, "R", false, 0, "")
	} else {
		pdf.CellFormat(0, 8, fmt.Sprintf("Total: $%.2f", *n.Quote.Price), "", 1, "R", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont(g.fontName, "I", 9)
	pdf.MultiCell(0, 5, "This estimate is valid for 30 days and assumes site access during normal business hours. Final pricing may change after flight-plan review.", "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) contactBlock(pdf *gofpdf.Fpdf, sub model.Submission) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(0, 6, "Prepared for", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	lines := []string{
		safeValue(sub.Contact.Name),
		safeValue(sub.Contact.Company),
		safeValue(sub.Contact.Email),
	}
	for _, line := range lines {
		pdf.CellFormat(0, 5, line, "", 1, "L", false, 0, "")
	}
}

func (g *Generator) areaBlock(pdf *gofpdf.Fpdf, sub model.Submission) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(0, 6, "Scope", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	pdf.CellFormat(0, 5, fmt.Sprintf("Service: %s", sub.Service.Type), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Area: %.1f acres (%.1f ha)", sub.AOI.Acres, sub.AOI.Hectares), "", 1, "L", false, 0, "")
	if sub.Project.Name != "" {
		pdf.CellFormat(0, 5, fmt.Sprintf("Project: %s", sub.Project.Name), "", 1, "L", false, 0, "")
	}
}

type estimateLine struct {
	label  string
	amount string
}

func estimateLines(n service.Notification) []estimateLine {
	b := n.Quote.Breakdown
	var lines []estimateLine

	if b.Base != nil {
		lines = append(lines, estimateLine{"Base survey", formatMoney(*b.Base)})
	}
	if n.Submission.Service.Type == model.ServicePhotogrammetry {
		lines = append(lines, estimateLine{fmt.Sprintf("GSD factor x%.2f", b.GSDFactor), ""})
	} else {
		lines = append(lines,
			estimateLine{fmt.Sprintf("Density factor x%.2f", b.DensityFactor), ""},
			estimateLine{fmt.Sprintf("Accuracy factor x%.2f", b.AccuracyFactor), ""},
		)
		for key, fee := range b.AddOns {
			lines = append(lines, estimateLine{fmt.Sprintf("Add-on: %s", key), formatMoney(fee)})
		}
	}
	if b.MobilizationCharge > 0 {
		lines = append(lines, estimateLine{
			fmt.Sprintf("Mobilization (%.0f mi)", b.MobilizationMiles),
			formatMoney(b.MobilizationCharge),
		})
	}
	return lines
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i > 0 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 8, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func formatMoney(value float64) string {
	return fmt.Sprintf("$%.2f", value)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("Jan 2, 2006")
}
