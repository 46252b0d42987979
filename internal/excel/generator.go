package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/skylinegeo/quote-service/internal/model"
	"github.com/skylinegeo/quote-service/internal/service"
)

// Generator builds the internal quote workbook: a summary sheet with the
// submission and eligibility flags, and a breakdown sheet with every
// figure that went into the price.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(n service.Notification) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Summary"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, n); err != nil {
		return nil, err
	}

	breakdownSheet := "Breakdown"
	file.NewSheet(breakdownSheet)
	if err := g.writeBreakdown(file, breakdownSheet, n); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, n service.Notification) error {
	sub := n.Submission

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Request ID")
	set("B1", sub.Metadata.RequestID)
	set("A2", "Submitted")
	set("B2", formatTime(sub.Metadata.SubmittedAt))
	set("A3", "Contact")
	set("B3", sub.Contact.Name)
	set("A4", "Email")
	set("B4", sub.Contact.Email)
	set("A5", "Company")
	set("B5", sub.Contact.Company)
	set("A6", "Project")
	set("B6", sub.Project.Name)
	set("A7", "Service")
	set("B7", string(sub.Service.Type))
	set("A8", "Area, acres")
	set("B8", sub.AOI.Acres)
	set("A9", "Area, hectares")
	set("B9", sub.AOI.Hectares)
	set("A10", "Over 300 acres")
	set("B10", n.Flags.AreaOver300Acres)
	set("A11", "In service area")
	set("B11", formatTriState(n.Flags.InServiceArea))
	set("A12", "Auto-quote eligible")
	set("B12", n.Flags.AutoQuoteEligible)
	set("A13", "Outcome")
	if n.Quote.Manual {
		set("B13", "MANUAL REVIEW")
	} else {
		set("B13", fmt.Sprintf("$%.2f", *n.Quote.Price))
	}

	_ = file.SetColWidth(sheet, "A", "A", 24)
	_ = file.SetColWidth(sheet, "B", "B", 40)
	return nil
}

func (g *Generator) writeBreakdown(file *excelize.File, sheet string, n service.Notification) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{"Item", "Value"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}

	rows := breakdownRows(n)
	for i, row := range rows {
		set(fmt.Sprintf("A%d", i+2), row.label)
		set(fmt.Sprintf("B%d", i+2), row.value)
	}

	_ = file.SetColWidth(sheet, "A", "A", 28)
	_ = file.SetColWidth(sheet, "B", "B", 18)
	return nil
}

type breakdownRow struct {
	label string
	value interface{}
}

func breakdownRows(n service.Notification) []breakdownRow {
	b := n.Quote.Breakdown
	rows := []breakdownRow{}

	if b.Base == nil {
		rows = append(rows, breakdownRow{"Base", "n/a (manual review)"})
	} else {
		rows = append(rows, breakdownRow{"Base", *b.Base})
	}

	if n.Submission.Service.Type == model.ServicePhotogrammetry {
		rows = append(rows, breakdownRow{"GSD factor", b.GSDFactor})
	} else {
		rows = append(rows,
			breakdownRow{"Density factor", b.DensityFactor},
			breakdownRow{"Accuracy factor", b.AccuracyFactor},
		)
		for key, fee := range b.AddOns {
			rows = append(rows, breakdownRow{fmt.Sprintf("Add-on: %s", key), fee})
		}
		rows = append(rows, breakdownRow{"Add-ons total", b.AddOnsTotal})
	}

	rows = append(rows,
		breakdownRow{"Mobilization miles", b.MobilizationMiles},
		breakdownRow{"Mobilization charge", b.MobilizationCharge},
	)
	return rows
}

func formatTriState(value *bool) string {
	if value == nil {
		return "unknown"
	}
	return fmt.Sprintf("%v", *value)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
