package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"carpark/internal/entities"

	"github.com/phpdave11/gofpdf"
)

var tenantReportHeader = []string{
	"lot_id", "employee_code", "full_name", "start_date", "end_date",
	"days", "monthly_price", "gross_fee", "net_fee", "type", "privilege",
}

// TenantReportCSV writes the per-tenant fee rows of a monthly report as CSV.
func TenantReportCSV(w io.Writer, report *entities.MonthlyReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(tenantReportHeader); err != nil {
		return fmt.Errorf("error writing tenant report header: %w", err)
	}
	for _, t := range report.Tenants {
		record := []string{
			t.LotID, t.EmployeeCode, t.FullName, t.StartDate, t.EndDate,
			strconv.Itoa(t.Days),
			strconv.FormatFloat(t.MonthlyPrice, 'f', -1, 64),
			strconv.FormatFloat(t.GrossFee, 'f', 0, 64),
			strconv.FormatFloat(t.NetFee, 'f', 0, 64),
			t.EmployeeType, t.Privilege,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("error writing tenant report row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MonthlyReportPDF renders the report summary as a one-page PDF.
func MonthlyReportPDF(report *entities.MonthlyReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Monthly Parking Report %s %d", time.Month(report.Month), report.Year))
	pdf.Ln(14)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Booking Movement")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 11)
	for _, m := range report.Movement {
		pdf.Cell(60, 7, m.Label)
		pdf.Cell(25, 7, strconv.Itoa(m.Count))
		pdf.Cell(40, 7, fmt.Sprintf("Gross %.0f", m.Gross))
		pdf.Cell(40, 7, fmt.Sprintf("Net %.0f", m.Net))
		pdf.Ln(7)
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Financial Summary")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Revenue: %.0f", report.Financials.Revenue))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Net revenue: %.0f", report.Financials.NetRevenue))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Occupancy: %.1f%% (%d of %d reserved spots)",
		report.Financials.OccupancyRate, report.Financials.OccupiedReserved, report.Financials.ReservedSpots))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Inventory (%d spots)", report.TotalSpots))
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 11)
	for _, row := range report.Inventory {
		pdf.Cell(60, 7, row.Zone)
		pdf.Cell(70, 7, row.Type)
		pdf.Cell(20, 7, strconv.Itoa(row.Count))
		pdf.Ln(7)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("error rendering report PDF: %w", err)
	}
	return buf.Bytes(), nil
}
