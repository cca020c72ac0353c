package service

import (
	"bytes"
	"encoding/csv"
	"testing"

	"carpark/internal/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *entities.MonthlyReport {
	return &entities.MonthlyReport{
		Year: 2025, Month: 2, FeeMode: "accrued",
		Movement: []entities.MovementRow{
			{Label: "Beginning Balance", Count: 1, Gross: 3000, Net: 3000},
			{Label: "New Booking"},
			{Label: "Expired Booking"},
			{Label: "Ending Balance", Count: 1, Gross: 3000, Net: 3000},
		},
		Financials: entities.FinancialSummary{
			Revenue: 3000, NetRevenue: 3000,
			OccupancyRate: 50, ReservedSpots: 2, OccupiedReserved: 1,
		},
		Inventory:  []entities.InventoryRow{{Zone: "North Lot", Type: "Reserved (Paid) Parking", Count: 2}},
		TotalSpots: 2,
		Tenants: []entities.TenantRow{
			{
				LotID: "A 1", EmployeeCode: "00000001", FullName: "Dana Flores",
				StartDate: "2025-02-01", EndDate: "2025-02-28", Days: 28,
				MonthlyPrice: 3000, GrossFee: 3000, NetFee: 3000,
				EmployeeType: "General",
			},
		},
	}
}

func TestTenantReportCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TenantReportCSV(&buf, sampleReport()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, tenantReportHeader, records[0])
	assert.Equal(t, []string{
		"A 1", "00000001", "Dana Flores", "2025-02-01", "2025-02-28",
		"28", "3000", "3000", "3000", "General", "",
	}, records[1])
}

func TestMonthlyReportPDF(t *testing.T) {
	pdf, err := MonthlyReportPDF(sampleReport())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}
