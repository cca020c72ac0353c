package service

import (
	"sort"
	"time"

	"carpark/internal/billing"
	"carpark/internal/db"
	"carpark/internal/entities"
	"carpark/internal/interval"
)

// Movement table labels, in presentation order.
const (
	labelBeginning = "Beginning Balance"
	labelNew       = "New Booking"
	labelExpired   = "Expired Booking"
	labelEnding    = "Ending Balance"
)

type ReportService struct {
	store   BookingStore
	catalog CatalogStore
	clock   Clock
	mode    billing.FeeMode

	// zoneOrder lists zones to pin at the top of inventory output; zones not
	// listed sort alphabetically after them.
	zoneOrder []string
}

func NewReportService(store BookingStore, catalog CatalogStore, clock Clock, mode billing.FeeMode, zoneOrder []string) *ReportService {
	return &ReportService{store: store, catalog: catalog, clock: clock, mode: mode, zoneOrder: zoneOrder}
}

// GenerateMonthlyReport builds the full monthly close for year/month:
// movement counts and fee totals, the financial summary, the inventory
// breakdown and the per-tenant fee rows.
func (s *ReportService) GenerateMonthlyReport(year int, month time.Month) (*entities.MonthlyReport, error) {
	window := interval.Month(year, month)
	today := interval.Day(s.clock.Now())

	details, err := s.store.ListDetails(window.Start, window.End)
	if err != nil {
		return nil, err
	}
	spots, err := s.catalog.ListActiveSpots()
	if err != nil {
		return nil, err
	}

	var beginning, newRow, expired, ending entities.MovementRow
	beginning.Label = labelBeginning
	newRow.Label = labelNew
	expired.Label = labelExpired
	ending.Label = labelEnding

	add := func(row *entities.MovementRow, fee billing.Fee) {
		row.Count++
		row.Gross += fee.Gross
		row.Net += fee.Net
	}

	var revenue, netRevenue float64
	tenants := make([]entities.TenantRow, 0, len(details))
	newBookings := make([]entities.NewBookingRow, 0)

	// Occupancy is measured at month end, or today when the month is still
	// running.
	occupancyAsOf := window.End
	if today.Before(occupancyAsOf) {
		occupancyAsOf = today
	}
	occupiedReserved := 0

	for _, d := range details {
		iv := interval.Interval{Start: interval.Day(d.BookingStart), End: interval.Day(d.BookingEnd)}
		exempt := billing.Exempt(d.EmployeeType, d.PrivilegeTier)
		fee := billing.Prorate(d.Price, iv, window, today, s.mode, exempt)

		buckets := billing.Classify(iv, window)
		if buckets.Beginning {
			add(&beginning, fee)
		}
		if buckets.New {
			add(&newRow, fee)
		}
		if buckets.Expired {
			add(&expired, fee)
		}
		if buckets.Ending {
			add(&ending, fee)
		}

		revenue += fee.Gross
		netRevenue += fee.Net

		if d.SpotType == db.SpotTypeReserved && d.SpotActive && iv.Contains(occupancyAsOf) {
			occupiedReserved++
		}

		name := d.EmployeeName
		if name == "" {
			name = "Unknown"
		}
		code := d.EmployeeCode
		if code == "" {
			code = "N/A"
		}

		effStart, effEnd := fee.Start, fee.End
		if fee.Days == 0 {
			// Nothing accrued yet this month; show the clipped window anyway
			// so the row reads sensibly.
			if clipped, ok := iv.Clip(window); ok {
				effStart, effEnd = clipped.Start, clipped.End
			} else {
				effStart, effEnd = iv.Start, iv.End
			}
		}

		tenants = append(tenants, entities.TenantRow{
			LotID:        d.LotID,
			EmployeeCode: code,
			FullName:     name,
			StartDate:    effStart.Format(dateLayout),
			EndDate:      effEnd.Format(dateLayout),
			Days:         fee.Days,
			MonthlyPrice: d.Price,
			GrossFee:     fee.Gross,
			NetFee:       fee.Net,
			EmployeeType: d.EmployeeType,
			Privilege:    privilegeLabel(d.PrivilegeTier),
		})

		if buckets.New {
			end := iv.End.Format(dateLayout)
			if iv.IsIndefinite() {
				end = "Indefinite"
			}
			newBookings = append(newBookings, entities.NewBookingRow{
				Code:         d.Code,
				LotID:        d.LotID,
				EmployeeCode: code,
				FullName:     name,
				BookingStart: iv.Start.Format(dateLayout),
				BookingEnd:   end,
			})
		}
	}

	inventory, totalSpots := s.buildInventory(spots)
	reservedTotal := 0
	for _, sp := range spots {
		if sp.SpotType == db.SpotTypeReserved {
			reservedTotal++
		}
	}
	occupancy := 0.0
	if reservedTotal > 0 {
		occupancy = float64(occupiedReserved) / float64(reservedTotal) * 100
	}

	return &entities.MonthlyReport{
		Year:    year,
		Month:   int(month),
		FeeMode: string(s.mode),
		Movement: []entities.MovementRow{
			beginning, newRow, expired, ending,
		},
		Financials: entities.FinancialSummary{
			Revenue:          revenue,
			NetRevenue:       netRevenue,
			OccupancyRate:    occupancy,
			ReservedSpots:    reservedTotal,
			OccupiedReserved: occupiedReserved,
		},
		Inventory:   inventory,
		TotalSpots:  totalSpots,
		Tenants:     tenants,
		NewBookings: newBookings,
	}, nil
}

// buildInventory groups active spots by zone and type, ordered by the
// configured zone order then alphabetically, type breaking ties.
func (s *ReportService) buildInventory(spots []db.ParkingSpot) ([]entities.InventoryRow, int) {
	type key struct{ zone, typ string }
	counts := make(map[key]int)
	for _, sp := range spots {
		counts[key{sp.ZoneText, sp.SpotType}]++
	}

	rows := make([]entities.InventoryRow, 0, len(counts))
	for k, n := range counts {
		rows = append(rows, entities.InventoryRow{Zone: k.zone, Type: k.typ, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Zone != rows[j].Zone {
			return s.zoneLess(rows[i].Zone, rows[j].Zone)
		}
		return rows[i].Type < rows[j].Type
	})
	return rows, len(spots)
}

func (s *ReportService) zoneLess(a, b string) bool {
	ra, rb := s.zoneRank(a), s.zoneRank(b)
	if ra != rb {
		return ra < rb
	}
	return a < b
}

func (s *ReportService) zoneRank(zone string) int {
	for i, z := range s.zoneOrder {
		if z == zone {
			return i
		}
	}
	return len(s.zoneOrder)
}

func privilegeLabel(tier int) string {
	switch tier {
	case 1:
		return "Bond Holder Tier 1"
	case 2:
		return "Bond Holder Tier 2"
	default:
		return ""
	}
}
