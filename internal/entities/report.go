package entities

// MovementRow is one line of the monthly booking movement table.
type MovementRow struct {
	Label string  `json:"label"`
	Count int     `json:"count"`
	Gross float64 `json:"gross"`
	Net   float64 `json:"net"`
}

type FinancialSummary struct {
	Revenue          float64 `json:"revenue"`
	NetRevenue       float64 `json:"net_revenue"`
	OccupancyRate    float64 `json:"occupancy_rate"`
	ReservedSpots    int     `json:"reserved_spots"`
	OccupiedReserved int     `json:"occupied_reserved"`
}

type InventoryRow struct {
	Zone  string `json:"zone"`
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// TenantRow carries one booking's share of the month. Dates are the
// effective (clipped) window the fee covers; fees are whole currency units.
type TenantRow struct {
	LotID        string  `json:"lot_id"`
	EmployeeCode string  `json:"employee_code"`
	FullName     string  `json:"full_name"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Days         int     `json:"days"`
	MonthlyPrice float64 `json:"monthly_price"`
	GrossFee     float64 `json:"gross_fee"`
	NetFee       float64 `json:"net_fee"`
	EmployeeType string  `json:"employee_type"`
	Privilege    string  `json:"privilege"`
}

// NewBookingRow lists a booking that started in-month, with its original
// (unclipped) dates for audit.
type NewBookingRow struct {
	Code         string `json:"code"`
	LotID        string `json:"lot_id"`
	EmployeeCode string `json:"employee_code"`
	FullName     string `json:"full_name"`
	BookingStart string `json:"booking_start"`
	BookingEnd   string `json:"booking_end"`
}

type MonthlyReport struct {
	Year        int              `json:"year"`
	Month       int              `json:"month"`
	FeeMode     string           `json:"fee_mode"`
	Movement    []MovementRow    `json:"movement"`
	Financials  FinancialSummary `json:"financials"`
	Inventory   []InventoryRow   `json:"inventory"`
	TotalSpots  int              `json:"total_spots"`
	Tenants     []TenantRow      `json:"tenants"`
	NewBookings []NewBookingRow  `json:"new_bookings"`
}
