package db

import "time"

const (
	SpotTypeGeneral   = "General Parking"
	SpotTypeEVCharger = "EV Charger Parking"
	SpotTypeReserved  = "Reserved (Paid) Parking"
)

const (
	EmployeeTypeGeneral    = "General"
	EmployeeTypeManagement = "Management"
)

const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusExpired   = "expired"
)

type ParkingSpot struct {
	ID         int
	LotCode    string
	SpotNumber int
	LotID      string
	ZoneText   string
	SpotType   string
	Price      float64
	IsActive   bool
}

type Employee struct {
	ID           int
	EmployeeCode string
	FullName     string
	EmployeeType string
	Email        string
	Phone        string
	IsActive     bool
	Plates       []string
}

// BondHolder maps an employee code to a privilege tier. Tier 1 and 2 waive
// the net parking fee; the gross fee is still reported.
type BondHolder struct {
	ID           string
	FullName     string
	EmployeeCode string
	Tier         int
	CreatedAt    time.Time
}

type Booking struct {
	ID               int
	Code             string
	SpotID           int
	EmployeeID       int
	LicensePlateUsed string
	BookingStart     time.Time
	BookingEnd       time.Time
	Status           string
	IsDeleted        bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// BookingDetail is a booking joined with the employee and spot columns the
// spot board and the monthly report need. Missing joins come back as zero
// values and are rendered as placeholders, never as a failed report.
type BookingDetail struct {
	Booking
	EmployeeCode  string
	EmployeeName  string
	EmployeeType  string
	EmployeeEmail string
	EmployeePhone string
	PrivilegeTier int
	LotID         string
	ZoneText      string
	SpotType      string
	SpotActive    bool
	Price         float64
}
