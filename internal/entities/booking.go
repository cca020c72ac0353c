package entities

import (
	"time"

	"carpark/internal/db"
	"carpark/internal/interval"
)

type BookingRequest struct {
	SpotID       int    `json:"spot_id" validate:"required"`
	EmployeeID   int    `json:"employee_id" validate:"required"`
	StartDate    string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate      string `json:"end_date" validate:"required_unless=IsIndefinite true,omitempty,datetime=2006-01-02"`
	IsIndefinite bool   `json:"is_indefinite"`
}

type AmendBookingRequest struct {
	StartDate    string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate      string `json:"end_date" validate:"required_unless=IsIndefinite true,omitempty,datetime=2006-01-02"`
	IsIndefinite bool   `json:"is_indefinite"`
}

type BookingResponse struct {
	ID               int       `json:"id"`
	Code             string    `json:"code"`
	SpotID           int       `json:"spot_id"`
	EmployeeID       int       `json:"employee_id"`
	LicensePlateUsed string    `json:"license_plate_used,omitempty"`
	BookingStart     time.Time `json:"booking_start"`
	BookingEnd       time.Time `json:"booking_end"`
	Indefinite       bool      `json:"indefinite"`
	Status           string    `json:"status"`
}

func NewBookingResponse(b *db.Booking) *BookingResponse {
	return &BookingResponse{
		ID:               b.ID,
		Code:             b.Code,
		SpotID:           b.SpotID,
		EmployeeID:       b.EmployeeID,
		LicensePlateUsed: b.LicensePlateUsed,
		BookingStart:     b.BookingStart,
		BookingEnd:       b.BookingEnd,
		Indefinite:       interval.IsIndefiniteDate(b.BookingEnd),
		Status:           b.Status,
	}
}

type SpotStatusResponse struct {
	SpotID        int              `json:"spot_id"`
	Date          string           `json:"date"`
	Status        string           `json:"status"`
	ActiveBooking *BookingResponse `json:"active_booking,omitempty"`
	NextBooking   *BookingResponse `json:"next_booking,omitempty"`
}

// SpotBoardRow is one line of the per-date spot board: the spot plus whoever
// holds it on the requested date.
type SpotBoardRow struct {
	SpotID       int     `json:"spot_id"`
	LotID        string  `json:"lot_id"`
	Zone         string  `json:"zone"`
	SpotType     string  `json:"spot_type"`
	Price        float64 `json:"price"`
	Status       string  `json:"status"`
	EmployeeCode string  `json:"employee_code,omitempty"`
	FullName     string  `json:"full_name,omitempty"`
	LicensePlate string  `json:"license_plate,omitempty"`
	BookingStart string  `json:"booking_start,omitempty"`
}

type BookingListRow struct {
	ID           int    `json:"id"`
	Code         string `json:"code"`
	EmployeeCode string `json:"employee_code"`
	FullName     string `json:"full_name"`
	LotID        string `json:"lot_id"`
	LicensePlate string `json:"license_plate"`
	BookingStart string `json:"booking_start"`
	BookingEnd   string `json:"booking_end"`
	Indefinite   bool   `json:"indefinite"`
	Status       string `json:"status"`
	Deleted      bool   `json:"deleted"`
}
