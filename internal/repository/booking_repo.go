package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"carpark/internal/db"
)

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(database *sql.DB) *BookingRepository {
	return &BookingRepository{DB: database}
}

const bookingColumns = `id, code, spot_id, employee_id, license_plate_used, booking_start, booking_end, status, is_deleted, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*db.Booking, error) {
	var b db.Booking
	err := row.Scan(
		&b.ID, &b.Code, &b.SpotID, &b.EmployeeID, &b.LicensePlateUsed,
		&b.BookingStart, &b.BookingEnd, &b.Status, &b.IsDeleted, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) Create(b *db.Booking) error {
	query := `
		INSERT INTO bookings
		(code, spot_id, employee_id, license_plate_used, booking_start, booking_end, status, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, NOW(), NOW())
		RETURNING id, created_at, updated_at`
	return r.DB.QueryRow(query,
		b.Code, b.SpotID, b.EmployeeID, b.LicensePlateUsed, b.BookingStart, b.BookingEnd, b.Status,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *BookingRepository) GetByID(id int) (*db.Booking, error) {
	row := r.DB.QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying booking %d: %w", id, err)
	}
	return b, nil
}

func (r *BookingRepository) UpdateInterval(id int, start, end time.Time) error {
	_, err := r.DB.Exec(
		`UPDATE bookings SET booking_start = $1, booking_end = $2, updated_at = NOW() WHERE id = $3 AND is_deleted = FALSE`,
		start, end, id,
	)
	if err != nil {
		return fmt.Errorf("error updating booking %d dates: %w", id, err)
	}
	return nil
}

func (r *BookingRepository) SoftDelete(id int) error {
	_, err := r.DB.Exec(`UPDATE bookings SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error soft-deleting booking %d: %w", id, err)
	}
	return nil
}

// ListOverlappingForSpot returns non-deleted bookings on the spot that share
// at least one day with [start, end]. The predicate is inclusive on both
// ends: a booking occupies every day from its start through its end.
// excludeID skips the booking being edited; pass 0 on create.
func (r *BookingRepository) ListOverlappingForSpot(spotID int, start, end time.Time, excludeID int) ([]db.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE spot_id = $1 AND is_deleted = FALSE
		  AND booking_start <= $2 AND booking_end >= $3
		  AND id <> $4
		ORDER BY booking_start`
	return r.listBookings(query, spotID, end, start, excludeID)
}

// ListOverlappingForEmployee is the same overlap test keyed by employee: one
// employee may hold at most one spot per overlapping period.
func (r *BookingRepository) ListOverlappingForEmployee(employeeID int, start, end time.Time, excludeID int) ([]db.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE employee_id = $1 AND is_deleted = FALSE
		  AND booking_start <= $2 AND booking_end >= $3
		  AND id <> $4
		ORDER BY booking_start`
	return r.listBookings(query, employeeID, end, start, excludeID)
}

func (r *BookingRepository) listBookings(query string, args ...interface{}) ([]db.Booking, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings: %w", err)
	}
	defer rows.Close()

	var bookings []db.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating booking rows: %w", err)
	}
	return bookings, nil
}

// FindActiveForSpot returns the booking whose interval contains the date, or
// nil when the spot is free that day.
func (r *BookingRepository) FindActiveForSpot(spotID int, on time.Time) (*db.Booking, error) {
	row := r.DB.QueryRow(`
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE spot_id = $1 AND is_deleted = FALSE
		  AND booking_start <= $2 AND booking_end >= $2
		ORDER BY booking_start
		LIMIT 1`, spotID, on)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying active booking for spot %d: %w", spotID, err)
	}
	return b, nil
}

// FindNextForSpot returns the earliest booking starting strictly after the
// date, or nil when nothing is coming up.
func (r *BookingRepository) FindNextForSpot(spotID int, after time.Time) (*db.Booking, error) {
	row := r.DB.QueryRow(`
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE spot_id = $1 AND is_deleted = FALSE AND booking_start > $2
		ORDER BY booking_start
		LIMIT 1`, spotID, after)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying next booking for spot %d: %w", spotID, err)
	}
	return b, nil
}

const bookingDetailQuery = `
	SELECT
		b.id, b.code, b.spot_id, b.employee_id, b.license_plate_used,
		b.booking_start, b.booking_end, b.status, b.is_deleted, b.created_at, b.updated_at,
		COALESCE(e.employee_code, ''), COALESCE(e.full_name, ''), COALESCE(e.employee_type, ''),
		COALESCE(e.email, ''), COALESCE(e.phone, ''),
		COALESCE(bh.tier, 0),
		COALESCE(s.lot_id, s.lot_code || ' ' || s.spot_number::text), s.zone_text, s.spot_type, s.is_active,
		COALESCE(s.price, 0)
	FROM bookings b
	JOIN parking_spots s ON s.id = b.spot_id
	LEFT JOIN employees e ON e.id = b.employee_id
	LEFT JOIN bond_holders bh ON bh.employee_code = e.employee_code`

func (r *BookingRepository) listDetails(query string, args ...interface{}) ([]db.BookingDetail, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying booking details: %w", err)
	}
	defer rows.Close()

	var details []db.BookingDetail
	for rows.Next() {
		var d db.BookingDetail
		err := rows.Scan(
			&d.ID, &d.Code, &d.SpotID, &d.EmployeeID, &d.LicensePlateUsed,
			&d.BookingStart, &d.BookingEnd, &d.Status, &d.IsDeleted, &d.CreatedAt, &d.UpdatedAt,
			&d.EmployeeCode, &d.EmployeeName, &d.EmployeeType,
			&d.EmployeeEmail, &d.EmployeePhone,
			&d.PrivilegeTier,
			&d.LotID, &d.ZoneText, &d.SpotType, &d.SpotActive,
			&d.Price,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning booking detail: %w", err)
		}
		details = append(details, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating booking detail rows: %w", err)
	}
	return details, nil
}

// ListDetails returns non-deleted bookings intersecting [start, end] with
// their joined employee, privilege and spot columns.
func (r *BookingRepository) ListDetails(start, end time.Time) ([]db.BookingDetail, error) {
	query := bookingDetailQuery + `
	WHERE b.is_deleted = FALSE AND b.booking_start <= $1 AND b.booking_end >= $2
	ORDER BY b.booking_start`
	return r.listDetails(query, end, start)
}

// ListAllDetails returns every booking, soft-deleted included, newest first.
// The ledger never physically removes a row.
func (r *BookingRepository) ListAllDetails() ([]db.BookingDetail, error) {
	query := bookingDetailQuery + `
	ORDER BY b.booking_start DESC`
	return r.listDetails(query)
}
