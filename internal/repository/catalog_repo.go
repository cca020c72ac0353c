package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"carpark/internal/db"
)

// CatalogRepository reads the parking inventory: spots, employees with their
// vehicles, and privilege tiers. The catalog is owned by the admin CRUD side;
// the booking core only reads it.
type CatalogRepository struct {
	DB *sql.DB
}

func NewCatalogRepository(database *sql.DB) *CatalogRepository {
	return &CatalogRepository{DB: database}
}

const spotColumns = `id, lot_code, spot_number, COALESCE(lot_id, lot_code || ' ' || spot_number::text), zone_text, spot_type, COALESCE(price, 0), is_active`

func scanSpot(row rowScanner) (*db.ParkingSpot, error) {
	var s db.ParkingSpot
	err := row.Scan(&s.ID, &s.LotCode, &s.SpotNumber, &s.LotID, &s.ZoneText, &s.SpotType, &s.Price, &s.IsActive)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *CatalogRepository) ListActiveSpots() ([]db.ParkingSpot, error) {
	rows, err := r.DB.Query(`SELECT ` + spotColumns + ` FROM parking_spots WHERE is_active = TRUE ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error querying active spots: %w", err)
	}
	defer rows.Close()

	var spots []db.ParkingSpot
	for rows.Next() {
		s, err := scanSpot(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning spot: %w", err)
		}
		spots = append(spots, *s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating spot rows: %w", err)
	}
	return spots, nil
}

func (r *CatalogRepository) GetSpot(id int) (*db.ParkingSpot, error) {
	row := r.DB.QueryRow(`SELECT `+spotColumns+` FROM parking_spots WHERE id = $1`, id)
	s, err := scanSpot(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying spot %d: %w", id, err)
	}
	return s, nil
}

func (r *CatalogRepository) GetEmployee(id int) (*db.Employee, error) {
	var e db.Employee
	err := r.DB.QueryRow(`
		SELECT id, employee_code, full_name, employee_type, COALESCE(email, ''), COALESCE(phone, ''), is_active
		FROM employees WHERE id = $1`, id).
		Scan(&e.ID, &e.EmployeeCode, &e.FullName, &e.EmployeeType, &e.Email, &e.Phone, &e.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying employee %d: %w", id, err)
	}

	rows, err := r.DB.Query(`SELECT license_plate FROM vehicles WHERE employee_code = $1 ORDER BY license_plate`, e.EmployeeCode)
	if err != nil {
		return nil, fmt.Errorf("error querying vehicles for %s: %w", e.EmployeeCode, err)
	}
	defer rows.Close()
	for rows.Next() {
		var plate string
		if err := rows.Scan(&plate); err != nil {
			return nil, fmt.Errorf("error scanning vehicle plate: %w", err)
		}
		e.Plates = append(e.Plates, plate)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating vehicle rows: %w", err)
	}
	return &e, nil
}

// GetPrivilegeTier looks up the bond-holder tier by employee code. No entry
// means tier 0: not exempt.
func (r *CatalogRepository) GetPrivilegeTier(employeeCode string) (int, error) {
	var tier int
	err := r.DB.QueryRow(`SELECT tier FROM bond_holders WHERE employee_code = $1`, employeeCode).Scan(&tier)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("error querying privilege for %s: %w", employeeCode, err)
	}
	return tier, nil
}
