package repository

import (
	"database/sql"
	"fmt"

	"carpark/internal/db"
)

type PrivilegeRepository struct {
	DB *sql.DB
}

func NewPrivilegeRepository(database *sql.DB) *PrivilegeRepository {
	return &PrivilegeRepository{DB: database}
}

func (r *PrivilegeRepository) List() ([]db.BondHolder, error) {
	rows, err := r.DB.Query(`SELECT id, full_name, employee_code, tier, created_at FROM bond_holders ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error querying bond holders: %w", err)
	}
	defer rows.Close()

	var holders []db.BondHolder
	for rows.Next() {
		var h db.BondHolder
		if err := rows.Scan(&h.ID, &h.FullName, &h.EmployeeCode, &h.Tier, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning bond holder: %w", err)
		}
		holders = append(holders, h)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating bond holder rows: %w", err)
	}
	return holders, nil
}

// ReplaceAll wipes the bond-holder table and inserts the given rows in one
// transaction. Imports are whole-file replacements, never merges.
func (r *PrivilegeRepository) ReplaceAll(holders []db.BondHolder) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting bond holder import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM bond_holders`); err != nil {
		return fmt.Errorf("error wiping bond holders: %w", err)
	}
	for _, h := range holders {
		_, err := tx.Exec(
			`INSERT INTO bond_holders (id, full_name, employee_code, tier, created_at) VALUES ($1, $2, $3, $4, NOW())`,
			h.ID, h.FullName, h.EmployeeCode, h.Tier,
		)
		if err != nil {
			return fmt.Errorf("error inserting bond holder %s: %w", h.ID, err)
		}
	}
	return tx.Commit()
}
