package repository

import (
	"database/sql"
	"errors"
	"fmt"
)

type AdminAccount struct {
	ID           int
	Email        string
	PasswordHash string
}

type AdminAuthRepository interface {
	GetByEmail(email string) (*AdminAccount, error)
	Create(email, passwordHash string) error
}

type adminAuthRepository struct {
	db *sql.DB
}

func NewAdminAuthRepository(database *sql.DB) AdminAuthRepository {
	return &adminAuthRepository{db: database}
}

func (r *adminAuthRepository) GetByEmail(email string) (*AdminAccount, error) {
	var admin AdminAccount
	err := r.db.QueryRow(`SELECT id, email, password_hash FROM admins WHERE email = $1`, email).
		Scan(&admin.ID, &admin.Email, &admin.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying admin by email: %w", err)
	}
	return &admin, nil
}

func (r *adminAuthRepository) Create(email, passwordHash string) error {
	_, err := r.db.Exec(`INSERT INTO admins (email, password_hash) VALUES ($1, $2)`, email, passwordHash)
	if err != nil {
		return fmt.Errorf("error creating admin: %w", err)
	}
	return nil
}
