package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/csemotors/inventory/internal/model"
)

// CreateAccount creates a new account. Returns ErrDuplicate if the email is
// already registered.
func CreateAccount(ctx context.Context, db *sql.DB, firstname, lastname, email, passwordHash, accountType string) (*model.Account, error) {
	result, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO account
		 (account_firstname, account_lastname, account_email, password_hash, account_type)
		 VALUES (?, ?, ?, ?, ?)`,
		firstname, lastname, email, passwordHash, accountType,
	)
	if err != nil {
		return nil, fmt.Errorf("creating account: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("creating account: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("account %q: %w", email, ErrDuplicate)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting account id: %w", err)
	}

	return GetAccount(ctx, db, id)
}

// GetAccount returns an account by ID.
func GetAccount(ctx context.Context, db *sql.DB, id int64) (*model.Account, error) {
	a := &model.Account{}
	err := db.QueryRowContext(ctx,
		`SELECT account_id, account_firstname, account_lastname, account_email,
		        password_hash, account_type, created_at
		 FROM account WHERE account_id = ?`, id,
	).Scan(&a.ID, &a.Firstname, &a.Lastname, &a.Email, &a.PasswordHash, &a.Type, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting account: %w", err)
	}
	return a, nil
}

// GetAccountByEmail returns an account by email address.
func GetAccountByEmail(ctx context.Context, db *sql.DB, email string) (*model.Account, error) {
	a := &model.Account{}
	err := db.QueryRowContext(ctx,
		`SELECT account_id, account_firstname, account_lastname, account_email,
		        password_hash, account_type, created_at
		 FROM account WHERE account_email = ?`, email,
	).Scan(&a.ID, &a.Firstname, &a.Lastname, &a.Email, &a.PasswordHash, &a.Type, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting account by email: %w", err)
	}
	return a, nil
}

// UpdateAccountPassword replaces an account's password hash.
func UpdateAccountPassword(ctx context.Context, db *sql.DB, id int64, passwordHash string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE account SET password_hash = ? WHERE account_id = ?`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("updating account password: %w", err)
	}
	return nil
}
