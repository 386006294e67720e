package model

import "time"

// Account represents a registered account.
type Account struct {
	ID           int64     `json:"account_id"`
	Firstname    string    `json:"account_firstname"`
	Lastname     string    `json:"account_lastname"`
	Email        string    `json:"account_email"`
	PasswordHash string    `json:"-"`
	Type         string    `json:"account_type"`
	CreatedAt    time.Time `json:"created_at"`
}

// Account types.
const (
	TypeAdmin    = "Admin"
	TypeEmployee = "Employee"
	TypeClient   = "Client"
)

// IsStaff reports whether the account type may manage inventory.
func IsStaff(accountType string) bool {
	return accountType == TypeAdmin || accountType == TypeEmployee
}
