package model

import "time"

// WishlistEntry associates an account with a vehicle it has bookmarked.
type WishlistEntry struct {
	AccountID int64     `json:"account_id"`
	InvID     int64     `json:"inv_id"`
	AddedAt   time.Time `json:"added_at"`
}
