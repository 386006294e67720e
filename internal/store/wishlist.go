package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/csemotors/inventory/internal/model"
)

// AddToWishlist adds a vehicle to an account's wishlist. Returns ErrDuplicate
// when the pair already exists; the (account_id, inv_id) primary key makes the
// insert race-free.
func AddToWishlist(ctx context.Context, db *sql.DB, accountID, invID int64) error {
	result, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO wishlist (account_id, inv_id) VALUES (?, ?)`,
		accountID, invID,
	)
	if err != nil {
		return fmt.Errorf("adding to wishlist: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("adding to wishlist: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("wishlist entry: %w", ErrDuplicate)
	}
	return nil
}

// WishlistExists reports whether an account already has a vehicle wishlisted.
func WishlistExists(ctx context.Context, db *sql.DB, accountID, invID int64) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM wishlist WHERE account_id = ? AND inv_id = ?`,
		accountID, invID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking wishlist: %w", err)
	}
	return count > 0, nil
}

// ListWishlist returns the vehicles on an account's wishlist, most recently
// added first.
func ListWishlist(ctx context.Context, db *sql.DB, accountID int64) ([]model.Vehicle, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT i.inv_id, i.inv_make, i.inv_model, i.inv_year, i.inv_description,
		        i.inv_image, i.inv_thumbnail, i.inv_price, i.inv_miles, i.inv_color,
		        i.classification_id
		 FROM wishlist w
		 JOIN inventory i ON i.inv_id = w.inv_id
		 WHERE w.account_id = ?
		 ORDER BY w.added_at DESC`, accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing wishlist: %w", err)
	}
	defer rows.Close()

	var vehicles []model.Vehicle
	for rows.Next() {
		var v model.Vehicle
		if err := rows.Scan(&v.ID, &v.Make, &v.Model, &v.Year, &v.Description,
			&v.Image, &v.Thumbnail, &v.Price, &v.Miles, &v.Color, &v.ClassificationID); err != nil {
			return nil, fmt.Errorf("scanning wishlist vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

// RemoveFromWishlist removes a vehicle from an account's wishlist.
func RemoveFromWishlist(ctx context.Context, db *sql.DB, accountID, invID int64) error {
	_, err := db.ExecContext(ctx,
		`DELETE FROM wishlist WHERE account_id = ? AND inv_id = ?`,
		accountID, invID,
	)
	if err != nil {
		return fmt.Errorf("removing from wishlist: %w", err)
	}
	return nil
}
