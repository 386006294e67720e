package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/csemotors/inventory/internal/model"
)

const vehicleColumns = `inv_id, inv_make, inv_model, inv_year, inv_description,
	inv_image, inv_thumbnail, inv_price, inv_miles, inv_color, classification_id`

func scanVehicle(row *sql.Row) (*model.Vehicle, error) {
	v := &model.Vehicle{}
	err := row.Scan(&v.ID, &v.Make, &v.Model, &v.Year, &v.Description,
		&v.Image, &v.Thumbnail, &v.Price, &v.Miles, &v.Color, &v.ClassificationID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// CreateVehicle creates a new inventory row. Returns ErrDuplicate if a vehicle
// with the same (make, model, year) already exists; the tuple is unique at the
// database level, so the check cannot race with a concurrent insert.
func CreateVehicle(ctx context.Context, db *sql.DB, in model.VehicleInput) (*model.Vehicle, error) {
	result, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO inventory
		 (inv_make, inv_model, inv_year, inv_description, inv_image, inv_thumbnail,
		  inv_price, inv_miles, inv_color, classification_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Make, in.Model, in.Year, in.Description, in.Image, in.Thumbnail,
		in.Price, in.Miles, in.Color, in.ClassificationID,
	)
	if err != nil {
		return nil, fmt.Errorf("creating vehicle: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("creating vehicle: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("vehicle %s %s %d: %w", in.Make, in.Model, in.Year, ErrDuplicate)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting vehicle id: %w", err)
	}

	return GetVehicle(ctx, db, id)
}

// GetVehicle returns a vehicle by ID.
func GetVehicle(ctx context.Context, db *sql.DB, id int64) (*model.Vehicle, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+vehicleColumns+` FROM inventory WHERE inv_id = ?`, id,
	)
	v, err := scanVehicle(row)
	if err != nil {
		return nil, fmt.Errorf("getting vehicle: %w", err)
	}
	return v, nil
}

// VehicleExists reports whether a vehicle with the given make, model and year exists.
func VehicleExists(ctx context.Context, db *sql.DB, make, vmodel string, year int) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM inventory
		 WHERE inv_make = ? AND inv_model = ? AND inv_year = ?`,
		make, vmodel, year,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking vehicle: %w", err)
	}
	return count > 0, nil
}

// ListVehiclesByClassification returns all vehicles in a classification,
// joined with the classification name, ordered by make and model.
func ListVehiclesByClassification(ctx context.Context, db *sql.DB, classificationID int64) ([]model.Vehicle, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT i.inv_id, i.inv_make, i.inv_model, i.inv_year, i.inv_description,
		        i.inv_image, i.inv_thumbnail, i.inv_price, i.inv_miles, i.inv_color,
		        i.classification_id, c.classification_name
		 FROM inventory i
		 JOIN classification c ON c.classification_id = i.classification_id
		 WHERE i.classification_id = ?
		 ORDER BY i.inv_make, i.inv_model`, classificationID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing vehicles by classification: %w", err)
	}
	defer rows.Close()

	var vehicles []model.Vehicle
	for rows.Next() {
		var v model.Vehicle
		if err := rows.Scan(&v.ID, &v.Make, &v.Model, &v.Year, &v.Description,
			&v.Image, &v.Thumbnail, &v.Price, &v.Miles, &v.Color,
			&v.ClassificationID, &v.ClassificationName); err != nil {
			return nil, fmt.Errorf("scanning vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

// ListLatestVehicles returns the most recently added vehicles, newest first.
func ListLatestVehicles(ctx context.Context, db *sql.DB, limit int) ([]model.Vehicle, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+vehicleColumns+` FROM inventory ORDER BY inv_id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing latest vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []model.Vehicle
	for rows.Next() {
		var v model.Vehicle
		if err := rows.Scan(&v.ID, &v.Make, &v.Model, &v.Year, &v.Description,
			&v.Image, &v.Thumbnail, &v.Price, &v.Miles, &v.Color, &v.ClassificationID); err != nil {
			return nil, fmt.Errorf("scanning vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

// UpdateVehicle replaces all mutable fields of a vehicle by ID.
// Returns (nil, nil) when no row matched.
func UpdateVehicle(ctx context.Context, db *sql.DB, id int64, in model.VehicleInput) (*model.Vehicle, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE inventory SET inv_make = ?, inv_model = ?, inv_year = ?,
		        inv_description = ?, inv_image = ?, inv_thumbnail = ?,
		        inv_price = ?, inv_miles = ?, inv_color = ?, classification_id = ?
		 WHERE inv_id = ?`,
		in.Make, in.Model, in.Year, in.Description, in.Image, in.Thumbnail,
		in.Price, in.Miles, in.Color, in.ClassificationID, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating vehicle: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("updating vehicle: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}

	return GetVehicle(ctx, db, id)
}

// DeleteVehicle removes a vehicle by ID.
func DeleteVehicle(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM inventory WHERE inv_id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting vehicle: %w", err)
	}
	return nil
}

// SetVehiclePhoto stores the processed photo renditions for a vehicle.
func SetVehiclePhoto(ctx context.Context, db *sql.DB, id int64, photo, thumb []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE inventory SET inv_photo = ?, inv_photo_thumb = ?, inv_photo_mime = ?,
		        inv_image = ?, inv_thumbnail = ?
		 WHERE inv_id = ?`,
		photo, thumb, mime,
		fmt.Sprintf("/inv/photo/%d", id), fmt.Sprintf("/inv/photo/%d/thumb", id),
		id,
	)
	if err != nil {
		return fmt.Errorf("setting vehicle photo: %w", err)
	}
	return nil
}

// GetVehiclePhoto returns a vehicle's photo data and MIME type. The thumb
// argument selects the thumbnail rendition.
func GetVehiclePhoto(ctx context.Context, db *sql.DB, id int64, thumb bool) ([]byte, string, error) {
	column := "inv_photo"
	if thumb {
		column = "inv_photo_thumb"
	}

	var data []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT `+column+`, inv_photo_mime FROM inventory WHERE inv_id = ?`, id,
	).Scan(&data, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting vehicle photo: %w", err)
	}
	return data, mime.String, nil
}
