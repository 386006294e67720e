package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/csemotors/inventory/internal/model"
)

// ListClassifications returns all classifications ordered by name.
func ListClassifications(ctx context.Context, db *sql.DB) ([]model.Classification, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT classification_id, classification_name
		 FROM classification ORDER BY classification_name`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing classifications: %w", err)
	}
	defer rows.Close()

	var classifications []model.Classification
	for rows.Next() {
		var c model.Classification
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scanning classification: %w", err)
		}
		classifications = append(classifications, c)
	}
	return classifications, rows.Err()
}

// CreateClassification creates a new classification. Returns ErrDuplicate if
// a classification with the same name already exists. The uniqueness check is
// the database constraint, so concurrent inserts cannot both succeed.
func CreateClassification(ctx context.Context, db *sql.DB, name string) (*model.Classification, error) {
	result, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO classification (classification_name) VALUES (?)`,
		name,
	)
	if err != nil {
		return nil, fmt.Errorf("creating classification: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("creating classification: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("classification %q: %w", name, ErrDuplicate)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting classification id: %w", err)
	}

	return GetClassification(ctx, db, id)
}

// GetClassification returns a classification by ID.
func GetClassification(ctx context.Context, db *sql.DB, id int64) (*model.Classification, error) {
	c := &model.Classification{}
	err := db.QueryRowContext(ctx,
		`SELECT classification_id, classification_name
		 FROM classification WHERE classification_id = ?`, id,
	).Scan(&c.ID, &c.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting classification: %w", err)
	}
	return c, nil
}

// ClassificationExists reports whether a classification with the given name exists.
func ClassificationExists(ctx context.Context, db *sql.DB, name string) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM classification WHERE classification_name = ?`, name,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking classification: %w", err)
	}
	return count > 0, nil
}
