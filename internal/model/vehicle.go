package model

// Vehicle is a single vehicle listing with descriptive and pricing fields.
// JSON field names follow the inventory table columns, which the JSON
// endpoints expose directly.
type Vehicle struct {
	ID               int64   `json:"inv_id"`
	Make             string  `json:"inv_make"`
	Model            string  `json:"inv_model"`
	Year             int     `json:"inv_year"`
	Description      string  `json:"inv_description"`
	Image            string  `json:"inv_image"`
	Thumbnail        string  `json:"inv_thumbnail"`
	Price            float64 `json:"inv_price"`
	Miles            int64   `json:"inv_miles"`
	Color            string  `json:"inv_color"`
	ClassificationID int64   `json:"classification_id"`

	// Joined field (not always populated).
	ClassificationName string `json:"classification_name,omitempty"`
}

// VehicleInput carries the mutable vehicle fields for create and update.
type VehicleInput struct {
	Make             string
	Model            string
	Year             int
	Description      string
	Image            string
	Thumbnail        string
	Price            float64
	Miles            int64
	Color            string
	ClassificationID int64
}
