package model

// Classification is a vehicle category (e.g. "Sedan") used to group inventory.
type Classification struct {
	ID   int64  `json:"classification_id"`
	Name string `json:"classification_name"`
}
