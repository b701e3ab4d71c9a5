package db_models

import (
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// ParkScore is the last scoring snapshot of a place. Embedding holds the
// review document vector and is nil when the place had too few reviews.
type ParkScore struct {
	BaseModel
	PlaceID     string           `gorm:"uniqueIndex;not null" json:"place_id"`
	Name        string           `json:"name"`
	Address     string           `json:"address"`
	Latitude    float64          `json:"latitude"`
	Longitude   float64          `json:"longitude"`
	State       string           `gorm:"index" json:"state"`
	Status      string           `json:"status"`
	Amenities   pq.StringArray   `gorm:"type:text[]" json:"amenities"`
	Scores      pq.Int64Array    `gorm:"type:integer[]" json:"scores"`
	ReviewCount int              `json:"review_count"`
	Embedding   *pgvector.Vector `gorm:"type:vector" json:"-"`
}
