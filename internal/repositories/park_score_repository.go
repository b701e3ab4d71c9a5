package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"playgroundr/internal/models/db_models"
	"playgroundr/pkg/utils"
)

// SimilarPark is a stored snapshot with its cosine similarity to a query
// vector.
type SimilarPark struct {
	db_models.ParkScore
	Similarity float64 `json:"similarity"`
}

type ParkScoreRepository interface {
	Upsert(ctx context.Context, score *db_models.ParkScore) error
	GetByPlaceID(ctx context.Context, placeID string) (*db_models.ParkScore, error)
	ListSimilar(ctx context.Context, vector pgvector.Vector, excludePlaceID string, limit int) ([]SimilarPark, error)
}

type parkScoreRepository struct {
	db *gorm.DB
}

func NewParkScoreRepository(db *gorm.DB) ParkScoreRepository {
	return &parkScoreRepository{db: db}
}

var upsertColumns = []string{
	"name", "address", "latitude", "longitude", "state", "status",
	"amenities", "scores", "review_count", "embedding", "updated_at", "deleted_at",
}

// Upsert inserts the snapshot or replaces the existing one for the same
// place id. created_at of the first snapshot is kept.
func (r *parkScoreRepository) Upsert(ctx context.Context, score *db_models.ParkScore) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "place_id"}},
		DoUpdates: clause.AssignmentColumns(upsertColumns),
	}).Create(score).Error
	if err != nil {
		return fmt.Errorf("%w: upsert park score %s: %v", utils.ErrDatabaseError, score.PlaceID, err)
	}
	return nil
}

// GetByPlaceID returns nil, nil when no snapshot exists.
func (r *parkScoreRepository) GetByPlaceID(ctx context.Context, placeID string) (*db_models.ParkScore, error) {
	var score db_models.ParkScore
	err := r.db.WithContext(ctx).Where("place_id = ?", placeID).First(&score).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: get park score %s: %v", utils.ErrDatabaseError, placeID, err)
	}
	return &score, nil
}

// ListSimilar orders stored parks by cosine distance to vector. Only vectors
// of the same dimension are compared.
func (r *parkScoreRepository) ListSimilar(ctx context.Context, vector pgvector.Vector, excludePlaceID string, limit int) ([]SimilarPark, error) {
	var results []SimilarPark

	query := `
        SELECT *, (1 - (embedding <=> ?)) AS similarity
        FROM park_scores
        WHERE deleted_at IS NULL
          AND embedding IS NOT NULL
          AND vector_dims(embedding) = ?
          AND place_id <> ?
        ORDER BY embedding <=> ?
        LIMIT ?
    `

	dims := len(vector.Slice())
	err := r.db.WithContext(ctx).Raw(query, vector, dims, excludePlaceID, vector, limit).Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("%w: similar parks: %v", utils.ErrDatabaseError, err)
	}
	return results, nil
}

// NoopParkScoreRepository is used when persistence is disabled.
type NoopParkScoreRepository struct{}

func (NoopParkScoreRepository) Upsert(context.Context, *db_models.ParkScore) error { return nil }

func (NoopParkScoreRepository) GetByPlaceID(context.Context, string) (*db_models.ParkScore, error) {
	return nil, nil
}

func (NoopParkScoreRepository) ListSimilar(context.Context, pgvector.Vector, string, int) ([]SimilarPark, error) {
	return nil, nil
}
