package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pgvector/pgvector-go"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"playgroundr/internal/config"
	"playgroundr/internal/metrics"
	"playgroundr/internal/models/db_models"
	"playgroundr/internal/models/place_models"
	"playgroundr/internal/models/request_models"
	"playgroundr/internal/models/response_models"
	"playgroundr/internal/repositories"
	"playgroundr/internal/scoring"
	"playgroundr/pkg/memcache"
	"playgroundr/pkg/utils"
)

const (
	defaultSimilarLimit = 5
	defaultPhotoLimit   = 5
)

// PlacesAPI is the subset of the Places client the park service uses.
type PlacesAPI interface {
	RetrieveReviews(ctx context.Context, query string, loc *place_models.LatLng) (*place_models.PlaceRecord, error)
	RetrieveReviewsMulti(ctx context.Context, query, placeType string, loc place_models.LatLng) ([]place_models.PlaceRecord, error)
	PlaceReviews(ctx context.Context, placeID string) (*place_models.PlaceRecord, error)
	PlacePhotos(ctx context.Context, placeID string) ([]place_models.Photo, error)
	PhotoURL(ctx context.Context, photoReference string, maxWidth int) (string, error)
}

type ParkServiceInterface interface {
	Bootstrap() response_models.MapBootstrap
	GetParkAmenities(ctx context.Context, query request_models.ParkAmenitiesQuery) (response_models.ParkAmenities, error)
	FindPark(ctx context.Context, query request_models.FindParkQuery) (response_models.ParkAmenities, error)
	SearchParks(ctx context.Context, query request_models.SearchParksQuery) (response_models.RankedParks, error)
	ScorePlace(ctx context.Context, raw []byte) (scoring.ScoringResult, error)
	RankPlaces(ctx context.Context, req request_models.RankPlacesRequest) (response_models.RankedParks, error)
	SimilarParks(ctx context.Context, placeID string, limit int) ([]response_models.SimilarPark, error)
	PlacePhotos(ctx context.Context, placeID string, limit int) ([]response_models.PlacePhoto, error)
}

type ParkService struct {
	places   PlacesAPI
	cache    memcache.PlaceCache
	cacheTTL time.Duration
	scorer   *scoring.Scorer
	ranker   *scoring.Ranker
	repo     repositories.ParkScoreRepository
	cfg      config.ScoringConfig
	logger   *zap.Logger
}

func NewParkService(
	places PlacesAPI,
	cache memcache.PlaceCache,
	cacheCfg config.CacheConfig,
	scorer *scoring.Scorer,
	ranker *scoring.Ranker,
	repo repositories.ParkScoreRepository,
	cfg config.ScoringConfig,
	logger *zap.Logger,
) ParkServiceInterface {
	return &ParkService{
		places:   places,
		cache:    cache,
		cacheTTL: cacheCfg.TTLDuration(),
		scorer:   scorer,
		ranker:   ranker,
		repo:     repo,
		cfg:      cfg,
		logger:   logger.Named("parks"),
	}
}

func (p *ParkService) Bootstrap() response_models.MapBootstrap {
	return response_models.MapBootstrap{
		Origin:    p.defaultOrigin(),
		Zoom:      p.cfg.Zoom,
		Amenities: p.scorer.Model().Amenities(),
	}
}

func (p *ParkService) GetParkAmenities(ctx context.Context, query request_models.ParkAmenitiesQuery) (response_models.ParkAmenities, error) {
	origin, err := p.originOrDefault(query.InLat, query.InLon)
	if err != nil {
		return response_models.ParkAmenities{}, err
	}
	zoom := query.Zoom
	if zoom <= 0 {
		zoom = p.cfg.Zoom
	}

	place, err := p.fetchPlace(ctx, query.PlaceID)
	if err != nil {
		return response_models.ParkAmenities{}, err
	}

	result := p.score(place)
	p.persist(ctx, place, result)

	return response_models.ParkAmenities{Place: result, Origin: origin, Zoom: zoom}, nil
}

// FindPark scores the best match for a free-text query, biased towards the
// given location when there is one.
func (p *ParkService) FindPark(ctx context.Context, query request_models.FindParkQuery) (response_models.ParkAmenities, error) {
	if strings.TrimSpace(query.Query) == "" {
		return response_models.ParkAmenities{}, fmt.Errorf("%w: query is required", utils.ErrInvalidRequest)
	}
	origin, err := p.originOrDefault(query.Lat, query.Lng)
	if err != nil {
		return response_models.ParkAmenities{}, err
	}
	var bias *place_models.LatLng
	if query.Lat != nil {
		bias = &origin
	}

	rec, err := p.places.RetrieveReviews(ctx, query.Query, bias)
	if err != nil {
		p.logger.Warn("find place failed", zap.String("query", query.Query), zap.Error(err))
		return response_models.ParkAmenities{}, err
	}
	if rec.PlaceID != "" {
		p.cachePut(ctx, rec.PlaceID, rec)
	}

	place, err := rec.Validate()
	if err != nil {
		p.logger.Warn("malformed place details", zap.String("query", query.Query), zap.Error(err))
		return response_models.ParkAmenities{}, err
	}

	result := p.score(place)
	if place.PlaceID != "" {
		p.persist(ctx, place, result)
	}
	return response_models.ParkAmenities{Place: result, Origin: origin, Zoom: p.cfg.Zoom}, nil
}

func (p *ParkService) SearchParks(ctx context.Context, query request_models.SearchParksQuery) (response_models.RankedParks, error) {
	if query.Query == "" && query.Type == "" {
		return response_models.RankedParks{}, fmt.Errorf("%w: query or type is required", utils.ErrInvalidRequest)
	}
	origin, err := p.originOrDefault(query.Lat, query.Lng)
	if err != nil {
		return response_models.RankedParks{}, err
	}

	records, err := p.places.RetrieveReviewsMulti(ctx, query.Query, query.Type, origin)
	if err != nil {
		p.logger.Error("places search failed", zap.String("query", query.Query), zap.String("type", query.Type), zap.Error(err))
		return response_models.RankedParks{}, err
	}
	for i := range records {
		if records[i].PlaceID != "" {
			p.cachePut(ctx, records[i].PlaceID, &records[i])
		}
	}

	return response_models.RankedParks{Origin: origin, Results: p.rank(records, origin, query.Amenities)}, nil
}

// ScorePlace scores one raw place record as received from a caller.
func (p *ParkService) ScorePlace(ctx context.Context, raw []byte) (scoring.ScoringResult, error) {
	start := time.Now()
	place, result, err := p.scorer.ScoreRecord(raw)
	if err != nil {
		return scoring.ScoringResult{}, err
	}
	p.observe("score", start, result)

	if place.PlaceID != "" {
		p.persist(ctx, place, result)
	}
	return result, nil
}

func (p *ParkService) RankPlaces(_ context.Context, req request_models.RankPlacesRequest) (response_models.RankedParks, error) {
	origin := p.defaultOrigin()
	if req.Origin != nil {
		if err := validateLocation(*req.Origin); err != nil {
			return response_models.RankedParks{}, err
		}
		origin = *req.Origin
	}
	return response_models.RankedParks{Origin: origin, Results: p.rank(req.Places, origin, req.Amenities)}, nil
}

// SimilarParks lists stored parks whose review vectors are closest to the
// given park's. A park without enough reviews has no vector and no
// neighbours.
func (p *ParkService) SimilarParks(ctx context.Context, placeID string, limit int) ([]response_models.SimilarPark, error) {
	if limit <= 0 {
		limit = defaultSimilarLimit
	}

	vector, err := p.documentVector(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if vector == nil {
		return []response_models.SimilarPark{}, nil
	}

	similar, err := p.repo.ListSimilar(ctx, *vector, placeID, limit)
	if err != nil {
		p.logger.Error("similar parks query failed", zap.String("place_id", placeID), zap.Error(err))
		return nil, err
	}

	return lo.Map(similar, func(s repositories.SimilarPark, _ int) response_models.SimilarPark {
		return response_models.SimilarPark{
			PlaceID:    s.PlaceID,
			Name:       s.Name,
			Address:    s.Address,
			Location:   place_models.LatLng{Lat: s.Latitude, Lng: s.Longitude},
			Amenities:  s.Amenities,
			Scores:     s.Scores,
			State:      s.State,
			Similarity: s.Similarity,
		}
	}), nil
}

func (p *ParkService) PlacePhotos(ctx context.Context, placeID string, limit int) ([]response_models.PlacePhoto, error) {
	if limit <= 0 {
		limit = defaultPhotoLimit
	}

	photos, err := p.places.PlacePhotos(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if len(photos) > limit {
		photos = photos[:limit]
	}

	out := make([]response_models.PlacePhoto, 0, len(photos))
	for _, photo := range photos {
		link, err := p.places.PhotoURL(ctx, photo.PhotoReference, 0)
		if err != nil {
			p.logger.Warn("resolving photo url failed", zap.String("place_id", placeID), zap.Error(err))
			continue
		}
		out = append(out, response_models.PlacePhoto{
			Reference:    photo.PhotoReference,
			Width:        photo.Width,
			Height:       photo.Height,
			URL:          link,
			Attributions: photo.HTMLAttributions,
		})
	}
	return out, nil
}

func (p *ParkService) score(place place_models.Place) scoring.ScoringResult {
	start := time.Now()
	result := p.scorer.ScorePlace(place)
	p.observe("score", start, result)
	return result
}

func (p *ParkService) observe(operation string, start time.Time, result scoring.ScoringResult) {
	metrics.ScoringDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	metrics.ScoringOutcomes.WithLabelValues(string(result.State)).Inc()
}

func (p *ParkService) rank(records []place_models.PlaceRecord, origin place_models.LatLng, desired []string) []scoring.ScoringResult {
	start := time.Now()
	results := p.ranker.Rank(records, origin, desired)
	metrics.ScoringDuration.WithLabelValues("rank").Observe(time.Since(start).Seconds())
	for _, r := range results {
		metrics.ScoringOutcomes.WithLabelValues(string(r.State)).Inc()
	}
	return results
}

// fetchPlace returns the validated details of a place, from the cache when
// possible.
func (p *ParkService) fetchPlace(ctx context.Context, placeID string) (place_models.Place, error) {
	rec, ok := p.cache.Get(ctx, placeID)
	if ok {
		metrics.PlaceCacheLookups.WithLabelValues("hit").Inc()
	} else {
		metrics.PlaceCacheLookups.WithLabelValues("miss").Inc()
		var err error
		rec, err = p.places.PlaceReviews(ctx, placeID)
		if err != nil {
			p.logger.Error("place details failed", zap.String("place_id", placeID), zap.Error(err))
			return place_models.Place{}, err
		}
		p.cachePut(ctx, placeID, rec)
	}

	place, err := rec.Validate()
	if err != nil {
		p.logger.Warn("malformed place details", zap.String("place_id", placeID), zap.Error(err))
		return place_models.Place{}, err
	}
	return place, nil
}

func (p *ParkService) cachePut(ctx context.Context, placeID string, rec *place_models.PlaceRecord) {
	if err := p.cache.Set(ctx, placeID, rec, p.cacheTTL); err != nil {
		p.logger.Warn("caching place failed", zap.String("place_id", placeID), zap.Error(err))
	}
}

// documentVector prefers the stored snapshot and falls back to scoring the
// place afresh.
func (p *ParkService) documentVector(ctx context.Context, placeID string) (*pgvector.Vector, error) {
	snapshot, err := p.repo.GetByPlaceID(ctx, placeID)
	if err != nil {
		p.logger.Warn("loading park snapshot failed", zap.String("place_id", placeID), zap.Error(err))
	}
	if snapshot != nil && snapshot.Embedding != nil {
		return snapshot.Embedding, nil
	}

	place, err := p.fetchPlace(ctx, placeID)
	if err != nil {
		return nil, err
	}
	result := p.score(place)
	return p.persist(ctx, place, result), nil
}

// persist stores the scoring snapshot and returns its document vector, if
// any. Storage failures are logged and never fail the request.
func (p *ParkService) persist(ctx context.Context, place place_models.Place, result scoring.ScoringResult) *pgvector.Vector {
	var embedding *pgvector.Vector
	if features, ok := p.scorer.DocumentVector(place); ok {
		vec := pgvector.NewVector(lo.Map(features, func(f float64, _ int) float32 { return float32(f) }))
		embedding = &vec
	}

	snapshot := &db_models.ParkScore{
		PlaceID:     place.PlaceID,
		Name:        place.Name,
		Address:     place.FormattedAddress,
		Latitude:    place.Location.Lat,
		Longitude:   place.Location.Lng,
		State:       string(result.State),
		Status:      result.Text,
		Amenities:   result.Amenities,
		Scores:      lo.Map(result.Scores, func(s int, _ int) int64 { return int64(s) }),
		ReviewCount: len(place.Reviews),
		Embedding:   embedding,
	}
	if err := p.repo.Upsert(ctx, snapshot); err != nil {
		p.logger.Warn("saving park snapshot failed", zap.String("place_id", place.PlaceID), zap.Error(err))
	}
	return embedding
}

func (p *ParkService) defaultOrigin() place_models.LatLng {
	return place_models.LatLng{Lat: p.cfg.OriginLat, Lng: p.cfg.OriginLng}
}

func (p *ParkService) originOrDefault(lat, lng *float64) (place_models.LatLng, error) {
	if lat == nil && lng == nil {
		return p.defaultOrigin(), nil
	}
	if lat == nil || lng == nil {
		return place_models.LatLng{}, fmt.Errorf("%w: lat and lng must be given together", utils.ErrInvalidLocation)
	}
	loc := place_models.LatLng{Lat: *lat, Lng: *lng}
	return loc, validateLocation(loc)
}

func validateLocation(loc place_models.LatLng) error {
	if loc.Lat < -90 || loc.Lat > 90 || loc.Lng < -180 || loc.Lng > 180 {
		return fmt.Errorf("%w: %v,%v out of range", utils.ErrInvalidLocation, loc.Lat, loc.Lng)
	}
	return nil
}
