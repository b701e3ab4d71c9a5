package scoring

import (
	"sort"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"playgroundr/internal/models/place_models"
)

const (
	DefaultWalkingThresholdKm = 1.0
	DefaultTopK               = 5
)

// Ranker scores a batch of places and orders them for display.
type Ranker struct {
	scorer             *Scorer
	walkingThresholdKm float64
	topK               int
	logger             *zap.Logger
}

func NewRanker(scorer *Scorer, walkingThresholdKm float64, topK int, logger *zap.Logger) *Ranker {
	if walkingThresholdKm < 0 {
		walkingThresholdKm = DefaultWalkingThresholdKm
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ranker{scorer: scorer, walkingThresholdKm: walkingThresholdKm, topK: topK, logger: logger}
}

type rankedPlace struct {
	result    ScoringResult
	sortDist  float64
	total     int
	desireGap int
}

// Rank validates, merges, scores and sorts the records, returning at most
// topK results. Malformed records are logged and skipped.
func (r *Ranker) Rank(records []place_models.PlaceRecord, origin place_models.LatLng, desired []string) []ScoringResult {
	places := r.mergeDuplicates(r.validRecords(records))
	desiredIdx := r.desiredIndices(desired)
	allDesired := len(desiredIdx) == 0 || len(desiredIdx) == len(r.scorer.model.amenities)

	ranked := lo.Map(places, func(p place_models.Place, _ int) rankedPlace {
		result := r.scorer.ScorePlace(p)
		dist := HaversineKm(origin, p.Location)
		result.Distance = lo.ToPtr(dist)

		sortDist := dist
		if sortDist < r.walkingThresholdKm {
			sortDist = 0
		}

		var matched int
		for _, idx := range desiredIdx {
			matched += result.Scores[idx]
		}
		return rankedPlace{
			result:    result,
			sortDist:  sortDist,
			total:     result.Total(),
			desireGap: matched - (len(desiredIdx) - matched),
		}
	})

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if !allDesired && a.desireGap != b.desireGap {
			return a.desireGap > b.desireGap
		}
		if a.sortDist != b.sortDist {
			return a.sortDist < b.sortDist
		}
		return a.total > b.total
	})

	if len(ranked) > r.topK {
		ranked = ranked[:r.topK]
	}
	return lo.Map(ranked, func(rp rankedPlace, _ int) ScoringResult { return rp.result })
}

func (r *Ranker) validRecords(records []place_models.PlaceRecord) []place_models.Place {
	places := make([]place_models.Place, 0, len(records))
	for i, rec := range records {
		p, err := rec.Validate()
		if err != nil {
			r.logger.Warn("skipping malformed place record",
				zap.Int("index", i),
				zap.String("place_id", rec.PlaceID),
				zap.Error(err))
			continue
		}
		places = append(places, p)
	}
	return places
}

// mergeDuplicates collapses places sharing a name into the first occurrence,
// appending every duplicate's reviews to it.
func (r *Ranker) mergeDuplicates(places []place_models.Place) []place_models.Place {
	byName := make(map[string]int, len(places))
	merged := make([]place_models.Place, 0, len(places))
	for _, p := range places {
		idx, seen := byName[p.Name]
		if !seen {
			byName[p.Name] = len(merged)
			merged = append(merged, p)
			continue
		}
		merged[idx].Reviews = append(merged[idx].Reviews, p.Reviews...)
		merged[idx].HasReviews = merged[idx].HasReviews || p.HasReviews
		r.logger.Debug("merged duplicate place", zap.String("name", p.Name), zap.String("place_id", p.PlaceID))
	}
	return merged
}

// desiredIndices maps requested amenity names to label indices, dropping
// unknown names and repeats.
func (r *Ranker) desiredIndices(desired []string) []int {
	var out []int
	for _, name := range desired {
		if strings.TrimSpace(name) == "" {
			continue
		}
		idx, ok := r.scorer.model.AmenityIndex(name)
		if !ok {
			r.logger.Debug("ignoring unknown amenity", zap.String("amenity", name))
			continue
		}
		out = append(out, idx)
	}
	return lo.Uniq(out)
}
