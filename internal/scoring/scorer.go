package scoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"playgroundr/internal/models/place_models"
	"playgroundr/pkg/utils"
)

// DefaultMinReviews is the number of non-empty normalized reviews a place
// needs before the classifier is consulted.
const DefaultMinReviews = 4

type ScoringState string

const (
	StateScored              ScoringState = "SCORED"
	StateNotAPark            ScoringState = "NOT_A_PARK"
	StateNoReviews           ScoringState = "NO_REVIEWS"
	StateInsufficientReviews ScoringState = "INSUFFICIENT_REVIEWS"
)

const (
	StatusNotAPark  = "This site is not a park"
	StatusNoReviews = "No reviews available for this site"
)

func insufficientReviewsStatus(min int) string {
	return fmt.Sprintf("Insufficient (<%d) reviews for this site.", min)
}

// ScoringResult is the per-place output of the pipeline. Scores and Amenities
// are parallel and always follow the model's amenity order.
type ScoringResult struct {
	PlaceID   string              `json:"place_id,omitempty"`
	Name      string              `json:"name"`
	Text      string              `json:"text"`
	Address   string              `json:"address"`
	Scores    []int               `json:"scores"`
	Amenities []string            `json:"amenities"`
	Location  place_models.LatLng `json:"location"`
	Distance  *float64            `json:"distance,omitempty"`
	State     ScoringState        `json:"state"`
}

// Total is the number of amenities scored 1.
func (r ScoringResult) Total() int {
	var total int
	for _, s := range r.Scores {
		total += s
	}
	return total
}

type Scorer struct {
	model      *Model
	minReviews int
}

func NewScorer(model *Model, minReviews int) *Scorer {
	if minReviews <= 0 {
		minReviews = DefaultMinReviews
	}
	return &Scorer{model: model, minReviews: minReviews}
}

func (s *Scorer) Model() *Model { return s.model }

func (s *Scorer) MinReviews() int { return s.minReviews }

// ScorePlace runs a validated place through the scoring states. The
// classifier only runs for park-like places with enough reviews, and only
// then do amenity names found in the place name score 1. Every other state
// leaves all scores at zero.
func (s *Scorer) ScorePlace(p place_models.Place) ScoringResult {
	result := ScoringResult{
		PlaceID:   p.PlaceID,
		Name:      p.Name,
		Address:   p.FormattedAddress,
		Location:  p.Location,
		Amenities: s.model.Amenities(),
		Scores:    make([]int, len(s.model.amenities)),
	}

	parkLike := s.model.IsParkLike(p.Name, p.Types)
	docs := s.normalizedReviews(p)

	switch {
	case !p.HasReviews || len(p.Reviews) == 0:
		result.State = StateNoReviews
		result.Text = StatusNoReviews
	case len(docs) < s.minReviews:
		result.State = StateInsufficientReviews
		result.Text = insufficientReviewsStatus(s.minReviews)
	case !parkLike:
		result.State = StateNotAPark
		result.Text = StatusNotAPark
	default:
		features := s.model.vectorizer.Vectorize(strings.Join(docs, " "))
		result.Scores = s.model.classifier.Predict(features)
		result.State = StateScored
		for _, idx := range s.model.NameMatches(p.Name) {
			result.Scores[idx] = 1
		}
	}
	return result
}

// ScoreRecord parses, validates and scores one raw place JSON record. The
// validated place is returned with its result.
func (s *Scorer) ScoreRecord(raw []byte) (place_models.Place, ScoringResult, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return place_models.Place{}, ScoringResult{}, fmt.Errorf("%w: empty record", utils.ErrMalformedPlace)
	}
	var rec place_models.PlaceRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return place_models.Place{}, ScoringResult{}, fmt.Errorf("%w: %v", utils.ErrMalformedPlace, err)
	}
	p, err := rec.Validate()
	if err != nil {
		return place_models.Place{}, ScoringResult{}, err
	}
	return p, s.ScorePlace(p), nil
}

// DocumentVector returns the feature vector the classifier would see for the
// place. ok is false when the place has too few usable reviews.
func (s *Scorer) DocumentVector(p place_models.Place) ([]float64, bool) {
	docs := s.normalizedReviews(p)
	if len(docs) < s.minReviews {
		return nil, false
	}
	return s.model.vectorizer.Vectorize(strings.Join(docs, " ")), true
}

func (s *Scorer) normalizedReviews(p place_models.Place) []string {
	docs := make([]string, 0, len(p.Reviews))
	for _, r := range p.Reviews {
		if doc := s.model.normalizer.Normalize(r.Text); doc != "" {
			docs = append(docs, doc)
		}
	}
	return docs
}
