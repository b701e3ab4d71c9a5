package scoring

import (
	"testing"

	"github.com/stretchr/testify/require"

	"playgroundr/internal/models/place_models"
)

var testAmenities = []string{"Playground", "Splash pad", "Pool", "Ice rink", "Restroom", "Sports field", "Dog park"}

// testModelJSON scores each amenity from a single indicative word (two for
// the playground).
const testModelJSON = `{
  "amenities": ["Playground", "Splash pad", "Pool", "Ice rink", "Restroom", "Sports field", "Dog park"],
  "vectorizer": {
    "kind": "count",
    "vocabulary": {"swing": 0, "slide": 1, "splash": 2, "pool": 3, "skate": 4, "washroom": 5, "soccer": 6, "dog": 7}
  },
  "classifier": {
    "kind": "linear",
    "linear": [
      {"weights": [1, 1, 0, 0, 0, 0, 0, 0], "bias": -0.5},
      {"weights": [0, 0, 1, 0, 0, 0, 0, 0], "bias": -0.5},
      {"weights": [0, 0, 0, 1, 0, 0, 0, 0], "bias": -0.5},
      {"weights": [0, 0, 0, 0, 1, 0, 0, 0], "bias": -0.5},
      {"weights": [0, 0, 0, 0, 0, 1, 0, 0], "bias": -0.5},
      {"weights": [0, 0, 0, 0, 0, 0, 1, 0], "bias": -0.5},
      {"weights": [0, 0, 0, 0, 0, 0, 0, 1], "bias": -0.5}
    ]
  }
}`

func newTestModel(t *testing.T) *Model {
	t.Helper()
	m, err := ParseModel([]byte(testModelJSON))
	require.NoError(t, err)
	return m
}

func newTestScorer(t *testing.T) *Scorer {
	t.Helper()
	return NewScorer(newTestModel(t), DefaultMinReviews)
}

func reviews(texts ...string) []place_models.Review {
	out := make([]place_models.Review, len(texts))
	for i, text := range texts {
		out[i] = place_models.Review{AuthorName: "tester", Rating: 4, Text: text}
	}
	return out
}

func testPlace(name string, types []string, texts ...string) place_models.Place {
	p := place_models.Place{
		PlaceID:          "id-" + name,
		Name:             name,
		FormattedAddress: "1 Test Ave, Toronto",
		Location:         place_models.LatLng{Lat: 43.65, Lng: -79.38},
		Types:            types,
	}
	if texts != nil {
		p.HasReviews = true
		p.Reviews = reviews(texts...)
	}
	return p
}

func testRecord(name string, lat, lng float64, types []string, texts ...string) place_models.PlaceRecord {
	address := "1 Test Ave, Toronto"
	rec := place_models.PlaceRecord{
		PlaceID:          "id-" + name,
		Name:             &name,
		FormattedAddress: &address,
		Geometry:         &place_models.Geometry{Location: &place_models.LatLng{Lat: lat, Lng: lng}},
		Types:            &types,
	}
	if texts != nil {
		rs := reviews(texts...)
		rec.Reviews = &rs
	}
	return rec
}

// spyClassifier records how often it was asked to predict.
type spyClassifier struct {
	labels    int
	dimension int
	calls     int
}

func (s *spyClassifier) Predict(_ []float64) []int {
	s.calls++
	out := make([]int, s.labels)
	for i := range out {
		out[i] = 1
	}
	return out
}

func (s *spyClassifier) Labels() int         { return s.labels }
func (s *spyClassifier) InputDimension() int { return s.dimension }
