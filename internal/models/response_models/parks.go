package response_models

import (
	"playgroundr/internal/models/place_models"
	"playgroundr/internal/scoring"
)

type MapBootstrap struct {
	Origin    place_models.LatLng `json:"origin"`
	Zoom      float64             `json:"zoom"`
	Amenities []string            `json:"amenities"`
}

type ParkAmenities struct {
	Place  scoring.ScoringResult `json:"place"`
	Origin place_models.LatLng   `json:"origin"`
	Zoom   float64               `json:"zoom"`
}

type RankedParks struct {
	Origin  place_models.LatLng     `json:"origin"`
	Results []scoring.ScoringResult `json:"results"`
}

type SimilarPark struct {
	PlaceID    string              `json:"place_id"`
	Name       string              `json:"name"`
	Address    string              `json:"address"`
	Location   place_models.LatLng `json:"location"`
	Amenities  []string            `json:"amenities"`
	Scores     []int64             `json:"scores"`
	State      string              `json:"state"`
	Similarity float64             `json:"similarity"`
}

type PlacePhoto struct {
	Reference    string   `json:"reference"`
	Width        int      `json:"width"`
	Height       int      `json:"height"`
	URL          string   `json:"url"`
	Attributions []string `json:"attributions,omitempty"`
}
