package request_models

import "playgroundr/internal/models/place_models"

// ParkAmenitiesQuery is the query string of GET /park_amenities. The origin
// and zoom are echoed back so the map can be redrawn where the user left it.
type ParkAmenitiesQuery struct {
	PlaceID string   `form:"placeid" binding:"required"`
	InLat   *float64 `form:"inlat"`
	InLon   *float64 `form:"inlon"`
	Zoom    float64  `form:"zoom"`
}

// FindParkQuery is the query string of GET /parks/find. Lat and Lng bias the
// lookup towards a location when both are given.
type FindParkQuery struct {
	Query string   `form:"query" binding:"required"`
	Lat   *float64 `form:"lat"`
	Lng   *float64 `form:"lng"`
}

// SearchParksQuery is the query string of GET /parks/search. Either Query or
// Type must be set; Amenities may repeat or be comma separated.
type SearchParksQuery struct {
	Query     string   `form:"query"`
	Type      string   `form:"type"`
	Lat       *float64 `form:"lat"`
	Lng       *float64 `form:"lng"`
	Amenities []string `form:"amenities"`
}

type RankPlacesRequest struct {
	Places    []place_models.PlaceRecord `json:"places" binding:"required"`
	Origin    *place_models.LatLng       `json:"origin"`
	Amenities []string                   `json:"amenities"`
}
