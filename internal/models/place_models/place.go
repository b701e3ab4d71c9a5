package place_models

import (
	"fmt"

	"playgroundr/pkg/utils"
)

// LatLng is a WGS 84 coordinate as returned by the Places API.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Geometry struct {
	Location *LatLng `json:"location,omitempty"`
}

// Review is a single user review. Only Text takes part in scoring.
type Review struct {
	AuthorName string  `json:"author_name,omitempty"`
	Rating     float64 `json:"rating,omitempty"`
	Text       string  `json:"text"`
	Time       int64   `json:"time,omitempty"`
}

type Photo struct {
	Height           int      `json:"height"`
	Width            int      `json:"width"`
	PhotoReference   string   `json:"photo_reference"`
	HTMLAttributions []string `json:"html_attributions,omitempty"`
}

// PlaceRecord is the place details payload as it comes off the wire.
// Pointer fields distinguish "absent" from "empty".
type PlaceRecord struct {
	PlaceID          string    `json:"place_id,omitempty"`
	Name             *string   `json:"name,omitempty"`
	FormattedAddress *string   `json:"formatted_address,omitempty"`
	Geometry         *Geometry `json:"geometry,omitempty"`
	Types            *[]string `json:"types,omitempty"`
	Reviews          *[]Review `json:"reviews,omitempty"`
	Photos           []Photo   `json:"photos,omitempty"`
}

// Place is a validated PlaceRecord with the required fields dereferenced.
type Place struct {
	PlaceID          string
	Name             string
	FormattedAddress string
	Location         LatLng
	Types            []string
	Reviews          []Review
	// HasReviews reports whether the upstream record carried a reviews field.
	HasReviews bool
}

// Validate checks the fields scoring depends on and returns the place, or an
// error wrapping utils.ErrMalformedPlace naming the first missing field.
func (r PlaceRecord) Validate() (Place, error) {
	switch {
	case r.Name == nil:
		return Place{}, fmt.Errorf("%w: missing name", utils.ErrMalformedPlace)
	case r.FormattedAddress == nil:
		return Place{}, fmt.Errorf("%w: %q missing formatted_address", utils.ErrMalformedPlace, *r.Name)
	case r.Types == nil:
		return Place{}, fmt.Errorf("%w: %q missing types", utils.ErrMalformedPlace, *r.Name)
	case r.Geometry == nil || r.Geometry.Location == nil:
		return Place{}, fmt.Errorf("%w: %q missing geometry.location", utils.ErrMalformedPlace, *r.Name)
	}

	p := Place{
		PlaceID:          r.PlaceID,
		Name:             *r.Name,
		FormattedAddress: *r.FormattedAddress,
		Location:         *r.Geometry.Location,
		Types:            *r.Types,
	}
	if r.Reviews != nil {
		p.HasReviews = true
		p.Reviews = append([]Review(nil), (*r.Reviews)...)
	}
	return p, nil
}

