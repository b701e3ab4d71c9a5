package place_models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playgroundr/pkg/utils"
)

func TestValidate_CompleteRecord(t *testing.T) {
	raw := `{
		"place_id": "abc",
		"name": "Trinity Bellwoods Park",
		"formatted_address": "790 Queen St W, Toronto",
		"geometry": {"location": {"lat": 43.647, "lng": -79.413}},
		"types": ["park", "point_of_interest"],
		"reviews": [{"author_name": "a", "rating": 5, "text": "Great swings"}]
	}`
	var rec PlaceRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))

	p, err := rec.Validate()
	require.NoError(t, err)
	assert.Equal(t, "abc", p.PlaceID)
	assert.Equal(t, "Trinity Bellwoods Park", p.Name)
	assert.Equal(t, LatLng{Lat: 43.647, Lng: -79.413}, p.Location)
	assert.True(t, p.HasReviews)
	require.Len(t, p.Reviews, 1)
	assert.Equal(t, "Great swings", p.Reviews[0].Text)
}

func TestValidate_ReviewsAbsentVersusEmpty(t *testing.T) {
	base := `"name": "X", "formatted_address": "Y", "types": [], "geometry": {"location": {"lat": 1, "lng": 2}}`

	var absent PlaceRecord
	require.NoError(t, json.Unmarshal([]byte(`{`+base+`}`), &absent))
	p, err := absent.Validate()
	require.NoError(t, err)
	assert.False(t, p.HasReviews)

	var empty PlaceRecord
	require.NoError(t, json.Unmarshal([]byte(`{`+base+`, "reviews": []}`), &empty))
	p, err = empty.Validate()
	require.NoError(t, err)
	assert.True(t, p.HasReviews)
	assert.Empty(t, p.Reviews)
}

func TestValidate_MissingFields(t *testing.T) {
	name := "X"
	addr := "Y"
	types := []string{"park"}
	geo := &Geometry{Location: &LatLng{Lat: 1, Lng: 2}}

	cases := map[string]PlaceRecord{
		"name":     {FormattedAddress: &addr, Types: &types, Geometry: geo},
		"address":  {Name: &name, Types: &types, Geometry: geo},
		"types":    {Name: &name, FormattedAddress: &addr, Geometry: geo},
		"geometry": {Name: &name, FormattedAddress: &addr, Types: &types},
		"location": {Name: &name, FormattedAddress: &addr, Types: &types, Geometry: &Geometry{}},
	}
	for field, rec := range cases {
		t.Run(field, func(t *testing.T) {
			_, err := rec.Validate()
			assert.ErrorIs(t, err, utils.ErrMalformedPlace)
		})
	}
}

func TestValidate_CopiesReviews(t *testing.T) {
	name, addr := "X", "Y"
	types := []string{}
	reviews := []Review{{Text: "one"}}
	rec := PlaceRecord{Name: &name, FormattedAddress: &addr, Types: &types,
		Geometry: &Geometry{Location: &LatLng{}}, Reviews: &reviews}

	p, err := rec.Validate()
	require.NoError(t, err)
	reviews[0].Text = "changed"
	assert.Equal(t, "one", p.Reviews[0].Text)
}
