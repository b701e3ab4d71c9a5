package places

import "playgroundr/internal/models/place_models"

const (
	StatusOK          = "OK"
	StatusZeroResults = "ZERO_RESULTS"
)

// DetailFields are the place detail fields scoring needs.
const DetailFields = "geometry,review,formatted_address,name,place_id,type"

// SearchResult is one hit from findplacefromtext, nearbysearch or textsearch.
type SearchResult struct {
	PlaceID          string                 `json:"place_id"`
	Name             string                 `json:"name,omitempty"`
	FormattedAddress string                 `json:"formatted_address,omitempty"`
	Vicinity         string                 `json:"vicinity,omitempty"`
	Geometry         *place_models.Geometry `json:"geometry,omitempty"`
	Types            []string               `json:"types,omitempty"`
}

type apiStatus struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
}

func (s apiStatus) statusInfo() (string, string) { return s.Status, s.ErrorMessage }

type findPlaceResponse struct {
	apiStatus
	Candidates []SearchResult `json:"candidates"`
}

type searchResponse struct {
	apiStatus
	Results       []SearchResult `json:"results"`
	NextPageToken string         `json:"next_page_token,omitempty"`
}

type detailsResponse struct {
	apiStatus
	Result place_models.PlaceRecord `json:"result"`
}
