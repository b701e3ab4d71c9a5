package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playgroundr/internal/models/place_models"
	"playgroundr/internal/models/request_models"
	"playgroundr/internal/models/response_models"
	"playgroundr/internal/scoring"
	"playgroundr/pkg/middleware"
	"playgroundr/pkg/utils"
)

type stubParkService struct {
	amenitiesQuery request_models.ParkAmenitiesQuery
	findQuery      request_models.FindParkQuery
	searchQuery    request_models.SearchParksQuery
	rankReq        request_models.RankPlacesRequest
	scoreBody      []byte
	similarLimit   int
	err            error
}

func (s *stubParkService) Bootstrap() response_models.MapBootstrap {
	return response_models.MapBootstrap{
		Origin:    place_models.LatLng{Lat: 43.65, Lng: -79.38},
		Zoom:      12,
		Amenities: []string{"Playground", "Pool"},
	}
}

func (s *stubParkService) GetParkAmenities(_ context.Context, q request_models.ParkAmenitiesQuery) (response_models.ParkAmenities, error) {
	s.amenitiesQuery = q
	return response_models.ParkAmenities{Place: scoring.ScoringResult{Name: "Elm Park", State: scoring.StateScored}}, s.err
}

func (s *stubParkService) FindPark(_ context.Context, q request_models.FindParkQuery) (response_models.ParkAmenities, error) {
	s.findQuery = q
	return response_models.ParkAmenities{Place: scoring.ScoringResult{Name: "Elm Park", State: scoring.StateScored}}, s.err
}

func (s *stubParkService) SearchParks(_ context.Context, q request_models.SearchParksQuery) (response_models.RankedParks, error) {
	s.searchQuery = q
	return response_models.RankedParks{Results: []scoring.ScoringResult{{Name: "Elm Park"}}}, s.err
}

func (s *stubParkService) ScorePlace(_ context.Context, raw []byte) (scoring.ScoringResult, error) {
	s.scoreBody = raw
	return scoring.ScoringResult{Name: "Elm Park"}, s.err
}

func (s *stubParkService) RankPlaces(_ context.Context, req request_models.RankPlacesRequest) (response_models.RankedParks, error) {
	s.rankReq = req
	return response_models.RankedParks{}, s.err
}

func (s *stubParkService) SimilarParks(_ context.Context, _ string, limit int) ([]response_models.SimilarPark, error) {
	s.similarLimit = limit
	return []response_models.SimilarPark{}, s.err
}

func (s *stubParkService) PlacePhotos(_ context.Context, _ string, _ int) ([]response_models.PlacePhoto, error) {
	return []response_models.PlacePhoto{{URL: "https://photos.example.com/a"}}, s.err
}

func newTestRouter(svc *stubParkService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	RegisterRoutes(r, NewParksController(svc))
	return r
}

func do(r *gin.Engine, method, target, body string) (*httptest.ResponseRecorder, utils.APIResponse) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp utils.APIResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestParksController_Index(t *testing.T) {
	r := newTestRouter(&stubParkService{})

	w, resp := do(r, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", resp.Status)
	assert.NotEmpty(t, resp.TraceID)
	assert.Equal(t, float64(12), resp.Data.(map[string]any)["zoom"])
}

func TestParksController_GetParkAmenities(t *testing.T) {
	svc := &stubParkService{}
	r := newTestRouter(svc)

	w, _ := do(r, http.MethodGet, "/park_amenities?placeid=p1&inlat=43.7&inlon=-79.4&zoom=12.5", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "p1", svc.amenitiesQuery.PlaceID)
	require.NotNil(t, svc.amenitiesQuery.InLat)
	assert.Equal(t, 43.7, *svc.amenitiesQuery.InLat)
	assert.Equal(t, 12.5, svc.amenitiesQuery.Zoom)

	w, resp := do(r, http.MethodGet, "/park_amenities", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", resp.Status)

	w, _ = do(r, http.MethodGet, "/park_amenities?placeid=p1&inlat=north", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParksController_FindPark(t *testing.T) {
	svc := &stubParkService{}
	r := newTestRouter(svc)

	w, resp := do(r, http.MethodGet, "/parks/find?query=elm+park&lat=43.7&lng=-79.4", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "elm park", svc.findQuery.Query)
	require.NotNil(t, svc.findQuery.Lat)
	assert.Equal(t, 43.7, *svc.findQuery.Lat)
	require.NotNil(t, svc.findQuery.Lng)
	assert.Equal(t, -79.4, *svc.findQuery.Lng)

	w, _ = do(r, http.MethodGet, "/parks/find", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.err = utils.ErrPlaceNotFound
	w, _ = do(r, http.MethodGet, "/parks/find?query=nowhere", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestParksController_ErrorMapping(t *testing.T) {
	svc := &stubParkService{err: utils.ErrPlaceNotFound}
	r := newTestRouter(svc)

	w, resp := do(r, http.MethodGet, "/park_amenities?placeid=nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Place not found", resp.Message)

	svc.err = utils.ErrUpstream
	w, _ = do(r, http.MethodGet, "/parks/search?query=parks", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)

	svc.err = utils.ErrMalformedPlace
	w, _ = do(r, http.MethodPost, "/parks/score", `{"name": "x"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestParksController_SearchParks(t *testing.T) {
	svc := &stubParkService{}
	r := newTestRouter(svc)

	w, _ := do(r, http.MethodGet, "/parks/search?type=park&lat=43.6&lng=-79.3&amenities=Pool,%20Dog%20park&amenities=Playground", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "park", svc.searchQuery.Type)
	assert.Equal(t, []string{"Pool", "Dog park", "Playground"}, svc.searchQuery.Amenities)
	require.NotNil(t, svc.searchQuery.Lng)
	assert.Equal(t, -79.3, *svc.searchQuery.Lng)
}

func TestParksController_ScoreAndRank(t *testing.T) {
	svc := &stubParkService{}
	r := newTestRouter(svc)

	body := `{"name": "Elm Park", "formatted_address": "1 Elm", "types": ["park"], "geometry": {"location": {"lat": 1, "lng": 2}}}`
	w, _ := do(r, http.MethodPost, "/parks/score", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, body, string(svc.scoreBody))

	w, _ = do(r, http.MethodPost, "/parks/rank", `{"places": [{"name": "Elm Park"}], "amenities": ["Pool,Playground"], "origin": {"lat": 43.6, "lng": -79.3}}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, svc.rankReq.Places, 1)
	assert.Equal(t, []string{"Pool", "Playground"}, svc.rankReq.Amenities)
	assert.Equal(t, 43.6, svc.rankReq.Origin.Lat)

	w, _ = do(r, http.MethodPost, "/parks/rank", `{"amenities": []}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParksController_SimilarAndPhotos(t *testing.T) {
	svc := &stubParkService{}
	r := newTestRouter(svc)

	w, _ := do(r, http.MethodGet, "/parks/p1/similar?limit=3", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, svc.similarLimit)

	w, _ = do(r, http.MethodGet, "/parks/p1/similar?limit=0", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp := do(r, http.MethodGet, "/parks/p1/photos", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp.Data.([]any), 1)
}

func TestParksController_HealthAndMetrics(t *testing.T) {
	r := newTestRouter(&stubParkService{})

	w, resp := do(r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", resp.Message)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
