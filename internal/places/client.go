package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"playgroundr/internal/config"
	"playgroundr/internal/metrics"
	"playgroundr/internal/models/place_models"
	"playgroundr/pkg/utils"
)

const (
	endpointFindPlace    = "findplacefromtext"
	endpointNearbySearch = "nearbysearch"
	endpointTextSearch   = "textsearch"
	endpointDetails      = "details"
	endpointPhoto        = "photo"

	DefaultPhotoMaxWidth = 400
)

// Client is a thin Google Places web service client. Calls are not retried.
type Client struct {
	baseURL     string
	apiKey      string
	radius      int
	language    string
	httpClient  *http.Client
	photoClient *http.Client
	logger      *zap.Logger
}

func NewClient(cfg config.PlacesConfig, logger *zap.Logger) *Client {
	timeout := config.GetDuration(cfg.RequestTimeout)
	photoClient := &http.Client{
		Timeout: timeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		radius:      cfg.SearchRadius,
		language:    cfg.Language,
		httpClient:  &http.Client{Timeout: timeout},
		photoClient: photoClient,
		logger:      logger.Named("places"),
	}
}

// Radius returns the default search radius in metres.
func (c *Client) Radius() int { return c.radius }

// FindPlace resolves a free-text query to candidate places, biased to a
// circle around loc when one is given.
func (c *Client) FindPlace(ctx context.Context, query string, loc *place_models.LatLng, radius int) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("input", query)
	params.Set("inputtype", "textquery")
	params.Set("fields", "place_id,name,formatted_address,geometry,types")
	if loc != nil {
		params.Set("locationbias", fmt.Sprintf("circle:%d@%s", c.radiusOrDefault(radius), formatLatLng(*loc)))
	}

	var resp findPlaceResponse
	if err := c.getJSON(ctx, endpointFindPlace, params, &resp); err != nil {
		return nil, err
	}
	return resp.Candidates, nil
}

func (c *Client) NearbySearch(ctx context.Context, placeType string, loc place_models.LatLng, radius int) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("location", formatLatLng(loc))
	params.Set("radius", strconv.Itoa(c.radiusOrDefault(radius)))
	params.Set("type", placeType)

	var resp searchResponse
	if err := c.getJSON(ctx, endpointNearbySearch, params, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

func (c *Client) TextSearch(ctx context.Context, query string, loc place_models.LatLng, radius int) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("location", formatLatLng(loc))
	params.Set("radius", strconv.Itoa(c.radiusOrDefault(radius)))

	var resp searchResponse
	if err := c.getJSON(ctx, endpointTextSearch, params, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// PlaceReviews fetches the details record used for scoring.
func (c *Client) PlaceReviews(ctx context.Context, placeID string) (*place_models.PlaceRecord, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", DetailFields)
	params.Set("language", c.language)

	var resp detailsResponse
	if err := c.getJSON(ctx, endpointDetails, params, &resp); err != nil {
		return nil, err
	}
	if resp.Status == StatusZeroResults {
		return nil, fmt.Errorf("%w: %s", utils.ErrPlaceNotFound, placeID)
	}
	if resp.Result.PlaceID == "" {
		resp.Result.PlaceID = placeID
	}
	return &resp.Result, nil
}

func (c *Client) PlacePhotos(ctx context.Context, placeID string) ([]place_models.Photo, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", "photo")

	var resp detailsResponse
	if err := c.getJSON(ctx, endpointDetails, params, &resp); err != nil {
		return nil, err
	}
	return resp.Result.Photos, nil
}

// PhotoURL resolves a photo reference to the image URL the photo endpoint
// redirects to.
func (c *Client) PhotoURL(ctx context.Context, photoReference string, maxWidth int) (string, error) {
	if maxWidth <= 0 {
		maxWidth = DefaultPhotoMaxWidth
	}
	params := url.Values{}
	params.Set("maxwidth", strconv.Itoa(maxWidth))
	params.Set("photo_reference", photoReference)

	resp, err := c.do(ctx, c.photoClient, endpointPhoto, params)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	location := resp.Header.Get("Location")
	if resp.StatusCode < 300 || resp.StatusCode >= 400 || location == "" {
		metrics.PlacesRequests.WithLabelValues(endpointPhoto, strconv.Itoa(resp.StatusCode)).Inc()
		return "", fmt.Errorf("%w: photo returned HTTP %d without redirect", utils.ErrUpstream, resp.StatusCode)
	}
	metrics.PlacesRequests.WithLabelValues(endpointPhoto, StatusOK).Inc()
	return location, nil
}

// RetrieveReviews returns the details of the first place matching query.
func (c *Client) RetrieveReviews(ctx context.Context, query string, loc *place_models.LatLng) (*place_models.PlaceRecord, error) {
	candidates, err := c.FindPlace(ctx, query, loc, c.radius)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %q", utils.ErrPlaceNotFound, query)
	}
	return c.PlaceReviews(ctx, candidates[0].PlaceID)
}

// RetrieveReviewsMulti returns the details of every search hit. A non-empty
// placeType selects a nearby search, otherwise a text search on query. Hits
// whose details cannot be fetched are logged and skipped; only a failed
// search or a cancelled context is an error.
func (c *Client) RetrieveReviewsMulti(ctx context.Context, query, placeType string, loc place_models.LatLng) ([]place_models.PlaceRecord, error) {
	var (
		results []SearchResult
		err     error
	)
	if placeType != "" {
		results, err = c.NearbySearch(ctx, placeType, loc, c.radius)
	} else {
		results, err = c.TextSearch(ctx, query, loc, c.radius)
	}
	if err != nil {
		return nil, err
	}

	records := make([]place_models.PlaceRecord, 0, len(results))
	for _, r := range results {
		rec, err := c.PlaceReviews(ctx, r.PlaceID)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, fmt.Errorf("details for %s: %w", r.PlaceID, ctxErr)
			}
			c.logger.Warn("skipping search hit",
				zap.String("place_id", r.PlaceID),
				zap.Error(err))
			metrics.PlacesRecordsSkipped.WithLabelValues(endpointDetails).Inc()
			continue
		}
		records = append(records, *rec)
	}
	return records, nil
}

type statusCarrier interface {
	statusInfo() (string, string)
}

func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out statusCarrier) error {
	resp, err := c.do(ctx, c.httpClient, endpoint+"/json", params)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		metrics.PlacesRequests.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()
		return fmt.Errorf("%w: %s returned HTTP %d: %s", utils.ErrUpstream, endpoint, resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.PlacesRequests.WithLabelValues(endpoint, "DECODE_ERROR").Inc()
		return fmt.Errorf("%w: decode %s response: %v", utils.ErrUpstream, endpoint, err)
	}

	status, message := out.statusInfo()
	metrics.PlacesRequests.WithLabelValues(endpoint, status).Inc()
	if status != StatusOK && status != StatusZeroResults {
		c.logger.Warn("places api error",
			zap.String("endpoint", endpoint),
			zap.String("status", status),
			zap.String("error_message", message))
		return fmt.Errorf("%w: %s: %s %s", utils.ErrUpstream, endpoint, status, message)
	}
	return nil
}

// do issues a GET with the API key appended. Only the key-free query is
// ever logged.
func (c *Client) do(ctx context.Context, hc *http.Client, path string, params url.Values) (*http.Response, error) {
	endpoint := strings.TrimSuffix(path, "/json")
	c.logger.Debug("places request", zap.String("endpoint", endpoint), zap.String("query", params.Encode()))

	withKey := url.Values{}
	for k, v := range params {
		withKey[k] = v
	}
	withKey.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+path+"?"+withKey.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", endpoint, err)
	}

	start := time.Now()
	resp, err := hc.Do(req)
	metrics.PlacesRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.PlacesRequests.WithLabelValues(endpoint, "TRANSPORT_ERROR").Inc()
		return nil, fmt.Errorf("%w: %s request failed: %v", utils.ErrUpstream, endpoint, redactKey(err.Error(), c.apiKey))
	}
	return resp, nil
}

func (c *Client) radiusOrDefault(radius int) int {
	if radius > 0 {
		return radius
	}
	return c.radius
}

func formatLatLng(loc place_models.LatLng) string {
	return strconv.FormatFloat(loc.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(loc.Lng, 'f', -1, 64)
}

// redactKey strips the API key from error text, which for url.Error includes
// the full request URL.
func redactKey(s, key string) string {
	if key == "" {
		return s
	}
	return strings.ReplaceAll(s, url.QueryEscape(key), "REDACTED")
}
