package controllers

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"playgroundr/internal/models/request_models"
	"playgroundr/internal/services"
	"playgroundr/pkg/utils"
)

type ParksController struct {
	parkService services.ParkServiceInterface
}

func NewParksController(parkService services.ParkServiceInterface) *ParksController {
	return &ParksController{
		parkService: parkService,
	}
}

func (p *ParksController) Index(c *gin.Context) {
	utils.RespondSuccess(c, p.parkService.Bootstrap(), "Map defaults fetched successfully")
}

func (p *ParksController) GetParkAmenities(c *gin.Context) {
	var query request_models.ParkAmenitiesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "placeid is required and inlat, inlon, zoom must be numbers")
		return
	}

	result, err := p.parkService.GetParkAmenities(c.Request.Context(), query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Park amenities fetched successfully")
}

func (p *ParksController) FindPark(c *gin.Context) {
	var query request_models.FindParkQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "query is required and lat, lng must be numbers")
		return
	}

	result, err := p.parkService.FindPark(c.Request.Context(), query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Park fetched successfully")
}

func (p *ParksController) SearchParks(c *gin.Context) {
	var query request_models.SearchParksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "lat and lng must be numbers")
		return
	}
	query.Amenities = splitList(query.Amenities)

	result, err := p.parkService.SearchParks(c.Request.Context(), query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Parks fetched successfully")
}

func (p *ParksController) ScorePlace(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Unable to read request body")
		return
	}

	result, err := p.parkService.ScorePlace(c.Request.Context(), body)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Place scored successfully")
}

func (p *ParksController) RankPlaces(c *gin.Context) {
	var req request_models.RankPlacesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	req.Amenities = splitList(req.Amenities)

	result, err := p.parkService.RankPlaces(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Places ranked successfully")
}

func (p *ParksController) SimilarParks(c *gin.Context) {
	placeID := c.Param("placeId")
	limit, ok := parseLimit(c)
	if !ok {
		return
	}

	result, err := p.parkService.SimilarParks(c.Request.Context(), placeID, limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Similar parks fetched successfully")
}

func (p *ParksController) PlacePhotos(c *gin.Context) {
	placeID := c.Param("placeId")
	limit, ok := parseLimit(c)
	if !ok {
		return
	}

	result, err := p.parkService.PlacePhotos(c.Request.Context(), placeID, limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Photos fetched successfully")
}

func (p *ParksController) Healthz(c *gin.Context) {
	utils.RespondSuccess(c, gin.H{"amenities": len(p.parkService.Bootstrap().Amenities)}, "ok")
}

func parseLimit(c *gin.Context) (int, bool) {
	limitStr := c.DefaultQuery("limit", "5")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 || limit > 50 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid limit (must be 1-50)")
		return 0, false
	}
	return limit, true
}

// splitList accepts both repeated and comma separated values.
func splitList(values []string) []string {
	parts := lo.FlatMap(values, func(v string, _ int) []string {
		return strings.Split(v, ",")
	})
	return lo.Compact(lo.Map(parts, func(s string, _ int) string {
		return strings.TrimSpace(s)
	}))
}
