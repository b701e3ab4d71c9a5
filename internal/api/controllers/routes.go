package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(r *gin.Engine, parksController *ParksController) {
	r.GET("/", parksController.Index)
	r.GET("/park_amenities", parksController.GetParkAmenities)
	r.GET("/healthz", parksController.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	parksGroup := r.Group("/parks")
	parksGroup.GET("/find", parksController.FindPark)
	parksGroup.GET("/search", parksController.SearchParks)
	parksGroup.POST("/score", parksController.ScorePlace)
	parksGroup.POST("/rank", parksController.RankPlaces)
	parksGroup.GET("/:placeId/similar", parksController.SimilarParks)
	parksGroup.GET("/:placeId/photos", parksController.PlacePhotos)
}
