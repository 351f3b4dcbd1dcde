// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kekoshka/DriveeSmartAssistant/internal/http/handlers"
	"github.com/Kekoshka/DriveeSmartAssistant/internal/http/middleware"
	"github.com/Kekoshka/DriveeSmartAssistant/internal/modules/prediction"
)

func NewRouter(svc *prediction.Service, runs *prediction.RunStore) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	predictionHandler := handlers.NewPredictionHandler(svc)
	api := r.Group("/api/v1")
	api.POST("/recommend-price", predictionHandler.RecommendPrice)
	api.POST("/acceptance-probability", predictionHandler.AcceptanceProbability)
	api.POST("/rider-acceptance", predictionHandler.RiderAcceptance)
	api.POST("/optimal-price", predictionHandler.OptimalPrice)

	adminHandler := handlers.NewAdminHandler(svc, runs)
	api.POST("/train", adminHandler.Train)
	api.GET("/training-runs/latest", adminHandler.LatestRun)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":        "ok",
			"models_loaded": svc.ModelsLoaded(),
		})
	})

	return r
}
