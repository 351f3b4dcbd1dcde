// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kekoshka/DriveeSmartAssistant/internal/modules/model"
	"github.com/Kekoshka/DriveeSmartAssistant/internal/modules/prediction"
	"github.com/Kekoshka/DriveeSmartAssistant/internal/modules/training"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writePredictionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, prediction.ErrModelsNotLoaded):
		writeError(c, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, model.ErrModelNotFound), errors.Is(err, model.ErrCorruptModel),
		errors.Is(err, training.ErrEmptyTrainingSet):
		writeError(c, http.StatusInternalServerError, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
