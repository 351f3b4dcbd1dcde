// README: Admin handlers for retraining and training-run inspection.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Kekoshka/DriveeSmartAssistant/internal/modules/prediction"
)

type AdminHandler struct {
	svc  *prediction.Service
	runs *prediction.RunStore // optional; nil means no audit persistence
}

func NewAdminHandler(svc *prediction.Service, runs *prediction.RunStore) *AdminHandler {
	return &AdminHandler{svc: svc, runs: runs}
}

// Train retrains all models from the configured historical file and
// swaps them in on success. The call is synchronous; large exports can
// take a while.
func (h *AdminHandler) Train(c *gin.Context) {
	if err := h.svc.Train(c.Request.Context()); err != nil {
		writePredictionError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"status":    "trained",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *AdminHandler) LatestRun(c *gin.Context) {
	if h.runs == nil {
		writeError(c, http.StatusNotFound, "training run audit is not configured")
		return
	}
	run, err := h.runs.Latest(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	if run == nil {
		writeError(c, http.StatusNotFound, "no training runs recorded")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"id":              run.ID,
		"started_at":      run.StartedAt.UTC().Format(time.RFC3339),
		"finished_at":     run.FinishedAt.UTC().Format(time.RFC3339),
		"rows_parsed":     run.RowsParsed,
		"rows_skipped":    run.RowsSkipped,
		"price_rows":      run.PriceRows,
		"acceptance_rows": run.AcceptanceRows,
		"status":          run.Status,
		"error":           run.Error,
	})
}
