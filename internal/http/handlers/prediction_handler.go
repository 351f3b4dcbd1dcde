// README: Prediction handlers for price recommendation and acceptance scoring.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Kekoshka/DriveeSmartAssistant/internal/modules/prediction"
)

type PredictionHandler struct {
	svc *prediction.Service
}

func NewPredictionHandler(svc *prediction.Service) *PredictionHandler {
	return &PredictionHandler{svc: svc}
}

type rideReq struct {
	DistanceMeters   float64 `json:"distance_in_meters"`
	DurationSeconds  float64 `json:"duration_in_seconds"`
	DriverRating     float64 `json:"driver_rating"`
	PickupMeters     float64 `json:"pickup_in_meters"`
	ExperienceMonths float64 `json:"experience_months"`
	Timestamp        string  `json:"timestamp"`
	Platform         string  `json:"platform"`
	CarName          string  `json:"car_name"`
}

type acceptanceReq struct {
	rideReq
	RiderMaxPrice float64 `json:"rider_max_price"`
	DriverPrice   float64 `json:"driver_price"`
}

type optimalPriceReq struct {
	rideReq
	MinPrice float64 `json:"min_price"`
	MaxPrice float64 `json:"max_price"`
	Step     float64 `json:"step"`
}

// toPriceRequest validates the shared ride fields. An absent timestamp
// means "score the ride as of now".
func (r rideReq) toPriceRequest() (prediction.PriceRequest, string) {
	if r.DistanceMeters <= 0 {
		return prediction.PriceRequest{}, "distance_in_meters must be positive"
	}
	if r.DurationSeconds <= 0 {
		return prediction.PriceRequest{}, "duration_in_seconds must be positive"
	}

	ts := time.Now()
	if r.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339, r.Timestamp)
		if err != nil {
			return prediction.PriceRequest{}, "timestamp must be RFC3339"
		}
		ts = parsed
	}

	return prediction.PriceRequest{
		DistanceMeters:   r.DistanceMeters,
		DurationSeconds:  r.DurationSeconds,
		DriverRating:     r.DriverRating,
		PickupMeters:     r.PickupMeters,
		ExperienceMonths: r.ExperienceMonths,
		Timestamp:        ts,
		Platform:         r.Platform,
		CarName:          r.CarName,
	}, ""
}

func (h *PredictionHandler) RecommendPrice(c *gin.Context) {
	var req rideReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	pr, msg := req.toPriceRequest()
	if msg != "" {
		writeError(c, http.StatusBadRequest, msg)
		return
	}

	price, err := h.svc.RecommendPrice(c.Request.Context(), pr)
	if err != nil {
		writePredictionError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"price":     price,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *PredictionHandler) AcceptanceProbability(c *gin.Context) {
	var req acceptanceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	pr, msg := req.toPriceRequest()
	if msg != "" {
		writeError(c, http.StatusBadRequest, msg)
		return
	}
	if req.RiderMaxPrice <= 0 || req.DriverPrice <= 0 {
		writeError(c, http.StatusBadRequest, "rider_max_price and driver_price must be positive")
		return
	}

	got, err := h.svc.AcceptanceProbabilities(c.Request.Context(), prediction.AcceptanceRequest{
		PriceRequest:  pr,
		RiderMaxPrice: req.RiderMaxPrice,
		DriverPrice:   req.DriverPrice,
	})
	if err != nil {
		writePredictionError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"rider_probability":  got.RiderProbability,
		"driver_probability": got.DriverProbability,
		"source":             got.Source,
		"timestamp":          time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *PredictionHandler) RiderAcceptance(c *gin.Context) {
	var req acceptanceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	pr, msg := req.toPriceRequest()
	if msg != "" {
		writeError(c, http.StatusBadRequest, msg)
		return
	}
	if req.DriverPrice <= 0 {
		writeError(c, http.StatusBadRequest, "driver_price must be positive")
		return
	}

	p, err := h.svc.CalibratedRiderAcceptance(c.Request.Context(), prediction.AcceptanceRequest{
		PriceRequest:  pr,
		RiderMaxPrice: req.RiderMaxPrice,
		DriverPrice:   req.DriverPrice,
	})
	if err != nil {
		writePredictionError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"probability": p,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *PredictionHandler) OptimalPrice(c *gin.Context) {
	var req optimalPriceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	pr, msg := req.toPriceRequest()
	if msg != "" {
		writeError(c, http.StatusBadRequest, msg)
		return
	}

	got, err := h.svc.OptimalPrice(c.Request.Context(), prediction.OptimalPriceRequest{
		PriceRequest: pr,
		MinPrice:     req.MinPrice,
		MaxPrice:     req.MaxPrice,
		Step:         req.Step,
	})
	if err != nil {
		writePredictionError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"price":              got.Price,
		"rider_probability":  got.RiderProbability,
		"expected_revenue":   got.ExpectedRevenue,
		"recommended_anchor": got.RecommendedAnchor,
		"timestamp":          time.Now().UTC().Format(time.RFC3339),
	})
}
