// README: Prediction service; owns the loaded model set behind an atomic pointer and serves all scoring operations.
package prediction

import (
	"context"
	"errors"
	"log"
	"math"
	"sync/atomic"
	"time"

	"github.com/Kekoshka/DriveeSmartAssistant/internal/config"
	"github.com/Kekoshka/DriveeSmartAssistant/internal/modules/features"
	"github.com/Kekoshka/DriveeSmartAssistant/internal/modules/model"
)

var ErrModelsNotLoaded = errors.New("models not loaded")

const (
	artifactPrice  = "price"
	artifactRider  = "rider_acceptance"
	artifactDriver = "driver_acceptance"
)

// modelSet is the unit of publication: all three models swap in
// together or not at all.
type modelSet struct {
	price  *model.PriceModel
	rider  *model.AcceptanceModel
	driver *model.AcceptanceModel
}

type Service struct {
	cfg    config.Config
	store  *model.Store
	runs   *RunStore // optional; nil skips audit persistence
	cache  *Cache    // optional; nil skips caching
	models atomic.Pointer[modelSet]
}

func NewService(cfg config.Config, store *model.Store, runs *RunStore, cache *Cache) *Service {
	return &Service{cfg: cfg, store: store, runs: runs, cache: cache}
}

type PriceRequest struct {
	DistanceMeters   float64
	DurationSeconds  float64
	DriverRating     float64
	PickupMeters     float64
	ExperienceMonths float64
	Timestamp        time.Time
	Platform         string
	CarName          string
}

type AcceptanceRequest struct {
	PriceRequest
	RiderMaxPrice float64
	DriverPrice   float64
}

// Acceptance carries both framings plus the source marker so a
// heuristic answer can never masquerade as a model prediction.
type Acceptance struct {
	RiderProbability  float64
	DriverProbability float64
	Source            string
}

const (
	SourceModel     = "model"
	SourceHeuristic = "heuristic"
)

func (s *Service) ModelsLoaded() bool {
	return s.models.Load() != nil
}

// RecommendPrice predicts a price for the trip. Fails with
// ErrModelsNotLoaded until a model set has been installed.
func (s *Service) RecommendPrice(ctx context.Context, req PriceRequest) (float64, error) {
	set := s.models.Load()
	if set == nil {
		return 0, ErrModelsNotLoaded
	}

	if s.cache != nil {
		if price, ok := s.cache.GetPrice(ctx, req); ok {
			return price, nil
		}
	}

	price, err := set.price.Predict(features.FromRequest(s.priceFraming(req, 0, 0)))
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		s.cache.SetPrice(ctx, req, price)
	}
	log.Printf("price recommendation: %.2f for distance %.0fm", price, req.DistanceMeters)
	return price, nil
}

// AcceptanceProbabilities scores both sides of the tender. The two
// models share a label source but see the price block from opposite
// roles: the rider judges the driver's bid against their own stated
// maximum, the driver judges the rider's price against their own
// stated minimum.
func (s *Service) AcceptanceProbabilities(ctx context.Context, req AcceptanceRequest) (Acceptance, error) {
	set := s.models.Load()
	if set == nil {
		if s.cfg.Models.FallbackEnabled {
			return Acceptance{
				RiderProbability:  heuristicAcceptance(req.DriverPrice, req.RiderMaxPrice),
				DriverProbability: heuristicAcceptance(req.RiderMaxPrice, req.DriverPrice),
				Source:            SourceHeuristic,
			}, nil
		}
		return Acceptance{}, ErrModelsNotLoaded
	}

	riderVec := features.FromRequest(s.priceFraming(req.PriceRequest, req.DriverPrice, req.RiderMaxPrice))
	driverVec := features.FromRequest(s.priceFraming(req.PriceRequest, req.RiderMaxPrice, req.DriverPrice))

	rider, err := set.rider.Predict(riderVec)
	if err != nil {
		return Acceptance{}, err
	}
	driver, err := set.driver.Predict(driverVec)
	if err != nil {
		return Acceptance{}, err
	}

	log.Printf("acceptance: rider=%.3f driver=%.3f (bid=%.2f, max=%.2f)",
		rider.Probability, driver.Probability, req.DriverPrice, req.RiderMaxPrice)
	return Acceptance{
		RiderProbability:  rider.Probability,
		DriverProbability: driver.Probability,
		Source:            SourceModel,
	}, nil
}

// CalibratedRiderAcceptance rescales the rider probability at the
// asked price by the probabilities at the recommended price and at a
// deep overprice probe (8x), approximating the full acceptance range.
func (s *Service) CalibratedRiderAcceptance(ctx context.Context, req AcceptanceRequest) (float64, error) {
	set := s.models.Load()
	if set == nil {
		return 0, ErrModelsNotLoaded
	}

	recommended, err := s.RecommendPrice(ctx, req.PriceRequest)
	if err != nil {
		return 0, err
	}

	at := func(bid float64) (float64, error) {
		p, err := set.rider.Predict(features.FromRequest(s.priceFraming(req.PriceRequest, bid, recommended)))
		return p.Probability, err
	}

	base, err := at(req.DriverPrice)
	if err != nil {
		return 0, err
	}
	upper, err := at(recommended)
	if err != nil {
		return 0, err
	}
	lower, err := at(recommended * 8)
	if err != nil {
		return 0, err
	}

	span := upper - lower
	if span < 1e-9 {
		return clamp01(base), nil
	}
	return clamp01(base / span), nil
}

type OptimalPriceRequest struct {
	PriceRequest
	MinPrice float64
	MaxPrice float64
	Step     float64
}

type OptimalPrice struct {
	Price             float64
	RiderProbability  float64
	ExpectedRevenue   float64
	RecommendedAnchor float64
}

// OptimalPrice scans the candidate range and returns the price
// maximizing expected revenue (price times the rider's acceptance
// probability), anchoring the rider's expectation at the model's
// recommended price.
func (s *Service) OptimalPrice(ctx context.Context, req OptimalPriceRequest) (OptimalPrice, error) {
	set := s.models.Load()
	if set == nil {
		return OptimalPrice{}, ErrModelsNotLoaded
	}

	if req.MinPrice <= 0 {
		req.MinPrice = 50
	}
	if req.MaxPrice <= req.MinPrice {
		req.MaxPrice = 1000
	}
	if req.Step <= 0 {
		req.Step = 10
	}

	recommended, err := s.RecommendPrice(ctx, req.PriceRequest)
	if err != nil {
		return OptimalPrice{}, err
	}

	best := OptimalPrice{RecommendedAnchor: recommended, ExpectedRevenue: math.Inf(-1)}
	for price := req.MinPrice; price <= req.MaxPrice; price += req.Step {
		p, err := set.rider.Predict(features.FromRequest(s.priceFraming(req.PriceRequest, price, recommended)))
		if err != nil {
			return OptimalPrice{}, err
		}
		revenue := price * p.Probability
		if revenue > best.ExpectedRevenue {
			best.Price = price
			best.RiderProbability = p.Probability
			best.ExpectedRevenue = revenue
		}
	}
	return best, nil
}

// priceFraming maps a request into the deriver's input with the given
// price role assignment.
func (s *Service) priceFraming(req PriceRequest, bid, start float64) features.Request {
	return features.Request{
		DistanceMeters:   req.DistanceMeters,
		DurationSeconds:  req.DurationSeconds,
		DriverRating:     req.DriverRating,
		PickupMeters:     req.PickupMeters,
		ExperienceMonths: req.ExperienceMonths,
		Timestamp:        req.Timestamp,
		Platform:         req.Platform,
		CarName:          req.CarName,
		PriceBid:         bid,
		PriceStart:       start,
	}
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}
