// README: Single derivation path for model features; training and serving both go through here.
package features

import (
	"math"
	"time"

	"github.com/Kekoshka/DriveeSmartAssistant/internal/modules/dataset"
)

// Vector is the model-ready representation of one ride. Numeric fields
// are float64 so they can feed the booster directly; Platform and
// CarName stay categorical until encoding.
type Vector struct {
	DistanceMeters   float64
	DurationSeconds  float64
	DriverRating     float64
	PickupMeters     float64
	ExperienceMonths float64
	HourOfDay        float64
	DayOfWeek        float64
	Month            float64
	IsWeekend        float64
	IsPeakHour       float64
	PriceBid         float64
	PriceStart       float64
	PriceRatio       float64
	PriceDifference  float64
	Platform         string
	CarName          string
	// TimeOfDay is the informational bucket (Morning/Afternoon/
	// Evening/Night); no model consumes it.
	TimeOfDay string
}

// Request is the live-serving input shape. Experience arrives
// pre-computed in months because the caller knows the driver profile,
// not the registration date.
type Request struct {
	DistanceMeters   float64
	DurationSeconds  float64
	DriverRating     float64
	PickupMeters     float64
	ExperienceMonths float64
	Timestamp        time.Time
	Platform         string
	CarName          string
	PriceBid         float64
	PriceStart       float64
}

// FromRecord derives features from a parsed historical row.
func FromRecord(rec *dataset.Record) Vector {
	exp := ExperienceMonths(rec.OrderTimestamp, rec.DriverRegDate)
	return derive(rec.OrderTimestamp, exp, rec.DistanceMeters, rec.DurationSeconds, rec.DriverRating, rec.PickupMeters, rec.PriceBid, rec.PriceStart, rec.Platform, rec.CarName)
}

// FromRequest derives features from a live request using the exact
// same formulas as FromRecord.
func FromRequest(req Request) Vector {
	return derive(req.Timestamp, math.Max(req.ExperienceMonths, 0), req.DistanceMeters, req.DurationSeconds, req.DriverRating, req.PickupMeters, req.PriceBid, req.PriceStart, req.Platform, req.CarName)
}

func derive(ts time.Time, expMonths, distance, duration, rating, pickup, priceBid, priceStart float64, platform, carName string) Vector {
	return Vector{
		DistanceMeters:   distance,
		DurationSeconds:  duration,
		DriverRating:     rating,
		PickupMeters:     pickup,
		ExperienceMonths: expMonths,
		HourOfDay:        float64(ts.Hour()),
		DayOfWeek:        float64(ts.Weekday()),
		Month:            float64(ts.Month()),
		IsWeekend:        boolFeature(IsWeekend(ts)),
		IsPeakHour:       boolFeature(IsPeakHour(ts.Hour())),
		PriceBid:         priceBid,
		PriceStart:       priceStart,
		PriceRatio:       PriceRatio(priceBid, priceStart),
		PriceDifference:  priceBid - priceStart,
		Platform:         platform,
		CarName:          carName,
		TimeOfDay:        TimeOfDay(ts.Hour()),
	}
}

// ExperienceMonths is the driver tenure at order time, rounded to
// 30-day months and clamped to zero for missing or future
// registration dates.
func ExperienceMonths(orderTS, regDate time.Time) float64 {
	if regDate.IsZero() {
		return 0
	}
	days := orderTS.Sub(regDate).Hours() / 24
	months := math.Round(days / 30)
	if months < 0 {
		return 0
	}
	return months
}

// PriceRatio defaults to 1.0 when the start price is zero so the
// feature stays neutral instead of exploding.
func PriceRatio(bid, start float64) float64 {
	if start > 0 {
		return bid / start
	}
	return 1.0
}

func IsWeekend(ts time.Time) bool {
	wd := ts.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsPeakHour covers the morning [7,10) and evening [17,20) demand
// windows.
func IsPeakHour(hour int) bool {
	return (hour >= 7 && hour < 10) || (hour >= 17 && hour < 20)
}

func TimeOfDay(hour int) string {
	switch {
	case hour >= 6 && hour < 12:
		return "Morning"
	case hour >= 12 && hour < 18:
		return "Afternoon"
	case hour >= 18 && hour < 24:
		return "Evening"
	default:
		return "Night"
	}
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
