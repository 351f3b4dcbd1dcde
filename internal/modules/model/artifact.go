// README: Trained artifact: booster plus the encoding state it was trained with.
package model

import (
	"github.com/Kekoshka/DriveeSmartAssistant/internal/boost"
	"github.com/Kekoshka/DriveeSmartAssistant/internal/modules/features"
)

type Kind string

const (
	KindPrice      Kind = "price"
	KindAcceptance Kind = "acceptance"
)

// Artifact is everything a model needs to reproduce training-time
// feature computation at inference: the booster, the normalization
// bounds, and the categorical vocabularies. It is immutable once
// built and serializes with gob.
type Artifact struct {
	Kind      Kind
	Booster   *boost.Ensemble
	Norm      *MinMax
	Platforms Vocabulary
	Cars      Vocabulary
}

// encode turns a feature vector into the booster's input row:
// normalized numeric block followed by the one-hot blocks.
func (a *Artifact) encode(v features.Vector) []float64 {
	numeric := a.Norm.Transform(numericBlock(a.Kind, v))
	row := make([]float64, 0, len(numeric)+a.Platforms.Size()+a.Cars.Size())
	row = append(row, numeric...)
	row = a.Platforms.AppendOneHot(row, v.Platform)
	row = a.Cars.AppendOneHot(row, v.CarName)
	return row
}

// numericBlock selects the per-model numeric features. The price model
// sees trip and time context only — it predicts a price, so price
// fields stay out. Acceptance models additionally see the price
// framing block.
func numericBlock(kind Kind, v features.Vector) []float64 {
	if kind == KindPrice {
		return []float64{
			v.DistanceMeters,
			v.DurationSeconds,
			v.DriverRating,
			v.PickupMeters,
			v.ExperienceMonths,
			v.HourOfDay,
			v.DayOfWeek,
			v.Month,
			v.IsWeekend,
		}
	}
	return []float64{
		v.DistanceMeters,
		v.DurationSeconds,
		v.DriverRating,
		v.PickupMeters,
		v.ExperienceMonths,
		v.HourOfDay,
		v.DayOfWeek,
		v.IsWeekend,
		v.IsPeakHour,
		v.PriceBid,
		v.PriceStart,
		v.PriceRatio,
		v.PriceDifference,
	}
}
