// README: Builds the three labeled training sets from parsed ride records.
package training

import (
	"errors"

	"github.com/Kekoshka/DriveeSmartAssistant/internal/modules/dataset"
	"github.com/Kekoshka/DriveeSmartAssistant/internal/modules/features"
)

var ErrEmptyTrainingSet = errors.New("empty training set")

type Example struct {
	Features features.Vector
	Label    float64
}

// Sets holds the per-model training tables. Price is the filtered
// regression set; Rider and Driver are the acceptance sets over the
// full population. Rider and Driver share the completion label — the
// export has no independent acceptance signal — and differ only in
// how serving frames the price features.
type Sets struct {
	Price  []Example
	Rider  []Example
	Driver []Example
}

type Options struct {
	// Price filter bounds, inclusive on both ends.
	PriceMin float64
	PriceMax float64
}

func (o Options) withDefaults() Options {
	if o.PriceMin <= 0 {
		o.PriceMin = 50
	}
	if o.PriceMax <= 0 {
		o.PriceMax = 2000
	}
	return o
}

// Build assembles the three sets. Records are read only, never
// mutated. An empty price set or an empty acceptance set aborts
// training with ErrEmptyTrainingSet.
func Build(records []*dataset.Record, opts Options) (*Sets, error) {
	opts = opts.withDefaults()

	sets := &Sets{}
	for _, rec := range records {
		vec := features.FromRecord(rec)

		label := 0.0
		if rec.IsDone {
			label = 1.0
		}
		sets.Rider = append(sets.Rider, Example{Features: vec, Label: label})
		sets.Driver = append(sets.Driver, Example{Features: vec, Label: label})

		if priceRowValid(rec, opts) {
			sets.Price = append(sets.Price, Example{Features: vec, Label: rec.PriceBid})
		}
	}

	if len(sets.Price) == 0 || len(sets.Rider) == 0 {
		return nil, ErrEmptyTrainingSet
	}
	return sets, nil
}

func priceRowValid(rec *dataset.Record, opts Options) bool {
	return rec.IsDone &&
		rec.PriceBid >= opts.PriceMin &&
		rec.PriceBid <= opts.PriceMax &&
		rec.DistanceMeters > 0 &&
		rec.DurationSeconds > 0
}

// Balance reports the completed share of the acceptance population,
// logged after every training run.
func (s *Sets) Balance() (done, total int) {
	for _, ex := range s.Rider {
		if ex.Label == 1 {
			done++
		}
	}
	return done, len(s.Rider)
}
