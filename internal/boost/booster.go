// Package boost implements a small gradient boosted tree learner. It
// covers the two objectives the assistant needs, squared-error
// regression and binary logistic classification, using second-order
// boosting with Newton leaf weights. The resulting ensemble is a plain
// exported struct graph so it serializes with encoding/gob.
package boost

import (
	"math"

	"github.com/xh3b4sd/tracer"
)

type Objective string

const (
	// Regression minimizes squared error; Predict returns the raw score.
	Regression Objective = "reg:squarederror"
	// Logistic minimizes log loss; Predict returns a probability in [0,1].
	Logistic Objective = "binary:logistic"
)

type Config struct {
	Objective      Objective
	Rounds         int
	LearningRate   float64
	MaxDepth       int
	MinSamplesLeaf int
	// Lambda is the L2 penalty on leaf weights.
	Lambda float64
	// MaxBins caps the number of split candidates evaluated per feature.
	MaxBins int
}

func (c Config) withDefaults() Config {
	if c.Objective == "" {
		c.Objective = Regression
	}
	if c.Rounds <= 0 {
		c.Rounds = 100
	}
	if c.LearningRate <= 0 {
		c.LearningRate = 0.1
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = 5
	}
	if c.MinSamplesLeaf <= 0 {
		c.MinSamplesLeaf = 1
	}
	if c.Lambda <= 0 {
		c.Lambda = 1.0
	}
	if c.MaxBins <= 0 {
		c.MaxBins = 32
	}
	return c
}

// Ensemble is a trained booster. All fields are exported for gob.
type Ensemble struct {
	Objective Objective
	Base      float64
	Shrinkage float64
	Features  int
	Trees     []Tree
}

// Train fits an ensemble on dense feature rows. Labels are the
// regression target, or 0/1 for the logistic objective.
func Train(cfg Config, features [][]float64, labels []float64) (*Ensemble, error) {
	cfg = cfg.withDefaults()

	if len(features) == 0 || len(features[0]) == 0 {
		return nil, tracer.Mask(emptyTrainingDataError)
	}
	if len(features) != len(labels) {
		return nil, tracer.Mask(inconsistentShapeError)
	}
	width := len(features[0])
	for _, row := range features {
		if len(row) != width {
			return nil, tracer.Mask(inconsistentShapeError)
		}
	}
	if cfg.Objective != Regression && cfg.Objective != Logistic {
		return nil, tracer.Mask(invalidObjectiveError)
	}

	ens := &Ensemble{
		Objective: cfg.Objective,
		Base:      baseScore(cfg.Objective, labels),
		Shrinkage: cfg.LearningRate,
		Features:  width,
	}

	raw := make([]float64, len(labels))
	for i := range raw {
		raw[i] = ens.Base
	}

	grad := make([]float64, len(labels))
	hess := make([]float64, len(labels))

	for round := 0; round < cfg.Rounds; round++ {
		switch cfg.Objective {
		case Regression:
			for i := range labels {
				grad[i] = raw[i] - labels[i]
				hess[i] = 1
			}
		case Logistic:
			for i := range labels {
				p := sigmoid(raw[i])
				grad[i] = p - labels[i]
				hess[i] = math.Max(p*(1-p), 1e-16)
			}
		}

		tree := growTree(cfg, features, grad, hess)
		ens.Trees = append(ens.Trees, tree)
		for i, row := range features {
			raw[i] += cfg.LearningRate * tree.Score(row)
		}
	}

	return ens, nil
}

// Predict scores one feature row. For the logistic objective the raw
// score is squashed to a probability.
func (e *Ensemble) Predict(row []float64) float64 {
	s := e.Base
	for i := range e.Trees {
		s += e.Shrinkage * e.Trees[i].Score(row)
	}
	if e.Objective == Logistic {
		return sigmoid(s)
	}
	return s
}

func baseScore(obj Objective, labels []float64) float64 {
	sum := 0.0
	for _, y := range labels {
		sum += y
	}
	mean := sum / float64(len(labels))
	if obj == Logistic {
		// Clamp away from 0/1 so the logit stays finite on pure sets.
		p := math.Min(math.Max(mean, 1e-6), 1-1e-6)
		return math.Log(p / (1 - p))
	}
	return mean
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
