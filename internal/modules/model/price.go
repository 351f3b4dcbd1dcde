// README: Price regression model; trains on completed rides, predicts a recommended bid.
package model

import (
	"github.com/Kekoshka/DriveeSmartAssistant/internal/boost"
	"github.com/Kekoshka/DriveeSmartAssistant/internal/config"
	"github.com/Kekoshka/DriveeSmartAssistant/internal/modules/features"
	"github.com/Kekoshka/DriveeSmartAssistant/internal/modules/training"
)

type PriceModel struct {
	cfg config.BoosterConfig
	art *Artifact
}

func NewPriceModel(cfg config.BoosterConfig) *PriceModel {
	return &PriceModel{cfg: cfg}
}

// Train fits a fresh artifact from the filtered price set, replacing
// any previous one wholesale.
func (m *PriceModel) Train(examples []training.Example) error {
	art, err := fit(KindPrice, boost.Config{
		Objective:      boost.Regression,
		Rounds:         m.cfg.Rounds,
		LearningRate:   m.cfg.LearningRate,
		MaxDepth:       m.cfg.MaxDepth,
		MinSamplesLeaf: m.cfg.MinSamplesLeaf,
	}, examples)
	if err != nil {
		return err
	}
	m.art = art
	return nil
}

func (m *PriceModel) Predict(v features.Vector) (float64, error) {
	if m.art == nil {
		return 0, ErrNotTrained
	}
	return m.art.Booster.Predict(m.art.encode(v)), nil
}

func (m *PriceModel) IsTrained() bool {
	return m.art != nil
}

// Artifact exposes the trained state for persistence.
func (m *PriceModel) Artifact() (*Artifact, error) {
	if m.art == nil {
		return nil, ErrNotTrained
	}
	return m.art, nil
}

// Restore installs a loaded artifact, discarding any prior state.
func (m *PriceModel) Restore(art *Artifact) {
	m.art = art
}

// fit is the shared training path for both model kinds: capture
// vocabularies and normalization bounds from the examples, encode,
// and hand the matrix to the booster.
func fit(kind Kind, cfg boost.Config, examples []training.Example) (*Artifact, error) {
	platforms := make([]string, len(examples))
	cars := make([]string, len(examples))
	numeric := make([][]float64, len(examples))
	labels := make([]float64, len(examples))
	for i, ex := range examples {
		platforms[i] = ex.Features.Platform
		cars[i] = ex.Features.CarName
		numeric[i] = numericBlock(kind, ex.Features)
		labels[i] = ex.Label
	}

	art := &Artifact{
		Kind:      kind,
		Norm:      FitMinMax(numeric),
		Platforms: BuildVocabulary(platforms),
		Cars:      BuildVocabulary(cars),
	}

	rows := make([][]float64, len(examples))
	for i, ex := range examples {
		rows[i] = art.encode(ex.Features)
	}

	booster, err := boost.Train(cfg, rows, labels)
	if err != nil {
		return nil, err
	}
	art.Booster = booster
	return art, nil
}
