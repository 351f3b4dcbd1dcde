// README: Acceptance classifier; one instance per framing (rider, driver), same label source.
package model

import (
	"github.com/Kekoshka/DriveeSmartAssistant/internal/boost"
	"github.com/Kekoshka/DriveeSmartAssistant/internal/config"
	"github.com/Kekoshka/DriveeSmartAssistant/internal/modules/features"
	"github.com/Kekoshka/DriveeSmartAssistant/internal/modules/training"
)

type Prediction struct {
	Accepted    bool
	Probability float64
}

type AcceptanceModel struct {
	cfg config.BoosterConfig
	art *Artifact
}

func NewAcceptanceModel(cfg config.BoosterConfig) *AcceptanceModel {
	return &AcceptanceModel{cfg: cfg}
}

func (m *AcceptanceModel) Train(examples []training.Example) error {
	art, err := fit(KindAcceptance, boost.Config{
		Objective:      boost.Logistic,
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

func (m *AcceptanceModel) Predict(v features.Vector) (Prediction, error) {
	if m.art == nil {
		return Prediction{}, ErrNotTrained
	}
	p := m.art.Booster.Predict(m.art.encode(v))
	return Prediction{Accepted: p >= 0.5, Probability: p}, nil
}

func (m *AcceptanceModel) IsTrained() bool {
	return m.art != nil
}

func (m *AcceptanceModel) Artifact() (*Artifact, error) {
	if m.art == nil {
		return nil, ErrNotTrained
	}
	return m.art, nil
}

func (m *AcceptanceModel) Restore(art *Artifact) {
	m.art = art
}
