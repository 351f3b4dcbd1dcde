package model

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kekoshka/DriveeSmartAssistant/internal/config"
	"github.com/Kekoshka/DriveeSmartAssistant/internal/modules/features"
	"github.com/Kekoshka/DriveeSmartAssistant/internal/modules/training"
)

func testBoosterConfig() config.BoosterConfig {
	return config.BoosterConfig{Rounds: 40, LearningRate: 0.2, MaxDepth: 4, MinSamplesLeaf: 2}
}

// syntheticPriceSet builds rides where the bid is a deterministic
// function of distance, so the regression has signal to find.
func syntheticPriceSet(n int) []training.Example {
	rng := rand.New(rand.NewSource(7))
	examples := make([]training.Example, n)
	for i := range examples {
		distance := 1000 + rng.Float64()*9000
		ts := time.Date(2024, 1, 1+rng.Intn(28), rng.Intn(24), 0, 0, 0, time.UTC)
		vec := features.FromRequest(features.Request{
			DistanceMeters:   distance,
			DurationSeconds:  distance / 8,
			DriverRating:     4 + rng.Float64(),
			PickupMeters:     float64(rng.Intn(1000)),
			ExperienceMonths: float64(rng.Intn(60)),
			Timestamp:        ts,
			Platform:         []string{"android", "ios"}[rng.Intn(2)],
			CarName:          []string{"Sedan", "SUV", "Hatchback"}[rng.Intn(3)],
		})
		examples[i] = training.Example{Features: vec, Label: 50 + distance/50}
	}
	return examples
}

// syntheticAcceptanceSet labels rides accepted when the bid stays
// below 1.2x the start price.
func syntheticAcceptanceSet(n int) []training.Example {
	rng := rand.New(rand.NewSource(11))
	examples := make([]training.Example, n)
	for i := range examples {
		start := 100 + rng.Float64()*100
		bid := start * (0.5 + rng.Float64())
		ts := time.Date(2024, 2, 1+rng.Intn(28), rng.Intn(24), 0, 0, 0, time.UTC)
		vec := features.FromRequest(features.Request{
			DistanceMeters:   3000,
			DurationSeconds:  400,
			DriverRating:     4.8,
			PickupMeters:     200,
			ExperienceMonths: 12,
			Timestamp:        ts,
			Platform:         "android",
			CarName:          "Sedan",
			PriceBid:         bid,
			PriceStart:       start,
		})
		label := 0.0
		if bid/start < 1.2 {
			label = 1.0
		}
		examples[i] = training.Example{Features: vec, Label: label}
	}
	return examples
}

func TestPriceModelLearnsDistanceSignal(t *testing.T) {
	m := NewPriceModel(testBoosterConfig())
	require.NoError(t, m.Train(syntheticPriceSet(300)))
	require.True(t, m.IsTrained())

	short := features.FromRequest(features.Request{
		DistanceMeters: 1500, DurationSeconds: 187, DriverRating: 4.5,
		Timestamp: time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
		Platform:  "android", CarName: "Sedan",
	})
	long := features.FromRequest(features.Request{
		DistanceMeters: 9500, DurationSeconds: 1187, DriverRating: 4.5,
		Timestamp: time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
		Platform:  "android", CarName: "Sedan",
	})

	shortPrice, err := m.Predict(short)
	require.NoError(t, err)
	longPrice, err := m.Predict(long)
	require.NoError(t, err)

	assert.Greater(t, longPrice, shortPrice, "longer trips must price higher")
}

func TestPredictBeforeTraining(t *testing.T) {
	_, err := NewPriceModel(testBoosterConfig()).Predict(features.Vector{})
	assert.ErrorIs(t, err, ErrNotTrained)

	_, err = NewAcceptanceModel(testBoosterConfig()).Predict(features.Vector{})
	assert.ErrorIs(t, err, ErrNotTrained)

	_, err = NewPriceModel(testBoosterConfig()).Artifact()
	assert.ErrorIs(t, err, ErrNotTrained)
}

func TestAcceptanceModelSeparatesPriceFramings(t *testing.T) {
	m := NewAcceptanceModel(testBoosterConfig())
	require.NoError(t, m.Train(syntheticAcceptanceSet(400)))

	at := func(bid, start float64) Prediction {
		vec := features.FromRequest(features.Request{
			DistanceMeters: 3000, DurationSeconds: 400, DriverRating: 4.8,
			PickupMeters: 200, ExperienceMonths: 12,
			Timestamp: time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC),
			Platform:  "android", CarName: "Sedan",
			PriceBid: bid, PriceStart: start,
		})
		p, err := m.Predict(vec)
		require.NoError(t, err)
		return p
	}

	cheap := at(110, 150)
	expensive := at(280, 150)

	assert.Greater(t, cheap.Probability, expensive.Probability)
	assert.True(t, cheap.Accepted)
	assert.False(t, expensive.Accepted)
	assert.GreaterOrEqual(t, cheap.Probability, 0.0)
	assert.LessOrEqual(t, cheap.Probability, 1.0)
}

func TestUnseenCategoryPredictsWithoutError(t *testing.T) {
	m := NewPriceModel(testBoosterConfig())
	require.NoError(t, m.Train(syntheticPriceSet(100)))

	vec := features.FromRequest(features.Request{
		DistanceMeters: 4000, DurationSeconds: 500, DriverRating: 4.5,
		Timestamp: time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
		Platform:  "blackberry", CarName: "Zeppelin",
	})
	price, err := m.Predict(vec)
	require.NoError(t, err)
	assert.Greater(t, price, 0.0)
}

func TestStoreRoundTripPredictsIdentically(t *testing.T) {
	m := NewPriceModel(testBoosterConfig())
	require.NoError(t, m.Train(syntheticPriceSet(150)))

	store := NewStore(filepath.Join(t.TempDir(), "nested", "models"))
	art, err := m.Artifact()
	require.NoError(t, err)
	require.NoError(t, store.Save("price", art))

	loaded, err := store.Load("price")
	require.NoError(t, err)

	restored := NewPriceModel(testBoosterConfig())
	restored.Restore(loaded)
	require.True(t, restored.IsTrained())

	vec := features.FromRequest(features.Request{
		DistanceMeters: 4200, DurationSeconds: 525, DriverRating: 4.7,
		PickupMeters: 300, ExperienceMonths: 13,
		Timestamp: time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC),
		Platform:  "android", CarName: "Sedan",
	})

	want, err := m.Predict(vec)
	require.NoError(t, err)
	got, err := restored.Predict(vec)
	require.NoError(t, err)
	assert.InDelta(t, want, got, 1e-5)
}

func TestStoreLoadMissing(t *testing.T) {
	_, err := NewStore(t.TempDir()).Load("price")
	assert.ErrorIs(t, err, ErrModelNotFound)
}

func TestStoreLoadCorrupt(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, os.WriteFile(store.Path("price"), []byte("not a gob stream"), 0o644))

	_, err := store.Load("price")
	assert.ErrorIs(t, err, ErrCorruptModel)
}

func TestRetrainingReplacesArtifact(t *testing.T) {
	m := NewPriceModel(testBoosterConfig())
	require.NoError(t, m.Train(syntheticPriceSet(100)))
	first, err := m.Artifact()
	require.NoError(t, err)

	require.NoError(t, m.Train(syntheticPriceSet(100)))
	second, err := m.Artifact()
	require.NoError(t, err)

	assert.NotSame(t, first, second)
}
