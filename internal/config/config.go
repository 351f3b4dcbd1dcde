// README: Config loader with env defaults for HTTP, training data, model storage, and booster settings.
package config

import (
	"os"
	"strconv"
)

type BoosterConfig struct {
	Rounds         int
	LearningRate   float64
	MaxDepth       int
	MinSamplesLeaf int
}

type TrainingConfig struct {
	DataPath string
	// Price-model filter bounds. The lower bound is fixed by the data
	// contract (inclusive 50); the upper bound is deployment-specific.
	PriceMin float64
	PriceMax float64
	// DecimalSeparator is the decimal mark used in the driver rating
	// column of the historical export (comma in the source locale).
	DecimalSeparator rune
}

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		DSN string
	}
	Redis struct {
		Addr string
	}
	Models struct {
		Dir             string
		FallbackEnabled bool
	}
	Training TrainingConfig
	Booster  BoosterConfig
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("DSA_HTTP_ADDR", ":8080")
	cfg.DB.DSN = os.Getenv("DSA_DB_DSN")
	cfg.Redis.Addr = os.Getenv("DSA_REDIS_ADDR")
	cfg.Models.Dir = envOrDefault("DSA_MODEL_DIR", "models")
	cfg.Models.FallbackEnabled = envOrDefaultBool("DSA_FALLBACK_ENABLED", false)
	cfg.Training.DataPath = envOrDefault("DSA_DATA_PATH", "data/rides.csv")
	cfg.Training.PriceMin = 50
	cfg.Training.PriceMax = envOrDefaultFloat("DSA_PRICE_MAX", 2000)
	cfg.Training.DecimalSeparator = ','
	cfg.Booster.Rounds = envOrDefaultInt("DSA_BOOST_ROUNDS", 100)
	cfg.Booster.LearningRate = envOrDefaultFloat("DSA_BOOST_LEARNING_RATE", 0.1)
	cfg.Booster.MaxDepth = envOrDefaultInt("DSA_BOOST_MAX_DEPTH", 5)
	cfg.Booster.MinSamplesLeaf = envOrDefaultInt("DSA_BOOST_MIN_LEAF", 10)
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
