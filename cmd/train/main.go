// README: Offline training CLI; trains all models from a historical export and writes artifacts.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Kekoshka/DriveeSmartAssistant/internal/config"
	"github.com/Kekoshka/DriveeSmartAssistant/internal/infra"
	"github.com/Kekoshka/DriveeSmartAssistant/internal/modules/model"
	"github.com/Kekoshka/DriveeSmartAssistant/internal/modules/prediction"
)

func main() {
	dataPath := flag.String("data", "", "historical export to train from (overrides DSA_DATA_PATH)")
	modelDir := flag.String("models", "", "artifact output directory (overrides DSA_MODEL_DIR)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if *dataPath != "" {
		cfg.Training.DataPath = *dataPath
	}
	if *modelDir != "" {
		cfg.Models.Dir = *modelDir
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var runs *prediction.RunStore
	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatal(err)
		}
		runs = prediction.NewRunStore(dbPool)
		if err := runs.EnsureSchema(ctx); err != nil {
			log.Fatalf("audit schema: %v", err)
		}
	}

	svc := prediction.NewService(cfg, model.NewStore(cfg.Models.Dir), runs, nil)
	if err := svc.Train(ctx); err != nil {
		log.Fatalf("training failed: %v", err)
	}
	log.Printf("artifacts written to %s", cfg.Models.Dir)
}
