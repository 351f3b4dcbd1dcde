// README: Entry point; loads config, wires services, trains or restores models, starts HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Kekoshka/DriveeSmartAssistant/internal/config"
	httptransport "github.com/Kekoshka/DriveeSmartAssistant/internal/http"
	"github.com/Kekoshka/DriveeSmartAssistant/internal/infra"
	"github.com/Kekoshka/DriveeSmartAssistant/internal/modules/model"
	"github.com/Kekoshka/DriveeSmartAssistant/internal/modules/prediction"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The audit store and the cache are both optional; the service
	// runs fine without Postgres and Redis.
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

	var cache *prediction.Cache
	if cfg.Redis.Addr != "" {
		cache = prediction.NewCache(infra.NewRedis(cfg.Redis.Addr))
	}

	svc := prediction.NewService(cfg, model.NewStore(cfg.Models.Dir), runs, cache)

	// Models come up in the background; /health reports models_loaded
	// until the first set is published.
	go func() {
		if err := svc.EnsureModels(ctx); err != nil {
			log.Printf("model startup failed: %v", err)
		}
	}()

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: httptransport.NewRouter(svc, runs)}

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
