// README: Full training pipeline; all three models train, persist, and swap in together or not at all.
package prediction

import (
	"context"
	"log"
	"time"

	"github.com/Kekoshka/DriveeSmartAssistant/internal/modules/dataset"
	"github.com/Kekoshka/DriveeSmartAssistant/internal/modules/model"
	"github.com/Kekoshka/DriveeSmartAssistant/internal/modules/training"
)

// Train runs the whole pipeline: read the historical file, build the
// three training sets, fit, persist, and publish. Any failure aborts
// the run and leaves a previously published model set untouched.
func (s *Service) Train(ctx context.Context) error {
	run := &Run{StartedAt: time.Now()}
	err := s.train(ctx, run)
	run.FinishedAt = time.Now()
	if err != nil {
		run.Status = RunFailed
		run.Error = err.Error()
	} else {
		run.Status = RunSucceeded
	}
	s.recordRun(ctx, run)
	return err
}

func (s *Service) train(ctx context.Context, run *Run) error {
	path := s.cfg.Training.DataPath
	log.Printf("training: loading historical data from %s", path)

	parser := dataset.NewParser(s.cfg.Training.DecimalSeparator)
	records, stats, err := parser.ReadFile(path)
	if err != nil {
		return err
	}
	run.RowsParsed = stats.Parsed
	run.RowsSkipped = stats.Skipped
	log.Printf("training: %d rows parsed, %d skipped", stats.Parsed, stats.Skipped)

	sets, err := training.Build(records, training.Options{
		PriceMin: s.cfg.Training.PriceMin,
		PriceMax: s.cfg.Training.PriceMax,
	})
	if err != nil {
		return err
	}
	run.PriceRows = len(sets.Price)
	run.AcceptanceRows = len(sets.Rider)
	done, total := sets.Balance()
	log.Printf("training: price set %d rows, acceptance set %d rows (%d done)", len(sets.Price), total, done)

	price := model.NewPriceModel(s.cfg.Booster)
	if err := price.Train(sets.Price); err != nil {
		return err
	}
	log.Printf("training: price model fitted")

	rider := model.NewAcceptanceModel(s.cfg.Booster)
	if err := rider.Train(sets.Rider); err != nil {
		return err
	}
	log.Printf("training: rider acceptance model fitted")

	driver := model.NewAcceptanceModel(s.cfg.Booster)
	if err := driver.Train(sets.Driver); err != nil {
		return err
	}
	log.Printf("training: driver acceptance model fitted")

	if err := s.saveAll(price, rider, driver); err != nil {
		return err
	}

	s.publish(ctx, &modelSet{price: price, rider: rider, driver: driver})
	log.Printf("training: model set published")
	return nil
}

// LoadModels restores all three artifacts from the store and publishes
// them as one set. A missing or corrupt artifact fails the whole load;
// the caller typically falls back to Train.
func (s *Service) LoadModels(ctx context.Context) error {
	priceArt, err := s.store.Load(artifactPrice)
	if err != nil {
		return err
	}
	riderArt, err := s.store.Load(artifactRider)
	if err != nil {
		return err
	}
	driverArt, err := s.store.Load(artifactDriver)
	if err != nil {
		return err
	}

	price := model.NewPriceModel(s.cfg.Booster)
	price.Restore(priceArt)
	rider := model.NewAcceptanceModel(s.cfg.Booster)
	rider.Restore(riderArt)
	driver := model.NewAcceptanceModel(s.cfg.Booster)
	driver.Restore(driverArt)

	s.publish(ctx, &modelSet{price: price, rider: rider, driver: driver})
	log.Printf("models loaded from %s", s.store.Path(artifactPrice))
	return nil
}

// EnsureModels loads persisted artifacts when present and trains from
// scratch otherwise, mirroring the startup flow of the service.
func (s *Service) EnsureModels(ctx context.Context) error {
	err := s.LoadModels(ctx)
	if err == nil {
		return nil
	}
	log.Printf("model load failed (%v); training from scratch", err)
	return s.Train(ctx)
}

func (s *Service) saveAll(price *model.PriceModel, rider, driver *model.AcceptanceModel) error {
	priceArt, err := price.Artifact()
	if err != nil {
		return err
	}
	riderArt, err := rider.Artifact()
	if err != nil {
		return err
	}
	driverArt, err := driver.Artifact()
	if err != nil {
		return err
	}
	if err := s.store.Save(artifactPrice, priceArt); err != nil {
		return err
	}
	if err := s.store.Save(artifactRider, riderArt); err != nil {
		return err
	}
	return s.store.Save(artifactDriver, driverArt)
}

func (s *Service) publish(ctx context.Context, set *modelSet) {
	s.models.Store(set)
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

func (s *Service) recordRun(ctx context.Context, run *Run) {
	if s.runs == nil {
		return
	}
	// Audit is best effort; a training run never fails on it.
	if err := s.runs.Record(ctx, run); err != nil {
		log.Printf("training run audit failed: %v", err)
	}
}
