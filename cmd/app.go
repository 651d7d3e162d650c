package cmd

import (
	"go.uber.org/zap"

	"homeprice/config"
	"homeprice/logger"
	"homeprice/ml"
)

// app is what every subcommand needs before doing work: config, a
// logger and the loaded estimator. Failing to build it is fatal.
type app struct {
	config    *config.Config
	logger    *zap.Logger
	estimator *ml.Estimator
}

func loadApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	estimator, err := ml.LoadArtifacts(ml.ArtifactPaths{
		Columns:   cfg.Artifacts.ColumnsPath,
		Model:     cfg.Artifacts.ModelPath,
		ModelType: cfg.Artifacts.ModelType,
	})
	if err != nil {
		log.Error("failed to load artifacts", zap.Error(err))
		log.Sync()
		return nil, err
	}
	log.Info("artifacts loaded",
		zap.String("columns", cfg.Artifacts.ColumnsPath),
		zap.String("model", cfg.Artifacts.ModelPath),
		zap.Int("features", estimator.Schema().Len()),
		zap.Int("locations", len(estimator.Locations())))

	return &app{config: cfg, logger: log, estimator: estimator}, nil
}
