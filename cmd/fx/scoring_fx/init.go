package scoring_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"playgroundr/internal/config"
	"playgroundr/internal/scoring"
)

var Module = fx.Provide(
	provideModel,
	provideScorer,
	provideRanker,
)

// provideModel fails start-up on a bad artifact so no request is ever served
// with a mismatched model.
func provideModel(cfg *config.Config, logger *zap.Logger) (*scoring.Model, error) {
	model, err := scoring.LoadModel(cfg.Model.Path)
	if err != nil {
		return nil, err
	}
	logger.Info("model loaded",
		zap.String("path", cfg.Model.Path),
		zap.Strings("amenities", model.Amenities()),
		zap.Int("features", model.FeatureDimension()))
	return model, nil
}

func provideScorer(model *scoring.Model, cfg config.ScoringConfig) *scoring.Scorer {
	return scoring.NewScorer(model, cfg.MinReviews)
}

func provideRanker(scorer *scoring.Scorer, cfg config.ScoringConfig, logger *zap.Logger) *scoring.Ranker {
	return scoring.NewRanker(scorer, cfg.WalkingThresholdKm, cfg.TopK, logger.Named("ranking"))
}
