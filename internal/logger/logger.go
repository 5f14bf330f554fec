package logger

import (
	"go.uber.org/zap"

	"kickoff-hq/internal/config"
)

func New(cfg config.Config) (*zap.Logger, error) {
	if cfg.Log.Env == "production" {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}
