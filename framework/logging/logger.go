// Package logging builds the application's zap logger from configuration.
package logging

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jeffturcotte/jest/framework/config"
)

// New constructs a zap logger. Development encoding when the app runs in
// debug mode, production JSON otherwise; the level comes from LOG_LEVEL.
func New(cfg *config.Config) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("logging: invalid level %q: %w", cfg.Log.Level, err)
	}

	var zcfg zap.Config
	if cfg.App.Debug {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = level

	log, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	return log.Named(cfg.App.Name), nil
}
