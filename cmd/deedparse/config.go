// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/deedparse/internal/extract"
	"github.com/pdiddy/deedparse/internal/history"
	"github.com/pdiddy/deedparse/internal/logging"
	"github.com/pdiddy/deedparse/pkg/types"
)

// setDefaults registers every configuration key with its default so that
// environment variables and config files can override any of them.
func setDefaults(v *viper.Viper) {
	d := types.Defaults()
	v.SetDefault("engine.max_input_runes", d.Engine.MaxInputRunes)
	v.SetDefault("engine.match_timeout", d.Engine.MatchTimeout)
	v.SetDefault("engine.low_confidence", d.Engine.LowConfidence)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.record_history", d.Server.RecordHistory)
	v.SetDefault("history.path", d.History.Path)
	v.SetDefault("history.limit", d.History.Limit)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// loadConfig reads the effective configuration from v.
func loadConfig(v *viper.Viper) (types.Config, error) {
	cfg := types.Config{
		Engine: types.EngineConfig{
			MaxInputRunes: v.GetInt("engine.max_input_runes"),
			MatchTimeout:  v.GetDuration("engine.match_timeout"),
			LowConfidence: v.GetFloat64("engine.low_confidence"),
		},
		Server: types.ServerConfig{
			Addr:          v.GetString("server.addr"),
			RecordHistory: v.GetBool("server.record_history"),
		},
		History: types.HistoryConfig{
			Path:  v.GetString("history.path"),
			Limit: v.GetInt("history.limit"),
		},
		Log: types.LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	if cfg.Engine.MaxInputRunes < 0 {
		return cfg, fmt.Errorf("engine.max_input_runes must not be negative, got %d", cfg.Engine.MaxInputRunes)
	}
	if cfg.Engine.LowConfidence < 0 || cfg.Engine.LowConfidence > 1 {
		return cfg, fmt.Errorf("engine.low_confidence must be within [0, 1], got %v", cfg.Engine.LowConfidence)
	}
	return cfg, nil
}

// setup loads the configuration and builds the logger and engine shared by
// the subcommands.
func setup() (types.Config, *zap.Logger, *extract.Engine, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return cfg, nil, nil, err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return cfg, nil, nil, err
	}
	return cfg, log, extract.New(cfg.Engine, extract.WithLogger(log)), nil
}

func openHistory(cfg types.Config) (*history.Store, error) {
	return history.NewStore(cfg.History)
}
