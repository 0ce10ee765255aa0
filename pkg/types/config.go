// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// EngineConfig holds settings for the extraction engine.
type EngineConfig struct {
	// MaxInputRunes bounds how much of the input is matched (default 10000).
	// Zero disables the bound.
	MaxInputRunes int `json:"max_input_runes" yaml:"max_input_runes"`

	// MatchTimeout bounds a single regular-expression evaluation (default 250ms).
	MatchTimeout time.Duration `json:"match_timeout" yaml:"match_timeout"`

	// LowConfidence is the threshold below which Health flags a result (default 0.75).
	LowConfidence float64 `json:"low_confidence" yaml:"low_confidence"`
}

// ServerConfig holds settings for the HTTP endpoint.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// RecordHistory stores each submitted text in the history list.
	RecordHistory bool `json:"record_history" yaml:"record_history"`
}

// HistoryConfig holds settings for the recency list.
type HistoryConfig struct {
	// Path is the SQLite database file (default "history/history.db").
	Path string `json:"path" yaml:"path"`

	// Limit caps the number of remembered texts (default 5).
	Limit int `json:"limit" yaml:"limit"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level"`

	// Format is console or json (default console).
	Format string `json:"format" yaml:"format"`
}

// Config groups all settings.
type Config struct {
	Engine  EngineConfig  `json:"engine" yaml:"engine"`
	Server  ServerConfig  `json:"server" yaml:"server"`
	History HistoryConfig `json:"history" yaml:"history"`
	Log     LogConfig     `json:"log" yaml:"log"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Engine: EngineConfig{
			MaxInputRunes: 10000,
			MatchTimeout:  250 * time.Millisecond,
			LowConfidence: DefaultLowConfidence,
		},
		Server: ServerConfig{
			Addr:          ":8080",
			RecordHistory: true,
		},
		History: HistoryConfig{
			Path:  "history/history.db",
			Limit: 5,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
