// Package config holds setup shared by the command entry points.
package config

import (
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger that shows debug messages when debug is set.
func CreateLogger(debug bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	}
	return log.NewWithConfig(cfg)
}
