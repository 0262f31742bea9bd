// Package logging builds the zap logger shared by all components.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Modes
const (
	ModeProduction  = "production"
	ModeDevelopment = "development"
)

// Encodings
const (
	EncodingConsole = "console"
	EncodingJSON    = "json"
)

// Config selects level, mode and encoding of the logger
type Config struct {
	Level        string // debug, info, warn, error
	Mode         string // production or development
	Encoding     string // console or json
	ColorEnabled bool   // colored levels, console encoding only

	// Output receives log lines. Defaults to stderr so command output on
	// stdout stays clean.
	Output io.Writer
}

// DefaultConfig returns a quiet console logger config suitable for a CLI
func DefaultConfig() Config {
	return Config{
		Level:        "warn",
		Mode:         ModeProduction,
		Encoding:     EncodingConsole,
		ColorEnabled: true,
	}
}

// Validate checks the config values
func (c Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}
	switch c.Mode {
	case "", ModeProduction, ModeDevelopment:
	default:
		return fmt.Errorf("invalid log mode %q (expected %s or %s)", c.Mode, ModeProduction, ModeDevelopment)
	}
	switch c.Encoding {
	case "", EncodingConsole, EncodingJSON:
	default:
		return fmt.Errorf("invalid log encoding %q (expected %s or %s)", c.Encoding, EncodingConsole, EncodingJSON)
	}
	return nil
}

// New builds a logger from cfg
func New(cfg Config) (*zap.Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level, _ := zapcore.ParseLevel(cfg.Level)

	var encCfg zapcore.EncoderConfig
	if cfg.Mode == ModeDevelopment {
		encCfg = zap.NewDevelopmentEncoderConfig()
	} else {
		encCfg = zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	var encoder zapcore.Encoder
	if strings.EqualFold(cfg.Encoding, EncodingJSON) {
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		if cfg.ColorEnabled {
			encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		} else {
			encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		}
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(out), level)
	opts := []zap.Option{zap.AddCaller()}
	if cfg.Mode == ModeDevelopment {
		opts = append(opts, zap.Development(), zap.AddStacktrace(zapcore.ErrorLevel))
	}
	return zap.New(core, opts...), nil
}

// Must is like New but falls back to a no-op logger on invalid config
func Must(cfg Config) *zap.Logger {
	logger, err := New(cfg)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
