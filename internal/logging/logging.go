// Package logging builds the zap loggers used for the per-account decision stream.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/social-actions-cli/internal/adapters/fsutil"
	"github.com/bnema/social-actions-cli/internal/domain"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Options struct {
	Level  string
	Format string
	Output io.Writer
}

func ParseLevel(raw string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q: %w", raw, domain.ErrInvalidConfig)
	}
}

func encoderConfig(format string) zapcore.EncoderConfig {
	if format == "console" {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout(time.DateTime)
		return cfg
	}

	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg
}

func newEncoder(format string) (zapcore.Encoder, error) {
	switch format {
	case "", "console":
		return zapcore.NewConsoleEncoder(encoderConfig("console")), nil
	case "json":
		return zapcore.NewJSONEncoder(encoderConfig("json")), nil
	default:
		return nil, fmt.Errorf("unknown log format %q: %w", format, domain.ErrInvalidConfig)
	}
}

// New builds the process logger. Output defaults to stderr so stdout stays free for command output.
func New(opts Options) (*zap.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	encoder, err := newEncoder(opts.Format)
	if err != nil {
		return nil, err
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(out), zap.NewAtomicLevelAt(level))
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

// ForAccount tags base with the account and run id. When dir is set the account's lines are also
// written as JSON to <dir>/<account>_<timestamp>.log; the returned func closes that file.
func ForAccount(base *zap.Logger, dir string, account domain.AccountID, runID string, now time.Time) (*zap.Logger, func() error, error) {
	fields := []zap.Field{zap.String("account", string(account)), zap.String("run_id", runID)}
	if dir == "" {
		return base.With(fields...), func() error { return nil }, nil
	}

	if err := os.MkdirAll(dir, fsutil.DirMode); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_%s.log", account, now.Format("20060102_150405")))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, fsutil.FileMode)
	if err != nil {
		return nil, nil, fmt.Errorf("open account log: %w", err)
	}

	fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig("json")), zapcore.AddSync(file), zapcore.DebugLevel)
	logger := base.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, fileCore)
	})).With(fields...)

	closeFn := func() error {
		_ = logger.Sync()
		return file.Close()
	}

	return logger, closeFn, nil
}
