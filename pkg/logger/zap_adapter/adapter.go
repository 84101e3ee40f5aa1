package zap_adapter

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"tracker/pkg/logger"
)

type ZapAdapter struct {
	logger *zap.Logger
}

type Option func(*zap.Config)

// WithService добавляет поле service в каждую запись, API и воркер пишут в один поток логов.
func WithService(name string) Option {
	return func(c *zap.Config) {
		if c.InitialFields == nil {
			c.InitialFields = map[string]any{}
		}
		c.InitialFields["service"] = name
	}
}

// NewZapAdapter собирает JSON логгер в stdout. level пустой означает info.
func NewZapAdapter(level string, opts ...Option) (*ZapAdapter, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder

	if level != "" {
		atomicLevel, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", level, err)
		}
		cfg.Level = atomicLevel
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	zapLogger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}
	return &ZapAdapter{logger: zapLogger}, nil
}

// NewFromZap оборачивает готовый *zap.Logger, например zaptest или zap.NewNop.
func NewFromZap(l *zap.Logger) *ZapAdapter {
	return &ZapAdapter{logger: l}
}

func (z *ZapAdapter) Debug(msg string, fields ...logger.Field) {
	z.logger.Debug(msg, toZap(fields)...)
}

func (z *ZapAdapter) Info(msg string, fields ...logger.Field) {
	z.logger.Info(msg, toZap(fields)...)
}

func (z *ZapAdapter) Warn(msg string, fields ...logger.Field) {
	z.logger.Warn(msg, toZap(fields)...)
}

func (z *ZapAdapter) Error(msg string, fields ...logger.Field) {
	z.logger.Error(msg, toZap(fields)...)
}

func (z *ZapAdapter) With(fields ...logger.Field) logger.Logger {
	if len(fields) == 0 {
		return z
	}
	return &ZapAdapter{logger: z.logger.With(toZap(fields)...)}
}

func (z *ZapAdapter) Sync() error {
	return z.logger.Sync()
}

func toZap(fields []logger.Field) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		out = append(out, toZapField(f))
	}
	return out
}

// toZapField избегает рефлексии zap.Any для частых типов полей.
func toZapField(f logger.Field) zap.Field {
	switch v := f.Value.(type) {
	case error:
		return zap.NamedError(f.Key, v)
	case string:
		return zap.String(f.Key, v)
	case int:
		return zap.Int(f.Key, v)
	case int64:
		return zap.Int64(f.Key, v)
	case uint64:
		return zap.Uint64(f.Key, v)
	case bool:
		return zap.Bool(f.Key, v)
	case time.Duration:
		return zap.Duration(f.Key, v)
	case time.Time:
		return zap.Time(f.Key, v)
	case []string:
		return zap.Strings(f.Key, v)
	case fmt.Stringer:
		return zap.Stringer(f.Key, v)
	default:
		return zap.Any(f.Key, v)
	}
}
