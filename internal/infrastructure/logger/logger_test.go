package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		expect zapcore.Level
	}{
		{"debug console", Config{Level: "debug", Format: "console", Output: "stdout"}, zapcore.DebugLevel},
		{"info json", Config{Level: "info", Format: "json", Output: "stderr"}, zapcore.InfoLevel},
		{"warn alias", Config{Level: "warning", Format: "json", Output: "stdout"}, zapcore.WarnLevel},
		{"unknown falls back to info", Config{Level: "verbose", Format: "json", Output: "stdout"}, zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg)
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tt.expect))
			if tt.expect > zapcore.DebugLevel {
				assert.False(t, l.Core().Enabled(tt.expect-1))
			}
		})
	}
}

func TestNewForEnvironment(t *testing.T) {
	prod, err := NewForEnvironment("production")
	require.NoError(t, err)
	assert.False(t, prod.Core().Enabled(zapcore.DebugLevel))

	dev, err := NewForEnvironment("development")
	require.NoError(t, err)
	assert.True(t, dev.Core().Enabled(zapcore.DebugLevel))
}

func TestContextRoundTrip(t *testing.T) {
	base := zap.NewNop()
	ctx := context.Background()

	t.Run("logger attaches and detaches", func(t *testing.T) {
		ctx := WithContext(ctx, base)
		assert.Same(t, base, FromContext(ctx))
	})

	t.Run("empty context yields a usable logger", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background()))
	})

	t.Run("request id survives the context", func(t *testing.T) {
		ctx, _ := WithRequestID(ctx, base, "req-123")
		assert.Equal(t, "req-123", GetRequestID(ctx))
	})

	t.Run("admin id survives the context", func(t *testing.T) {
		ctx, _ := WithAdminID(ctx, base, "admin-9")
		assert.Equal(t, "admin-9", GetAdminID(ctx))
	})

	t.Run("missing ids are empty", func(t *testing.T) {
		assert.Empty(t, GetRequestID(context.Background()))
		assert.Empty(t, GetAdminID(context.Background()))
	})
}

func TestWithTraceContext_NoSpan(t *testing.T) {
	base := zap.NewNop()
	assert.Same(t, base, WithTraceContext(context.Background(), base))
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("anything"))
}

func TestGormLoggerLogMode(t *testing.T) {
	l := NewGormLogger(zap.NewNop(), gormlogger.Warn, 0)
	clone := l.LogMode(gormlogger.Silent)

	assert.NotSame(t, l, clone)
	assert.Equal(t, gormlogger.Warn, l.logLevel, "original is unchanged")
}
