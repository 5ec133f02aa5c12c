package intercepters_test

import (
	"context"
	"testing"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/shorturlproject/shorturl/internal/intercepters"
)

func TestInterceptorLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	il := intercepters.InterceptorLogger(zap.New(core))

	tests := []struct {
		name   string
		level  logging.Level
		fields []any
		want   zapcore.Level
		keys   []string
	}{
		{name: "debug", level: logging.LevelDebug, fields: []any{"grpc.method", "Shorten"}, want: zap.DebugLevel, keys: []string{"grpc.method"}},
		{name: "info", level: logging.LevelInfo, fields: []any{"grpc.code", "OK", "attempt", 2}, want: zap.InfoLevel, keys: []string{"grpc.code", "attempt"}},
		{name: "warn", level: logging.LevelWarn, fields: []any{"peer", struct{ Addr string }{"127.0.0.1"}}, want: zap.WarnLevel, keys: []string{"peer"}},
		{name: "error without fields", level: logging.LevelError, want: zap.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			il.Log(context.Background(), tt.level, "finished call", tt.fields...)

			entries := logs.TakeAll()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.want, entries[0].Level)
			assert.Equal(t, "finished call", entries[0].Message)

			fields := entries[0].ContextMap()
			for _, k := range tt.keys {
				assert.Contains(t, fields, k)
			}
		})
	}
}

func TestInterceptorLogger_UnknownLevel(t *testing.T) {
	il := intercepters.InterceptorLogger(zap.NewNop())

	assert.Panics(t, func() {
		il.Log(context.Background(), logging.Level(42), "boom")
	})
}
