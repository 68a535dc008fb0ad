package slogx_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/aussiebroadwan/tercera/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		require.Equal(t, want, slogx.ParseLevel(in), "level %q", in)
	}
}

func TestNewWritesJSONWithServiceFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slogx.New(slogx.Config{
		Service: "tercera",
		Version: "v0.0.1",
		Env:     "test",
		Level:   "info",
		Format:  "json",
		Output:  &buf,
	})

	logger.Info("hello", "k", "v")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "hello", rec["msg"])
	require.Equal(t, "tercera", rec["service"])
	require.Equal(t, "test", rec["env"])
	require.Equal(t, "v", rec["k"])
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	// Nothing stored falls back to the default logger
	require.Equal(t, slog.Default(), slogx.FromContext(context.Background()))

	l := slogx.Discard()
	ctx := slogx.WithContext(context.Background(), l)
	require.Same(t, l, slogx.FromContext(ctx))

	ctx = slogx.WithCommand(ctx, "/dashboard")
	require.NotSame(t, l, slogx.FromContext(ctx))
}
