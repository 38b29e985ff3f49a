package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	require.Same(t, slog.Default(), FromContext(context.Background()))

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx := WithLogger(context.Background(), logger)
	require.Same(t, logger, FromContext(ctx))
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "json", "warn")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "room", "start")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), `"room":"start"`)

	_, err = New(&buf, "xml", "info")
	require.Error(t, err)
	_, err = New(&buf, "text", "loud")
	require.Error(t, err)
}
