package logger

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerContextRoundtrip(t *testing.T) {
	t.Parallel()

	custom := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := WithLogger(context.Background(), custom)

	assert.Same(t, custom, FromContext(ctx))
	assert.Same(t, custom, FromContextOrDefault(ctx, nil))
}

func TestFromContextFallsBack(t *testing.T) {
	t.Parallel()

	// No logger in context: package default.
	assert.Same(t, slog.Default(), FromContext(context.Background()))

	// Explicit default takes precedence over the package default.
	def := slog.New(slog.NewTextHandler(io.Discard, nil))
	assert.Same(t, def, FromContextOrDefault(context.Background(), def))

	// Nil default degrades to the package default.
	assert.Same(t, slog.Default(), FromContextOrDefault(context.Background(), nil))
}
