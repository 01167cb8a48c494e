package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlogLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	ctx := context.Background()

	l.Debug(ctx, "dbg")
	l.Info(ctx, "inf", "k", "v")
	l.Warn(ctx, "wrn")
	l.Error(ctx, "err")

	out := buf.String()
	assert.Contains(t, out, "dbg")
	assert.Contains(t, out, "inf")
	assert.Contains(t, out, "k=v")
	assert.Contains(t, out, "wrn")
	assert.Contains(t, out, "err")
}

func TestSlogLogger_With(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	child := l.With("component", "store")
	child.Info(context.Background(), "msg")

	assert.Contains(t, buf.String(), "component=store")
}
