package app

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingHandler struct {
	slog.Handler
	err error
}

func (h failingHandler) Handle(context.Context, slog.Record) error {
	return h.err
}

func TestFanoutHandlerRespectsLevels(t *testing.T) {
	var debug, warn bytes.Buffer

	logger := slog.New(newFanoutHandler(
		slog.NewTextHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&warn, &slog.HandlerOptions{Level: slog.LevelWarn}),
	))

	logger.Debug("resolving performance", "performance_id", 3)
	logger.Warn("seat no longer available", "performance_id", 3)

	assert.Contains(t, debug.String(), "resolving performance")
	assert.Contains(t, debug.String(), "seat no longer available")
	assert.NotContains(t, warn.String(), "resolving performance")
	assert.Contains(t, warn.String(), "seat no longer available")
}

func TestFanoutHandlerCarriesAttrsAndGroups(t *testing.T) {
	var first, second bytes.Buffer

	logger := slog.New(newFanoutHandler(
		slog.NewTextHandler(&first, nil),
		slog.NewTextHandler(&second, nil),
	)).With("request_id", "abc").WithGroup("reservation")

	logger.Info("created", "id", 7)

	for _, out := range []string{first.String(), second.String()} {
		assert.Contains(t, out, "request_id=abc")
		assert.Contains(t, out, "reservation.id=7")
	}
}

func TestFanoutHandlerJoinsErrors(t *testing.T) {
	var out bytes.Buffer
	errExport := errors.New("collector unreachable")

	handler := newFanoutHandler(
		failingHandler{Handler: slog.NewTextHandler(&out, nil), err: errExport},
		slog.NewTextHandler(&out, nil),
	)

	err := handler.Handle(t.Context(), slog.NewRecord(testShowTime, slog.LevelInfo, "booked", 0))

	require.ErrorIs(t, err, errExport)
	assert.Contains(t, out.String(), "booked")
}
