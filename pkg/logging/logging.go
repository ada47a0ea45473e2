package logging

import (
	"context"
	"log/slog"
	"os"

	"go.opentelemetry.io/contrib/bridges/otelslog"

	"gitlab.com/verigate/verigate-backend/pkg/env"
)

// Setup builds the process-wide logger: a text handler on stderr fanned out
// together with the otelslog bridge so records reach the OTLP log exporter.
// The returned cleanup is a no-op today but kept for symmetry with the otel
// SDK shutdown.
func Setup(mode env.Mode) (*slog.Logger, func()) {
	stderr := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: mode.SlogLevel(),
	})

	otel := otelslog.NewHandler("verigate")

	logger := slog.New(fanoutHandler{handlers: []slog.Handler{stderr, otel}})

	return logger, func() {}
}

type fanoutHandler struct {
	handlers []slog.Handler
}

func (h fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, hh := range h.handlers {
		if hh.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var err error
	for _, hh := range h.handlers {
		if hh.Enabled(ctx, record.Level) {
			if herr := hh.Handle(ctx, record.Clone()); herr != nil {
				err = herr
			}
		}
	}
	return err
}

func (h fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, hh := range h.handlers {
		next[i] = hh.WithAttrs(attrs)
	}
	return fanoutHandler{handlers: next}
}

func (h fanoutHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, hh := range h.handlers {
		next[i] = hh.WithGroup(name)
	}
	return fanoutHandler{handlers: next}
}
