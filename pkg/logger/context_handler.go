package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor returns an attribute carried by ctx, if any.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// contextHandler appends extracted attributes to each record before handing
// it to the wrapped handler.
type contextHandler struct {
	slog.Handler
	extractors []ContextExtractor
}

// withExtractors wraps h, or returns it unchanged when there is nothing to
// extract.
func withExtractors(h slog.Handler, extractors []ContextExtractor) slog.Handler {
	if len(extractors) == 0 {
		return h
	}
	return &contextHandler{Handler: h, extractors: extractors}
}

func (h *contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	if ctx != nil {
		for _, extract := range h.extractors {
			if attr, ok := extract(ctx); ok && !attr.Equal(slog.Attr{}) {
				rec.AddAttrs(attr)
			}
		}
	}
	return h.Handler.Handle(ctx, rec)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs), extractors: h.extractors}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name), extractors: h.extractors}
}
