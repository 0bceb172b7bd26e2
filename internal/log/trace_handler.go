package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// TraceHandler prints records as "[tag] message key=value ...".
// Records at error level get an ERROR marker after the tag.
type TraceHandler struct {
	writer io.Writer
	tag    string
	level  slog.Leveler
	attrs  []slog.Attr
	mu     *sync.Mutex
}

func NewTraceHandler(writer io.Writer, tag string, level slog.Leveler) *TraceHandler {
	return &TraceHandler{writer: writer, tag: tag, level: level, mu: &sync.Mutex{}}
}

func (h *TraceHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *TraceHandler) Handle(_ context.Context, record slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	_, _ = fmt.Fprintf(h.writer, "[%s] ", h.tag)
	if record.Level >= slog.LevelError {
		_, _ = fmt.Fprint(h.writer, "ERROR ")
	}
	_, _ = fmt.Fprint(h.writer, record.Message)

	for _, a := range h.attrs {
		printAttr(h.writer, a)
	}
	record.Attrs(func(a slog.Attr) bool {
		printAttr(h.writer, a)
		return true
	})

	_, err := fmt.Fprintln(h.writer)
	return err
}

func printAttr(w io.Writer, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindString {
		_, _ = fmt.Fprintf(w, " %s=%q", a.Key, a.Value.String())
		return
	}
	_, _ = fmt.Fprintf(w, " %s=%v", a.Key, a.Value)
}

func (h *TraceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h
	h2.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...)
	return &h2
}

// WithGroup is not supported, attributes stay flat.
func (h *TraceHandler) WithGroup(_ string) slog.Handler {
	return h
}
