// Package logging provides the slog handler used by the binaries.
//
// Logs are one JSON object per line, readable without tooling. The handler
// is geared toward CLI output, not throughput.
package logging

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"time"
)

// Handler is a compact single-line JSON slog.Handler.
type Handler struct {
	w     io.Writer
	mu    *sync.Mutex
	level slog.Leveler

	attrs  []slog.Attr
	groups []string
}

// NewHandler returns a Handler writing to w at the given minimum level.
// A nil level defaults to Info.
func NewHandler(w io.Writer, level slog.Leveler) *Handler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &Handler{
		w:     w,
		mu:    &sync.Mutex{},
		level: level,
	}
}

// New returns a slog.Logger for the binaries: a Handler on w.
func New(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(NewHandler(w, level))
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	payload := make(map[string]any, 4+r.NumAttrs()+len(h.attrs))

	when := r.Time
	if when.IsZero() {
		when = time.Now()
	}
	payload["time"] = when.Format(time.RFC3339)
	payload["level"] = r.Level.String()
	payload["msg"] = r.Message

	// Attrs stored by WithAttrs are already qualified with the groups that
	// were open when they were added.
	for _, a := range h.attrs {
		addAttr(payload, nil, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		addAttr(payload, h.groups, a)
		return true
	})

	b, err := json.Marshal(payload)
	if err != nil {
		// As a last resort, avoid dropping the log line entirely.
		b = []byte(`{"level":` + strconv.Quote(r.Level.String()) + `,"msg":` + strconv.Quote(r.Message) + `}`)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.w.Write(append(b, '\n'))
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	qualified := attrs
	for i := len(h.groups) - 1; i >= 0; i-- {
		qualified = []slog.Attr{{Key: h.groups[i], Value: slog.GroupValue(qualified...)}}
	}
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), qualified...)
	return &clone
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string(nil), h.groups...), name)
	return &clone
}

func addAttr(root map[string]any, groups []string, attr slog.Attr) {
	dst := root
	for _, g := range groups {
		m, ok := dst[g].(map[string]any)
		if !ok {
			m = map[string]any{}
			dst[g] = m
		}
		dst = m
	}
	addAttrToMap(dst, attr)
}

func addAttrToMap(dst map[string]any, attr slog.Attr) {
	v := attr.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		child, ok := dst[attr.Key].(map[string]any)
		if !ok {
			child = map[string]any{}
		}
		for _, ga := range v.Group() {
			if ga.Key != "" {
				addAttrToMap(child, ga)
			}
		}
		dst[attr.Key] = child
		return
	}
	dst[attr.Key] = valueToAny(v)
}

func valueToAny(v slog.Value) any {
	switch v.Kind() {
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	default:
		return v.Any()
	}
}
