package logger

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
)

const tagKey = "tag" // attribute key used for tag filtering

// filteringHandler wraps a base slog.Handler and drops records by tag,
// originating package or originating file.
type filteringHandler struct {
	baseHandler slog.Handler
	cfg         *Config
	tag         string // tag bound through WithAttrs
}

func newFilteringHandler(base slog.Handler, cfg *Config) *filteringHandler {
	return &filteringHandler{
		baseHandler: base,
		cfg:         cfg,
	}
}

// Enabled defers to the base handler.
func (h *filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.baseHandler.Enabled(ctx, level)
}

// Handle applies the filters before passing the record on.
func (h *filteringHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.cfg == nil || !h.cfg.hasFilters() {
		return h.baseHandler.Handle(ctx, r)
	}

	pkg, file := recordSource(r)
	if !h.cfg.allowed(h.cfg.enabledPackagesSet, h.cfg.disabledPackagesSet, pkg) {
		return nil
	}
	if !h.cfg.allowed(h.cfg.enabledFilesSet, h.cfg.disabledFilesSet, file) {
		return nil
	}

	tag := h.tag
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tag = a.Value.String()
			return false
		}
		return true
	})
	tag = strings.ToLower(tag)

	if tag == "" {
		// Untagged records are dropped once specific tags are requested.
		if h.cfg.enabledTagsSet != nil {
			return nil
		}
	} else if !h.cfg.allowed(h.cfg.enabledTagsSet, h.cfg.disabledTagsSet, tag) {
		return nil
	}

	return h.baseHandler.Handle(ctx, r)
}

// WithAttrs returns a new handler with attributes added.
func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := newFilteringHandler(h.baseHandler.WithAttrs(attrs), h.cfg)
	next.tag = h.tag
	for _, a := range attrs {
		if a.Key == tagKey {
			next.tag = a.Value.String()
		}
	}
	return next
}

// WithGroup returns a new handler with a group added.
func (h *filteringHandler) WithGroup(name string) slog.Handler {
	next := newFilteringHandler(h.baseHandler.WithGroup(name), h.cfg)
	next.tag = h.tag
	return next
}

func (c *Config) hasFilters() bool {
	return c.enabledTagsSet != nil || c.disabledTagsSet != nil ||
		c.enabledPackagesSet != nil || c.disabledPackagesSet != nil ||
		c.enabledFilesSet != nil || c.disabledFilesSet != nil
}

// allowed reports whether key passes an enabled/disabled set pair. An empty key
// (unknown source) always passes.
func (c *Config) allowed(enabled, disabled map[string]struct{}, key string) bool {
	if key == "" {
		return true
	}
	key = strings.ToLower(key)
	if _, found := disabled[key]; found {
		return false
	}
	if enabled != nil {
		if _, found := enabled[key]; !found {
			return false
		}
	}
	return true
}

// recordSource returns the package directory name and file base name of the
// code that produced r.
func recordSource(r slog.Record) (pkg, file string) {
	if r.PC == 0 {
		return "", ""
	}
	frames := runtime.CallersFrames([]uintptr{r.PC})
	frame, _ := frames.Next()
	if frame.File == "" {
		return "", ""
	}
	return filepath.Base(filepath.Dir(frame.File)), filepath.Base(frame.File)
}
