// Package gologgeradapter emits navigation filter decisions through
// go-logger. It is the production implementation of the optional
// observability hook; without it the evaluation path performs no I/O.
package gologgeradapter

import (
	"context"
	"strings"

	"github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-navfilter/nav"
)

// Hook logs filter decisions using go-logger.
type Hook struct {
	logger        glog.Logger
	level         string
	excludedLevel string
	message       string
	visible       bool
}

// Option customizes the logger hook.
type Option func(*Hook)

// New builds a logging hook for filter decisions. By default only excluded
// nodes are logged, at debug level; check failures log at warn.
func New(logger glog.Logger, opts ...Option) *Hook {
	hook := &Hook{
		logger:        logger,
		level:         "debug",
		excludedLevel: "debug",
		message:       "navfilter.decision",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(hook)
		}
	}
	return hook
}

// WithLevel sets the log level for visible-node decisions and implies
// logging them.
func WithLevel(level string) Option {
	return func(hook *Hook) {
		if hook == nil {
			return
		}
		hook.level = strings.ToLower(strings.TrimSpace(level))
		hook.visible = true
	}
}

// WithExcludedLevel sets the log level for excluded-node decisions.
func WithExcludedLevel(level string) Option {
	return func(hook *Hook) {
		if hook == nil {
			return
		}
		hook.excludedLevel = strings.ToLower(strings.TrimSpace(level))
	}
}

// WithVisibleDecisions toggles logging of visible-node decisions.
func WithVisibleDecisions(enabled bool) Option {
	return func(hook *Hook) {
		if hook == nil {
			return
		}
		hook.visible = enabled
	}
}

// WithMessage overrides the decision log message.
func WithMessage(message string) Option {
	return func(hook *Hook) {
		if hook == nil {
			return
		}
		hook.message = message
	}
}

// OnDecision implements nav.FilterHook.
func (h *Hook) OnDecision(ctx context.Context, decision nav.Decision) {
	if h == nil || h.logger == nil {
		return
	}
	if decision.Visible && !h.visible {
		return
	}
	fields := map[string]any{
		"nav_node_kind": decision.Kind,
		"nav_node_id":   decision.ID,
		"nav_visible":   decision.Visible,
		"nav_reason":    decision.Reason,
		"nav_depth":     decision.Depth,
	}
	level := h.level
	if !decision.Visible {
		level = h.excludedLevel
	}
	if decision.Err != nil {
		fields["nav_error"] = decision.Err.Error()
		// A panicking or missing check is an authoring problem worth
		// surfacing above the decision chatter.
		level = "warn"
	}
	h.log(ctx, level, fields)
}

func (h *Hook) log(ctx context.Context, level string, fields map[string]any) {
	logger := h.logger
	if logger == nil {
		return
	}
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	if fieldsLogger, ok := logger.(glog.FieldsLogger); ok && len(fields) > 0 {
		logger = fieldsLogger.WithFields(fields)
	}
	switch level {
	case "trace":
		logger.Trace(h.message)
	case "debug":
		logger.Debug(h.message)
	case "warn":
		logger.Warn(h.message)
	case "error":
		logger.Error(h.message)
	default:
		logger.Info(h.message)
	}
}

var _ nav.FilterHook = (*Hook)(nil)
