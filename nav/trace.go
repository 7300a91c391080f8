package nav

import "context"

// NodeKind distinguishes section-level from item-level decisions.
type NodeKind string

const (
	NodeSection NodeKind = "section"
	NodeItem    NodeKind = "item"
)

// Reason captures why a node was kept or excluded.
type Reason string

const (
	ReasonVisible          Reason = "visible"
	ReasonDisabled         Reason = "disabled"
	ReasonDeniedPermission Reason = "denied_permission"
	ReasonDeniedFlag       Reason = "denied_flag"
	ReasonDeniedPlatform   Reason = "denied_platform"
	// ReasonPrunedEmpty marks an expandable node (or section) dropped because
	// recursive filtering left it without visible children.
	ReasonPrunedEmpty Reason = "pruned_empty"
	// ReasonCheckFailed marks a named check that panicked or was not
	// registered; the node is denied.
	ReasonCheckFailed Reason = "check_failed"
)

// Excluded reports whether the reason means the node left the output.
func (r Reason) Excluded() bool {
	return r != ReasonVisible
}

// Decision is emitted to hooks once per evaluated node.
type Decision struct {
	Kind    NodeKind
	ID      string
	Visible bool
	Reason  Reason
	Depth   int
	// Err carries the recovered check failure, if any. It is informational;
	// the filter itself never returns an error.
	Err error
}

// FilterHook observes per-node filter decisions. Hooks must not mutate the
// tree; they exist so the evaluation path stays free of default I/O.
type FilterHook interface {
	OnDecision(ctx context.Context, decision Decision)
}

// FilterHookFunc wraps a function as a FilterHook.
type FilterHookFunc func(context.Context, Decision)

// OnDecision implements FilterHook.
func (fn FilterHookFunc) OnDecision(ctx context.Context, decision Decision) {
	if fn == nil {
		return
	}
	fn(ctx, decision)
}
