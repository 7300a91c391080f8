// Package filter decides which parts of a navigation tree a viewer sees.
//
// Three policy dimensions — permission, feature flags, platform — are
// AND-combined per node and applied recursively. Expandable nodes whose
// children all filtered out are pruned, sections that filter to zero items
// are pruned, and surviving siblings are stably sorted by their order key.
// Every call is a pure function of (tree, viewer): the input is never
// mutated and the filter keeps no state between calls.
package filter

import (
	"context"
	"sort"

	"github.com/goliatone/go-navfilter/nav"
	"github.com/goliatone/go-navfilter/policy"
)

// Filter evaluates navigation trees for a viewer. Safe for concurrent use;
// construction-time options are the only mutable surface.
type Filter struct {
	permissions *policy.PermissionEvaluator
	hooks       []nav.FilterHook
}

// Option customizes a Filter.
type Option func(*Filter)

// WithChecks registers named permission checks on the filter's evaluator.
func WithChecks(checks policy.Checks) Option {
	return func(f *Filter) {
		if f == nil {
			return
		}
		f.permissions = policy.NewPermissionEvaluator(policy.WithChecks(checks))
	}
}

// WithPermissionEvaluator replaces the permission evaluator entirely.
func WithPermissionEvaluator(evaluator *policy.PermissionEvaluator) Option {
	return func(f *Filter) {
		if f == nil || evaluator == nil {
			return
		}
		f.permissions = evaluator
	}
}

// WithHook registers a decision hook. Hooks default to none, keeping the
// evaluation path free of I/O.
func WithHook(hook nav.FilterHook) Option {
	return func(f *Filter) {
		if f == nil || hook == nil {
			return
		}
		f.hooks = append(f.hooks, hook)
	}
}

// New constructs a Filter with the provided options.
func New(options ...Option) *Filter {
	f := &Filter{
		permissions: policy.NewPermissionEvaluator(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}
	if f.permissions == nil {
		f.permissions = policy.NewPermissionEvaluator()
	}
	return f
}

// Apply filters the section list for a viewer. The returned sections and
// their item trees are fresh values; the input is left untouched.
func (f *Filter) Apply(ctx context.Context, sections []nav.Section, viewer nav.Viewer) []nav.Section {
	if f == nil {
		f = New()
	}
	out := make([]nav.Section, 0, len(sections))
	for _, section := range sections {
		filtered, ok := f.filterSection(ctx, section, viewer)
		if ok {
			out = append(out, filtered)
		}
	}
	sortSections(out)
	return out
}

// ApplyConfig filters a full config's sections.
func (f *Filter) ApplyConfig(ctx context.Context, cfg nav.Config, viewer nav.Viewer) []nav.Section {
	return f.Apply(ctx, cfg.Sections, viewer)
}

// Apply filters sections with a default Filter (no checks, no hooks).
func Apply(ctx context.Context, sections []nav.Section, viewer nav.Viewer) []nav.Section {
	return New().Apply(ctx, sections, viewer)
}

func (f *Filter) filterSection(ctx context.Context, section nav.Section, viewer nav.Viewer) (nav.Section, bool) {
	reason, err := f.evaluate(section.Disabled, section.Permission, section.Flags, section.Platforms, viewer)
	if reason.Excluded() {
		f.emit(ctx, nav.Decision{Kind: nav.NodeSection, ID: section.ID, Reason: reason, Err: err})
		return nav.Section{}, false
	}

	section.Items = f.filterItems(ctx, section.Items, viewer, 1)
	if len(section.Items) == 0 {
		// Mirrors the expandable-pruning rule: a group with nothing visible
		// inside it has no reason to render.
		f.emit(ctx, nav.Decision{Kind: nav.NodeSection, ID: section.ID, Reason: nav.ReasonPrunedEmpty})
		return nav.Section{}, false
	}

	f.emit(ctx, nav.Decision{Kind: nav.NodeSection, ID: section.ID, Visible: true, Reason: nav.ReasonVisible})
	return section, true
}

func (f *Filter) filterItems(ctx context.Context, items []nav.Item, viewer nav.Viewer, depth int) []nav.Item {
	if len(items) == 0 {
		return nil
	}
	out := make([]nav.Item, 0, len(items))
	for _, item := range items {
		filtered, ok := f.filterItem(ctx, item, viewer, depth)
		if ok {
			out = append(out, filtered)
		}
	}
	sortItems(out)
	return out
}

func (f *Filter) filterItem(ctx context.Context, item nav.Item, viewer nav.Viewer, depth int) (nav.Item, bool) {
	reason, err := f.evaluate(item.Disabled, item.Permission, item.Flags, item.Platforms, viewer)
	if reason.Excluded() {
		f.emit(ctx, nav.Decision{Kind: nav.NodeItem, ID: item.ID, Reason: reason, Depth: depth, Err: err})
		return nav.Item{}, false
	}

	item.Children = f.filterItems(ctx, item.Children, viewer, depth+1)
	if item.Expandable && len(item.Children) == 0 {
		// An expandable node is only meaningful with visible children.
		// Non-expandable nodes keep standing on their own policies.
		f.emit(ctx, nav.Decision{Kind: nav.NodeItem, ID: item.ID, Reason: nav.ReasonPrunedEmpty, Depth: depth})
		return nav.Item{}, false
	}

	f.emit(ctx, nav.Decision{Kind: nav.NodeItem, ID: item.ID, Visible: true, Reason: nav.ReasonVisible, Depth: depth})
	return item, true
}

// evaluate applies the three policy dimensions plus the disabled flag.
// Dimensions are AND-combined; the first failing one names the reason.
func (f *Filter) evaluate(disabled bool, perm *nav.Permission, flags *nav.FlagRule, platforms []nav.Platform, viewer nav.Viewer) (nav.Reason, error) {
	if disabled {
		return nav.ReasonDisabled, nil
	}
	visible, failure := f.permissions.EvaluateWithFailure(perm, viewer.Account)
	if failure != nil {
		return nav.ReasonCheckFailed, failure
	}
	if !visible {
		return nav.ReasonDeniedPermission, nil
	}
	if !policy.EvaluateFlags(flags, viewer.Flags) {
		return nav.ReasonDeniedFlag, nil
	}
	if !policy.MatchPlatform(platforms, viewer.Platform) {
		return nav.ReasonDeniedPlatform, nil
	}
	return nav.ReasonVisible, nil
}

func (f *Filter) emit(ctx context.Context, decision nav.Decision) {
	if len(f.hooks) == 0 {
		return
	}
	for _, hook := range f.hooks {
		if hook == nil {
			continue
		}
		hook.OnDecision(ctx, decision)
	}
}

// Stable sorts keep equal-order siblings in their original positions.

func sortSections(sections []nav.Section) {
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Order < sections[j].Order
	})
}

func sortItems(items []nav.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Order < items[j].Order
	})
}
