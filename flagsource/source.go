// Package flagsource defines the boundary that yields the per-call flag set.
// The delivery mechanism behind a Source (remote flag service, database,
// override file) stays outside this module; adapters bridge concrete
// backends to the Source contract.
package flagsource

import (
	"context"

	"github.com/goliatone/go-navfilter/nav"
)

// Subject scopes a flag-set load to a viewer. Empty fields widen the scope;
// a zero Subject asks for the system-wide set.
type Subject struct {
	TenantID string
	OrgID    string
	UserID   string
}

// Source produces the flag set a viewer evaluates against. Implementations
// return a fresh map per call; callers own the result.
type Source interface {
	Load(ctx context.Context, subject Subject) (nav.FlagSet, error)
}

// SourceFunc wraps a function as a Source.
type SourceFunc func(context.Context, Subject) (nav.FlagSet, error)

// Load implements Source.
func (fn SourceFunc) Load(ctx context.Context, subject Subject) (nav.FlagSet, error) {
	if fn == nil {
		return nav.FlagSet{}, nil
	}
	return fn(ctx, subject)
}

// Static always returns the same values, copied per call.
type Static nav.FlagSet

// Load implements Source.
func (s Static) Load(context.Context, Subject) (nav.FlagSet, error) {
	out := make(nav.FlagSet, len(s))
	for key, value := range s {
		out[nav.NormalizeFlagKey(key)] = value
	}
	return out, nil
}
