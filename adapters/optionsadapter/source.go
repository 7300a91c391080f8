// Package optionsadapter sources flag sets from go-options state stores and
// go-admin preference stores, so navigation flags can ride the same
// per-user settings machinery the rest of an application uses.
package optionsadapter

import (
	"context"
	"strings"

	opts "github.com/goliatone/go-options"
	"github.com/goliatone/go-options/pkg/state"

	"github.com/goliatone/go-navfilter/flagsource"
	"github.com/goliatone/go-navfilter/nav"
	"github.com/goliatone/go-navfilter/naverrors"
)

// DefaultDomain is the default options domain for navigation flags.
const DefaultDomain = "nav_flags"

const (
	prioritySystem = 10
	priorityTenant = 20
	priorityOrg    = 30
	priorityUser   = 40
)

const (
	metadataTenantID = "tenant_id"
	metadataOrgID    = "org_id"
	metadataUserID   = "user_id"
)

// ErrStoreRequired indicates the underlying state store is missing.
var ErrStoreRequired = naverrors.ErrStoreRequired

// ScopeBuilder maps a subject to go-options scopes, widest first.
type ScopeBuilder func(subject flagsource.Subject) []opts.Scope

// Option customizes the Source adapter.
type Option func(*Source)

// Source adapts a go-options state.Store into a flag source.
type Source struct {
	stateStore state.Store[map[string]any]
	domain     string
	scopes     ScopeBuilder
}

// NewSource constructs an adapter backed by a go-options state.Store.
func NewSource(stateStore state.Store[map[string]any], options ...Option) *Source {
	source := &Source{
		stateStore: stateStore,
		domain:     DefaultDomain,
		scopes:     defaultScopes,
	}
	for _, opt := range options {
		if opt != nil {
			opt(source)
		}
	}
	if source.domain == "" {
		source.domain = DefaultDomain
	}
	if source.scopes == nil {
		source.scopes = defaultScopes
	}
	return source
}

// WithDomain sets the options domain used for navigation flags.
func WithDomain(domain string) Option {
	return func(source *Source) {
		if source == nil {
			return
		}
		source.domain = strings.TrimSpace(domain)
	}
}

// WithScopeBuilder overrides the default scope mapping.
func WithScopeBuilder(builder ScopeBuilder) Option {
	return func(source *Source) {
		if source == nil {
			return
		}
		source.scopes = builder
	}
}

// Load implements flagsource.Source. Scopes load widest first; narrower
// snapshots overwrite on key clash.
func (s *Source) Load(ctx context.Context, subject flagsource.Subject) (nav.FlagSet, error) {
	if s == nil || s.stateStore == nil {
		return nil, naverrors.WrapSentinel(naverrors.ErrStoreRequired, "optionsadapter: state store is required", map[string]any{
			naverrors.MetaAdapter:   "options",
			naverrors.MetaOperation: "load",
		})
	}
	out := nav.FlagSet{}
	for _, scopeDef := range s.scopes(subject) {
		snapshot, _, ok, err := s.stateStore.Load(ctx, state.Ref{Domain: s.domain, Scope: scopeDef})
		if err != nil {
			return nil, naverrors.WrapExternal(err, naverrors.TextCodeStoreReadFailed, "optionsadapter: load failed", map[string]any{
				naverrors.MetaAdapter:   "options",
				naverrors.MetaDomain:    s.domain,
				naverrors.MetaScope:     scopeDef.Name,
				naverrors.MetaOperation: "load",
			})
		}
		if !ok || len(snapshot) == 0 {
			continue
		}
		foldFlags("", snapshot, out)
	}
	return out, nil
}

// defaultScopes orders widest first so narrower snapshots overwrite.
func defaultScopes(subject flagsource.Subject) []opts.Scope {
	scopes := make([]opts.Scope, 0, 4)
	scopes = append(scopes, scoped("system", "System", prioritySystem, "", ""))
	if subject.TenantID != "" {
		scopes = append(scopes, scoped("tenant", "Tenant", priorityTenant, metadataTenantID, subject.TenantID))
	}
	if subject.OrgID != "" {
		scopes = append(scopes, scoped("org", "Org", priorityOrg, metadataOrgID, subject.OrgID))
	}
	if subject.UserID != "" {
		scopes = append(scopes, scoped("user", "User", priorityUser, metadataUserID, subject.UserID))
	}
	return scopes
}

func scoped(name, label string, priority int, metadataKey, metadataValue string) opts.Scope {
	var metadata map[string]any
	if metadataKey != "" && metadataValue != "" {
		metadata = map[string]any{metadataKey: metadataValue}
	}
	return opts.NewScope(
		name,
		priority,
		opts.WithScopeLabel(label),
		opts.WithScopeMetadata(metadata),
	)
}

// foldFlags flattens nested snapshots into dotted flag keys, keeping only
// boolean leaves.
func foldFlags(prefix string, data map[string]any, out nav.FlagSet) {
	for key, value := range data {
		trimmed := nav.NormalizeFlagKey(key)
		if trimmed == "" {
			continue
		}
		path := trimmed
		if prefix != "" {
			path = prefix + "." + trimmed
		}
		switch typed := value.(type) {
		case map[string]any:
			foldFlags(path, typed, out)
		case bool:
			out[path] = typed
		case *bool:
			if typed != nil {
				out[path] = *typed
			}
		}
	}
}

var _ flagsource.Source = (*Source)(nil)
