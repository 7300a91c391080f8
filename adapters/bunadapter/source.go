// Package bunadapter loads flag sets from a Bun-managed table, layering
// system, tenant, org, and user scoped rows so narrower scopes win.
package bunadapter

import (
	"context"
	"errors"
	"strings"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-navfilter/flagsource"
	"github.com/goliatone/go-navfilter/nav"
	"github.com/goliatone/go-navfilter/naverrors"
)

// DefaultTable is the default table name for navigation feature flags.
const DefaultTable = "nav_feature_flags"

// ErrDBRequired indicates the underlying Bun DB is missing.
var ErrDBRequired = errors.New("bunadapter: db is required")

// FlagRecord maps to the flag table.
type FlagRecord struct {
	bun.BaseModel `bun:"table:nav_feature_flags"`
	Key           string `bun:"key,pk"`
	ScopeType     string `bun:"scope_type,pk"`
	ScopeID       string `bun:"scope_id,pk"`
	Enabled       bool   `bun:"enabled"`
}

// Source reads flag sets from a Bun table.
type Source struct {
	db    bun.IDB
	table string
}

// Option customizes the Bun source.
type Option func(*Source)

// NewSource constructs a Bun-backed flag source.
func NewSource(db bun.IDB, opts ...Option) *Source {
	source := &Source{db: db, table: DefaultTable}
	for _, opt := range opts {
		if opt != nil {
			opt(source)
		}
	}
	if source.table == "" {
		source.table = DefaultTable
	}
	return source
}

// WithTable sets the table name used for flag rows.
func WithTable(table string) Option {
	return func(source *Source) {
		if source == nil {
			return
		}
		source.table = strings.TrimSpace(table)
	}
}

type scopeRef struct {
	kind string
	id   string
}

// Load implements flagsource.Source.
func (s *Source) Load(ctx context.Context, subject flagsource.Subject) (nav.FlagSet, error) {
	if s == nil || s.db == nil {
		return nil, ErrDBRequired
	}
	out := nav.FlagSet{}
	for _, scope := range layeredScopes(subject) {
		var records []FlagRecord
		query := s.db.NewSelect().Model(&records).
			Where("scope_type = ?", scope.kind).
			Where("scope_id = ?", scope.id)
		if s.table != "" {
			query = query.TableExpr(s.table)
		}
		if err := query.Scan(ctx); err != nil {
			return nil, naverrors.WrapExternal(err, naverrors.TextCodeStoreReadFailed, "bunadapter: flag query failed", map[string]any{
				naverrors.MetaAdapter:   "bun",
				naverrors.MetaTable:     s.table,
				naverrors.MetaScope:     scope.kind,
				naverrors.MetaOperation: "load",
			})
		}
		for _, record := range records {
			key := nav.NormalizeFlagKey(record.Key)
			if key == "" {
				continue
			}
			out[key] = record.Enabled
		}
	}
	return out, nil
}

// layeredScopes orders widest first so narrower rows overwrite on fold.
func layeredScopes(subject flagsource.Subject) []scopeRef {
	scopes := make([]scopeRef, 0, 4)
	scopes = append(scopes, scopeRef{kind: "system"})
	if subject.TenantID != "" {
		scopes = append(scopes, scopeRef{kind: "tenant", id: subject.TenantID})
	}
	if subject.OrgID != "" {
		scopes = append(scopes, scopeRef{kind: "org", id: subject.OrgID})
	}
	if subject.UserID != "" {
		scopes = append(scopes, scopeRef{kind: "user", id: subject.UserID})
	}
	return scopes
}

var _ flagsource.Source = (*Source)(nil)
