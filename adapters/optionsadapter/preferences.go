package optionsadapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-admin/admin"

	"github.com/goliatone/go-navfilter/flagsource"
	"github.com/goliatone/go-navfilter/nav"
)

// ErrPreferencesStoreRequired indicates a missing preferences store.
var ErrPreferencesStoreRequired = fmt.Errorf("optionsadapter: preferences store is required")

// PreferencesOption customizes the preferences-backed source.
type PreferencesOption func(*PreferencesSource)

// PreferencesSource reads navigation flags out of go-admin preferences.
// Keys are stored under a prefix ("nav_flags." by default); non-boolean
// values are ignored.
type PreferencesSource struct {
	store     admin.PreferencesStore
	keyPrefix string
}

// NewPreferencesSource constructs a flag source over a preferences store.
func NewPreferencesSource(store admin.PreferencesStore, opts ...PreferencesOption) *PreferencesSource {
	source := &PreferencesSource{
		store:     store,
		keyPrefix: DefaultDomain,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(source)
		}
	}
	return source
}

// WithKeyPrefix overrides the preference key prefix.
func WithKeyPrefix(prefix string) PreferencesOption {
	return func(source *PreferencesSource) {
		if source == nil {
			return
		}
		source.keyPrefix = strings.TrimSpace(prefix)
	}
}

// Load implements flagsource.Source. Preference levels resolve with the
// store's own precedence; the subject selects which levels participate.
func (s *PreferencesSource) Load(ctx context.Context, subject flagsource.Subject) (nav.FlagSet, error) {
	if s == nil || s.store == nil {
		return nil, ErrPreferencesStoreRequired
	}
	snapshot, err := s.store.Resolve(ctx, admin.PreferencesResolveInput{
		Scope: admin.PreferenceScope{
			TenantID: subject.TenantID,
			OrgID:    subject.OrgID,
			UserID:   subject.UserID,
		},
		Levels: levelsFor(subject),
	})
	if err != nil {
		return nil, err
	}

	prefix := normalizePrefix(s.keyPrefix)
	out := nav.FlagSet{}
	for key, value := range snapshot.Effective {
		if prefix != "" {
			if !strings.HasPrefix(key, prefix) {
				continue
			}
			key = strings.TrimPrefix(key, prefix)
		}
		key = nav.NormalizeFlagKey(key)
		if key == "" {
			continue
		}
		if enabled, ok := value.(bool); ok {
			out[key] = enabled
		}
	}
	return out, nil
}

func levelsFor(subject flagsource.Subject) []admin.PreferenceLevel {
	levels := []admin.PreferenceLevel{admin.PreferenceLevelSystem}
	if subject.TenantID != "" {
		levels = append(levels, admin.PreferenceLevelTenant)
	}
	if subject.OrgID != "" {
		levels = append(levels, admin.PreferenceLevelOrg)
	}
	if subject.UserID != "" {
		levels = append(levels, admin.PreferenceLevelUser)
	}
	return levels
}

func normalizePrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return ""
	}
	if !strings.HasSuffix(prefix, ".") {
		prefix += "."
	}
	return prefix
}

var _ flagsource.Source = (*PreferencesSource)(nil)
