package flagsource

import (
	"context"
	"sync"

	"github.com/goliatone/go-navfilter/nav"
)

type scopeKind string

const (
	scopeSystem scopeKind = "system"
	scopeTenant scopeKind = "tenant"
	scopeOrg    scopeKind = "org"
	scopeUser   scopeKind = "user"
)

type scopeKey struct {
	kind scopeKind
	id   string
}

// Memory is an in-memory Source for tests, examples, and local overrides.
// Values are layered system < tenant < org < user; narrower scopes win.
type Memory struct {
	mu      sync.RWMutex
	entries map[scopeKey]map[string]bool
}

// NewMemory constructs an empty in-memory source.
func NewMemory() *Memory {
	return &Memory{entries: map[scopeKey]map[string]bool{}}
}

// Load implements Source.
func (m *Memory) Load(_ context.Context, subject Subject) (nav.FlagSet, error) {
	out := nav.FlagSet{}
	if m == nil {
		return out, nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, scope := range layeredScopes(subject) {
		for key, value := range m.entries[scope] {
			out[key] = value
		}
	}
	return out, nil
}

// SetSystem sets a system-wide flag value.
func (m *Memory) SetSystem(key string, value bool) {
	m.set(scopeKey{kind: scopeSystem}, key, value)
}

// SetTenant sets a tenant-scoped flag value.
func (m *Memory) SetTenant(tenantID, key string, value bool) {
	m.set(scopeKey{kind: scopeTenant, id: tenantID}, key, value)
}

// SetOrg sets an org-scoped flag value.
func (m *Memory) SetOrg(orgID, key string, value bool) {
	m.set(scopeKey{kind: scopeOrg, id: orgID}, key, value)
}

// SetUser sets a user-scoped flag value.
func (m *Memory) SetUser(userID, key string, value bool) {
	m.set(scopeKey{kind: scopeUser, id: userID}, key, value)
}

// Clear removes all stored values.
func (m *Memory) Clear() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = map[scopeKey]map[string]bool{}
}

func (m *Memory) set(scope scopeKey, key string, value bool) {
	if m == nil {
		return
	}
	normalized := nav.NormalizeFlagKey(key)
	if normalized == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries == nil {
		m.entries = map[scopeKey]map[string]bool{}
	}
	if m.entries[scope] == nil {
		m.entries[scope] = map[string]bool{}
	}
	m.entries[scope][normalized] = value
}

// layeredScopes orders scopes widest first so narrower values overwrite.
func layeredScopes(subject Subject) []scopeKey {
	scopes := make([]scopeKey, 0, 4)
	scopes = append(scopes, scopeKey{kind: scopeSystem})
	if subject.TenantID != "" {
		scopes = append(scopes, scopeKey{kind: scopeTenant, id: subject.TenantID})
	}
	if subject.OrgID != "" {
		scopes = append(scopes, scopeKey{kind: scopeOrg, id: subject.OrgID})
	}
	if subject.UserID != "" {
		scopes = append(scopes, scopeKey{kind: scopeUser, id: subject.UserID})
	}
	return scopes
}

var _ Source = (*Memory)(nil)
