package nav

import "strings"

// Platform identifies a rendering surface runtime.
type Platform string

const (
	PlatformWeb    Platform = "web"
	PlatformMobile Platform = "mobile"
	// PlatformAll is the wildcard: a node declaring it matches every runtime.
	PlatformAll Platform = "all"
)

// NormalizePlatform trims and lowercases a platform token.
func NormalizePlatform(p Platform) Platform {
	return Platform(strings.ToLower(strings.TrimSpace(string(p))))
}

// KnownPlatform reports whether the token is one of the declared platforms.
func KnownPlatform(p Platform) bool {
	switch NormalizePlatform(p) {
	case PlatformWeb, PlatformMobile, PlatformAll:
		return true
	}
	return false
}

// Role identifies a derived account role referenced by permission rules.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleOrgAdmin   Role = "orgAdmin"
	RoleOrgCreator Role = "orgCreator"
	// RoleUser matches any authenticated account.
	RoleUser Role = "user"
)

// PermissionType tags the variant of a permission rule.
type PermissionType string

const (
	// PermissionRole grants access when the account holds any listed role.
	PermissionRole PermissionType = "role"
	// PermissionCheck grants access when the named predicate passes.
	PermissionCheck PermissionType = "check"
)

// Permission is a declarative visibility rule. A nil Permission on a node
// means the node is always permission-visible. Custom logic is referenced by
// name and resolved against a check registry rather than embedded in the
// configuration value.
type Permission struct {
	Type  PermissionType
	Roles []Role
	Check string
}

// RequireRoles builds a role-variant permission.
func RequireRoles(roles ...Role) *Permission {
	return &Permission{Type: PermissionRole, Roles: roles}
}

// RequireCheck builds a check-variant permission referencing a named predicate.
func RequireCheck(name string) *Permission {
	return &Permission{Type: PermissionCheck, Check: name}
}

// FlagRule gates a node on feature flags. Keys are OR-combined unless
// RequireAll is set. A nil rule or an empty key set never gates.
type FlagRule struct {
	Flags      []string
	RequireAll bool
}

// Keys returns the normalized, non-empty flag keys in declaration order.
func (r *FlagRule) Keys() []string {
	if r == nil || len(r.Flags) == 0 {
		return nil
	}
	keys := make([]string, 0, len(r.Flags))
	for _, key := range r.Flags {
		if normalized := NormalizeFlagKey(key); normalized != "" {
			keys = append(keys, normalized)
		}
	}
	return keys
}

// FlagSet is the flat flag-key to value map supplied per evaluation call.
// The engine never persists or mutates it.
type FlagSet map[string]bool

// Enabled reports the value for a key; absent keys read as false.
func (s FlagSet) Enabled(key string) bool {
	if len(s) == 0 {
		return false
	}
	return s[NormalizeFlagKey(key)]
}

// NormalizeFlagKey trims surrounding whitespace from a flag key.
func NormalizeFlagKey(key string) string {
	return strings.TrimSpace(key)
}

// Badge is a small decorative marker rendered next to a label. Pass-through;
// the engine does not interpret it.
type Badge struct {
	Text    string
	Variant string
}

// RouteRef names a route to be resolved into an Href by a urlbuilder.Builder
// after filtering. Items may declare either Href or Route.
type RouteRef struct {
	Group  string
	Name   string
	Params map[string]any
	Query  map[string]string
}

// HubConfig is a descriptive payload consumed verbatim by hub-card renderers.
type HubConfig struct {
	Title       string
	Description string
	Columns     int
}

// SecondarySidebar is a descriptive payload for in-section sidebars.
type SecondarySidebar struct {
	Title     string
	ShowTitle bool
}

// Item is a navigation tree node. Children recurse to arbitrary depth;
// policy semantics are identical at every level.
type Item struct {
	ID         string
	Label      string
	Icon       string
	Href       string
	Route      *RouteRef
	Badge      *Badge
	Permission *Permission
	Flags      *FlagRule
	Platforms  []Platform
	Disabled   bool
	Order      int
	Expandable bool
	Children   []Item

	// Descriptive payloads, passed through unevaluated.
	Hub              *HubConfig
	SecondarySidebar *SecondarySidebar
}

// Section is a named group of items. Sections carry the same policy fields
// as items and are evaluated with identical semantics.
type Section struct {
	ID         string
	Label      string
	Icon       string
	Permission *Permission
	Flags      *FlagRule
	Platforms  []Platform
	Disabled   bool
	Order      int
	Items      []Item
}

// Config is the immutable navigation tree supplied to the filter. It is
// constructed once, externally, and must not be mutated afterwards; the
// filter never writes to it.
type Config struct {
	Version  string
	Metadata map[string]any
	Sections []Section
}

// Account is the read-only role surface supplied by the auth collaborator.
// Capabilities carries the fields named predicates evaluate against.
type Account struct {
	ID           string
	IsAdmin      bool
	IsOrgAdmin   bool
	IsOrgCreator bool
	Capabilities map[string]bool
}

// HasRole reports whether the account satisfies a single role identifier.
// Unknown roles are false; RoleUser is true for any non-nil account.
func (a *Account) HasRole(role Role) bool {
	if a == nil {
		return false
	}
	switch role {
	case RoleAdmin:
		return a.IsAdmin
	case RoleOrgAdmin:
		return a.IsOrgAdmin
	case RoleOrgCreator:
		return a.IsOrgCreator
	case RoleUser:
		return true
	default:
		return false
	}
}

// Capability reports a named capability flag on the account.
func (a *Account) Capability(name string) bool {
	if a == nil || len(a.Capabilities) == 0 {
		return false
	}
	return a.Capabilities[strings.TrimSpace(name)]
}

// Viewer is the full evaluation context for one filter call: who is looking,
// from which platform, with which flag values. Supplied fresh per call.
type Viewer struct {
	Account  *Account
	Platform Platform
	Flags    FlagSet
}
