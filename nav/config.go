package nav

import (
	"fmt"
	"strings"
)

// ValidationError collects authoring problems found in a Config. The filter
// itself never validates; it degrades to default-deny on malformed rules.
// Validate exists for load-time checks in the owning application.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Problems) == 0 {
		return "nav: invalid config"
	}
	return "nav: invalid config: " + strings.Join(e.Problems, "; ")
}

// Validate checks a config for the common authoring mistakes: missing or
// duplicate IDs, unknown platform tokens, and leaf items with no destination.
// Cyclic child references are a caller contract violation (the model is a
// tree) and are not detected here.
func (c Config) Validate() error {
	v := &validator{seen: map[string]string{}}
	if strings.TrimSpace(c.Version) == "" {
		v.addf("config version is required")
	}
	for i, section := range c.Sections {
		v.section(i, section)
	}
	if len(v.problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: v.problems}
}

type validator struct {
	problems []string
	seen     map[string]string
}

func (v *validator) addf(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *validator) section(index int, section Section) {
	label := fmt.Sprintf("section[%d]", index)
	if id := strings.TrimSpace(section.ID); id == "" {
		v.addf("%s: id is required", label)
	} else {
		label = fmt.Sprintf("section %q", id)
		v.id(id, label)
	}
	v.platforms(label, section.Platforms)
	v.permission(label, section.Permission)
	for i, item := range section.Items {
		v.item(fmt.Sprintf("%s item[%d]", label, i), item)
	}
}

func (v *validator) item(label string, item Item) {
	if id := strings.TrimSpace(item.ID); id == "" {
		v.addf("%s: id is required", label)
	} else {
		label = fmt.Sprintf("item %q", id)
		v.id(id, label)
	}
	v.platforms(label, item.Platforms)
	v.permission(label, item.Permission)
	if len(item.Children) == 0 && item.Href == "" && item.Route == nil && item.Hub == nil {
		v.addf("%s: leaf item has no href, route, or hub payload", label)
	}
	if item.Expandable && len(item.Children) == 0 {
		v.addf("%s: expandable item declares no children", label)
	}
	for i, child := range item.Children {
		v.item(fmt.Sprintf("%s child[%d]", label, i), child)
	}
}

func (v *validator) id(id, label string) {
	if prev, ok := v.seen[id]; ok {
		v.addf("%s: duplicate id (also used by %s)", label, prev)
		return
	}
	v.seen[id] = label
}

func (v *validator) platforms(label string, platforms []Platform) {
	for _, platform := range platforms {
		if !KnownPlatform(platform) {
			v.addf("%s: unknown platform %q", label, platform)
		}
	}
}

func (v *validator) permission(label string, perm *Permission) {
	if perm == nil {
		return
	}
	switch perm.Type {
	case PermissionRole:
		if len(perm.Roles) == 0 {
			v.addf("%s: role permission lists no roles", label)
		}
	case PermissionCheck:
		if strings.TrimSpace(perm.Check) == "" {
			v.addf("%s: check permission names no check", label)
		}
	default:
		v.addf("%s: unknown permission type %q", label, perm.Type)
	}
}
