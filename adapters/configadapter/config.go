// Package configadapter builds navigation trees from the nested maps that
// go-config yields, so the tree can live next to the rest of the
// application configuration. The adapter only shapes data; policy semantics
// stay in the filter.
package configadapter

import (
	"strings"

	"github.com/goliatone/go-config/config"

	"github.com/goliatone/go-navfilter/nav"
)

// NewConfig builds a nav.Config from a nested map. Missing optional fields
// stay zero; unknown keys are ignored. Callers wanting authoring checks run
// nav.Config.Validate on the result.
func NewConfig(data map[string]any) nav.Config {
	cfg := nav.Config{}
	if len(data) == 0 {
		return cfg
	}
	if version, ok := stringValue(data["version"]); ok {
		cfg.Version = version
	}
	if metadata, ok := data["metadata"].(map[string]any); ok && len(metadata) > 0 {
		cfg.Metadata = metadata
	}
	for _, raw := range listValue(data["sections"]) {
		section, ok := sectionFromValue(raw)
		if !ok {
			continue
		}
		cfg.Sections = append(cfg.Sections, section)
	}
	return cfg
}

func sectionFromValue(value any) (nav.Section, bool) {
	data, ok := value.(map[string]any)
	if !ok || len(data) == 0 {
		return nav.Section{}, false
	}
	section := nav.Section{}
	section.ID, _ = stringValue(data["id"])
	section.Label, _ = stringValue(data["label"])
	section.Icon, _ = stringValue(data["icon"])
	section.Order = intValue(data["order"])
	section.Disabled = boolValue(data["disabled"])
	section.Platforms = platformsFromValue(data["platforms"])
	section.Permission = permissionFromValue(data["permission"])
	section.Flags = flagRuleFromValue(data["feature_flags"])
	for _, raw := range listValue(data["items"]) {
		if item, ok := itemFromValue(raw); ok {
			section.Items = append(section.Items, item)
		}
	}
	return section, section.ID != "" || len(section.Items) > 0
}

func itemFromValue(value any) (nav.Item, bool) {
	data, ok := value.(map[string]any)
	if !ok || len(data) == 0 {
		return nav.Item{}, false
	}
	item := nav.Item{}
	item.ID, _ = stringValue(data["id"])
	item.Label, _ = stringValue(data["label"])
	item.Icon, _ = stringValue(data["icon"])
	item.Href, _ = stringValue(data["href"])
	item.Order = intValue(data["order"])
	item.Disabled = boolValue(data["disabled"])
	item.Expandable = boolValue(data["expandable"])
	item.Platforms = platformsFromValue(data["platforms"])
	item.Permission = permissionFromValue(data["permission"])
	item.Flags = flagRuleFromValue(data["feature_flags"])
	item.Route = routeFromValue(data["route"])
	item.Badge = badgeFromValue(data["badge"])
	item.Hub = hubFromValue(data["hub"])
	item.SecondarySidebar = sidebarFromValue(data["secondary_sidebar"])
	for _, raw := range listValue(data["children"]) {
		if child, ok := itemFromValue(raw); ok {
			item.Children = append(item.Children, child)
		}
	}
	return item, item.ID != ""
}

func permissionFromValue(value any) *nav.Permission {
	data, ok := value.(map[string]any)
	if !ok || len(data) == 0 {
		return nil
	}
	perm := &nav.Permission{}
	if typed, ok := stringValue(data["type"]); ok {
		perm.Type = nav.PermissionType(typed)
	}
	for _, raw := range listValue(data["roles"]) {
		if role, ok := stringValue(raw); ok {
			perm.Roles = append(perm.Roles, nav.Role(role))
		}
	}
	perm.Check, _ = stringValue(data["check"])

	// Untyped rules infer their variant from the populated field.
	if perm.Type == "" {
		switch {
		case len(perm.Roles) > 0:
			perm.Type = nav.PermissionRole
		case perm.Check != "":
			perm.Type = nav.PermissionCheck
		}
	}
	if perm.Type == "" {
		return nil
	}
	return perm
}

func flagRuleFromValue(value any) *nav.FlagRule {
	data, ok := value.(map[string]any)
	if !ok || len(data) == 0 {
		return nil
	}
	rule := &nav.FlagRule{RequireAll: boolValue(data["require_all"])}
	for _, raw := range listValue(data["flags"]) {
		if key, ok := stringValue(raw); ok {
			rule.Flags = append(rule.Flags, key)
		}
	}
	if len(rule.Flags) == 0 {
		return nil
	}
	return rule
}

func platformsFromValue(value any) []nav.Platform {
	var platforms []nav.Platform
	for _, raw := range listValue(value) {
		if token, ok := stringValue(raw); ok {
			platforms = append(platforms, nav.Platform(token))
		}
	}
	return platforms
}

func routeFromValue(value any) *nav.RouteRef {
	data, ok := value.(map[string]any)
	if !ok || len(data) == 0 {
		return nil
	}
	route := &nav.RouteRef{}
	route.Group, _ = stringValue(data["group"])
	route.Name, _ = stringValue(data["name"])
	if params, ok := data["params"].(map[string]any); ok && len(params) > 0 {
		route.Params = params
	}
	if query, ok := data["query"].(map[string]string); ok && len(query) > 0 {
		route.Query = query
	} else if raw, ok := data["query"].(map[string]any); ok && len(raw) > 0 {
		query := make(map[string]string, len(raw))
		for key, val := range raw {
			if s, ok := stringValue(val); ok {
				query[key] = s
			}
		}
		if len(query) > 0 {
			route.Query = query
		}
	}
	if route.Name == "" {
		return nil
	}
	return route
}

func badgeFromValue(value any) *nav.Badge {
	data, ok := value.(map[string]any)
	if !ok || len(data) == 0 {
		return nil
	}
	badge := &nav.Badge{}
	badge.Text, _ = stringValue(data["text"])
	badge.Variant, _ = stringValue(data["variant"])
	if badge.Text == "" {
		return nil
	}
	return badge
}

func hubFromValue(value any) *nav.HubConfig {
	data, ok := value.(map[string]any)
	if !ok || len(data) == 0 {
		return nil
	}
	hub := &nav.HubConfig{Columns: intValue(data["columns"])}
	hub.Title, _ = stringValue(data["title"])
	hub.Description, _ = stringValue(data["description"])
	return hub
}

func sidebarFromValue(value any) *nav.SecondarySidebar {
	data, ok := value.(map[string]any)
	if !ok || len(data) == 0 {
		return nil
	}
	sidebar := &nav.SecondarySidebar{ShowTitle: boolValue(data["show_title"])}
	sidebar.Title, _ = stringValue(data["title"])
	return sidebar
}

type optionalBool interface {
	IsSet() bool
	Value() bool
}

// boolValue accepts plain booleans plus go-config tri-state OptionalBool
// values, reading unset as false.
func boolValue(value any) bool {
	switch typed := value.(type) {
	case bool:
		return typed
	case *bool:
		return typed != nil && *typed
	case config.OptionalBool:
		return typed.IsSet() && typed.Value()
	case *config.OptionalBool:
		return typed != nil && typed.IsSet() && typed.Value()
	case optionalBool:
		return typed.IsSet() && typed.Value()
	default:
		return false
	}
}

func stringValue(value any) (string, bool) {
	s, ok := value.(string)
	if !ok {
		return "", false
	}
	trimmed := strings.TrimSpace(s)
	return trimmed, trimmed != ""
}

func intValue(value any) int {
	switch typed := value.(type) {
	case int:
		return typed
	case int64:
		return int(typed)
	case float64:
		return int(typed)
	default:
		return 0
	}
}

func listValue(value any) []any {
	switch typed := value.(type) {
	case []any:
		return typed
	case []string:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, item)
		}
		return out
	case []map[string]any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, item)
		}
		return out
	default:
		return nil
	}
}
