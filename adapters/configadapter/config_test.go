package configadapter

import (
	"testing"

	"github.com/goliatone/go-navfilter/nav"
)

func TestNewConfigFullTree(t *testing.T) {
	cfg := NewConfig(map[string]any{
		"version":  "2",
		"metadata": map[string]any{"source": "app.yaml"},
		"sections": []any{
			map[string]any{
				"id":        "settings",
				"label":     "Settings",
				"order":     2,
				"platforms": []any{"web", "mobile"},
				"items": []any{
					map[string]any{
						"id":    "profile",
						"href":  "/settings/profile",
						"badge": map[string]any{"text": "new", "variant": "info"},
						"permission": map[string]any{
							"type":  "role",
							"roles": []any{"user"},
						},
					},
					map[string]any{
						"id":         "org",
						"expandable": true,
						"feature_flags": map[string]any{
							"flags":       []any{"org-settings", "beta"},
							"require_all": true,
						},
						"children": []any{
							map[string]any{
								"id": "members",
								"route": map[string]any{
									"group":  "settings",
									"name":   "members",
									"params": map[string]any{"org": "current"},
									"query":  map[string]any{"tab": "active"},
								},
							},
						},
					},
				},
			},
		},
	})

	if cfg.Version != "2" {
		t.Fatalf("unexpected version %q", cfg.Version)
	}
	if cfg.Metadata["source"] != "app.yaml" {
		t.Fatalf("expected metadata to carry through")
	}
	if len(cfg.Sections) != 1 {
		t.Fatalf("expected one section, got %d", len(cfg.Sections))
	}

	section := cfg.Sections[0]
	if section.ID != "settings" || section.Order != 2 {
		t.Fatalf("unexpected section %+v", section)
	}
	if len(section.Platforms) != 2 || section.Platforms[0] != nav.PlatformWeb {
		t.Fatalf("unexpected platforms %v", section.Platforms)
	}
	if len(section.Items) != 2 {
		t.Fatalf("expected two items, got %d", len(section.Items))
	}

	profile := section.Items[0]
	if profile.Permission == nil || profile.Permission.Type != nav.PermissionRole || profile.Permission.Roles[0] != nav.RoleUser {
		t.Fatalf("unexpected permission %+v", profile.Permission)
	}
	if profile.Badge == nil || profile.Badge.Text != "new" {
		t.Fatalf("unexpected badge %+v", profile.Badge)
	}

	org := section.Items[1]
	if !org.Expandable {
		t.Fatalf("expected expandable item")
	}
	if org.Flags == nil || !org.Flags.RequireAll || len(org.Flags.Flags) != 2 {
		t.Fatalf("unexpected flag rule %+v", org.Flags)
	}
	if len(org.Children) != 1 {
		t.Fatalf("expected one child, got %d", len(org.Children))
	}
	route := org.Children[0].Route
	if route == nil || route.Group != "settings" || route.Name != "members" {
		t.Fatalf("unexpected route %+v", route)
	}
	if route.Params["org"] != "current" || route.Query["tab"] != "active" {
		t.Fatalf("unexpected route payload %+v", route)
	}
}

func TestNewConfigInfersPermissionType(t *testing.T) {
	cfg := NewConfig(map[string]any{
		"version": "1",
		"sections": []any{
			map[string]any{
				"id": "main",
				"items": []any{
					map[string]any{
						"id":         "admin",
						"href":       "/admin",
						"permission": map[string]any{"roles": []any{"admin"}},
					},
					map[string]any{
						"id":         "billing",
						"href":       "/billing",
						"permission": map[string]any{"check": "billing.manage"},
					},
				},
			},
		},
	})

	items := cfg.Sections[0].Items
	if items[0].Permission.Type != nav.PermissionRole {
		t.Fatalf("expected role inference, got %+v", items[0].Permission)
	}
	if items[1].Permission.Type != nav.PermissionCheck || items[1].Permission.Check != "billing.manage" {
		t.Fatalf("expected check inference, got %+v", items[1].Permission)
	}
}

func TestNewConfigSkipsMalformedEntries(t *testing.T) {
	cfg := NewConfig(map[string]any{
		"version": "1",
		"sections": []any{
			"not-a-map",
			map[string]any{
				"id": "main",
				"items": []any{
					42,
					map[string]any{"href": "/anon"},
					map[string]any{"id": "ok", "href": "/ok"},
				},
			},
		},
	})

	if len(cfg.Sections) != 1 {
		t.Fatalf("expected malformed section to be skipped, got %d", len(cfg.Sections))
	}
	if len(cfg.Sections[0].Items) != 1 || cfg.Sections[0].Items[0].ID != "ok" {
		t.Fatalf("expected only the well-formed item, got %+v", cfg.Sections[0].Items)
	}
}

func TestNewConfigEmptyInput(t *testing.T) {
	cfg := NewConfig(nil)
	if cfg.Version != "" || len(cfg.Sections) != 0 {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}
