package policy

import (
	"testing"

	"github.com/goliatone/go-navfilter/nav"
)

func TestMatchPlatformUndeclared(t *testing.T) {
	if !MatchPlatform(nil, nav.PlatformWeb) {
		t.Fatalf("node with no platform list should match everywhere")
	}
	if !MatchPlatform([]nav.Platform{}, nav.PlatformMobile) {
		t.Fatalf("empty platform list should match everywhere")
	}
}

func TestMatchPlatformWildcard(t *testing.T) {
	declared := []nav.Platform{nav.PlatformAll}
	for _, current := range []nav.Platform{nav.PlatformWeb, nav.PlatformMobile, nav.Platform("kiosk")} {
		if !MatchPlatform(declared, current) {
			t.Fatalf("wildcard should match platform %q", current)
		}
	}
}

func TestMatchPlatformExact(t *testing.T) {
	declared := []nav.Platform{nav.PlatformMobile}
	if !MatchPlatform(declared, nav.PlatformMobile) {
		t.Fatalf("mobile node should match mobile runtime")
	}
	if MatchPlatform(declared, nav.PlatformWeb) {
		t.Fatalf("mobile node should not match web runtime")
	}
}

func TestMatchPlatformNormalizes(t *testing.T) {
	declared := []nav.Platform{nav.Platform(" Web ")}
	if !MatchPlatform(declared, nav.Platform("WEB")) {
		t.Fatalf("platform comparison should normalize case and spacing")
	}
}
