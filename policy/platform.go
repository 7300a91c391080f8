package policy

import "github.com/goliatone/go-navfilter/nav"

// MatchPlatform reports whether a node's declared platform set intersects
// the current runtime platform. Platform scoping is opt-in: nodes declaring
// nothing match everywhere, and the wildcard matches every runtime.
func MatchPlatform(declared []nav.Platform, current nav.Platform) bool {
	if len(declared) == 0 {
		return true
	}
	normalized := nav.NormalizePlatform(current)
	for _, platform := range declared {
		switch nav.NormalizePlatform(platform) {
		case nav.PlatformAll, normalized:
			return true
		}
	}
	return false
}
