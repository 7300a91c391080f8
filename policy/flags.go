package policy

import "github.com/goliatone/go-navfilter/nav"

// EvaluateFlags applies a flag rule to the supplied flag set.
//
// A nil rule, or a rule whose normalized key set is empty, never gates.
// With RequireAll every key must read true; otherwise one true key is
// enough. Keys absent from the set read as false, so an empty set only
// passes flag-less nodes.
func EvaluateFlags(rule *nav.FlagRule, flags nav.FlagSet) bool {
	if rule == nil {
		return true
	}
	keys := rule.Keys()
	if len(keys) == 0 {
		return true
	}
	if rule.RequireAll {
		for _, key := range keys {
			if !flags.Enabled(key) {
				return false
			}
		}
		return true
	}
	for _, key := range keys {
		if flags.Enabled(key) {
			return true
		}
	}
	return false
}
