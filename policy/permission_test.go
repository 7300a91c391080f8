package policy

import (
	"testing"

	"github.com/goliatone/go-navfilter/nav"
)

func TestEvaluateNilRuleAlwaysVisible(t *testing.T) {
	e := NewPermissionEvaluator()
	if !e.Evaluate(nil, nil) {
		t.Fatalf("nil rule should be visible without an account")
	}
	if !e.Evaluate(nil, &nav.Account{}) {
		t.Fatalf("nil rule should be visible with an account")
	}
}

func TestEvaluateNilAccountDenies(t *testing.T) {
	e := NewPermissionEvaluator(WithCheck("always", func(*nav.Account) bool { return true }))
	cases := []*nav.Permission{
		nav.RequireRoles(nav.RoleUser),
		nav.RequireRoles(nav.RoleAdmin),
		nav.RequireCheck("always"),
	}
	for _, perm := range cases {
		if e.Evaluate(perm, nil) {
			t.Fatalf("rule %+v should deny a nil account", perm)
		}
	}
}

func TestEvaluateRoleOr(t *testing.T) {
	e := NewPermissionEvaluator()
	perm := nav.RequireRoles(nav.RoleAdmin, nav.RoleOrgCreator)

	if !e.Evaluate(perm, &nav.Account{IsOrgCreator: true}) {
		t.Fatalf("one matching role should satisfy the rule")
	}
	if e.Evaluate(perm, &nav.Account{IsOrgAdmin: true}) {
		t.Fatalf("non-listed role should not satisfy the rule")
	}
}

func TestEvaluateUserRoleMatchesAnyAccount(t *testing.T) {
	e := NewPermissionEvaluator()
	if !e.Evaluate(nav.RequireRoles(nav.RoleUser), &nav.Account{}) {
		t.Fatalf("user role should match any authenticated account")
	}
}

func TestEvaluateUnknownRoleDenies(t *testing.T) {
	e := NewPermissionEvaluator()
	perm := nav.RequireRoles(nav.Role("superuser"))
	if e.Evaluate(perm, &nav.Account{IsAdmin: true}) {
		t.Fatalf("unknown role should never match")
	}
}

func TestEvaluateUnknownTypeDenies(t *testing.T) {
	e := NewPermissionEvaluator()
	perm := &nav.Permission{Type: nav.PermissionType("scope"), Roles: []nav.Role{nav.RoleAdmin}}
	if e.Evaluate(perm, &nav.Account{IsAdmin: true}) {
		t.Fatalf("unknown permission type should deny")
	}
}

func TestEvaluateNamedCheck(t *testing.T) {
	e := NewPermissionEvaluator(WithChecks(Checks{
		"billing": CapabilityCheck("billing.manage"),
	}))
	perm := nav.RequireCheck("billing")

	with := &nav.Account{Capabilities: map[string]bool{"billing.manage": true}}
	without := &nav.Account{}
	if !e.Evaluate(perm, with) {
		t.Fatalf("capability holder should pass the check")
	}
	if e.Evaluate(perm, without) {
		t.Fatalf("account without the capability should be denied")
	}
}

func TestEvaluateUnregisteredCheck(t *testing.T) {
	e := NewPermissionEvaluator()
	visible, failure := e.EvaluateWithFailure(nav.RequireCheck("missing"), &nav.Account{IsAdmin: true})
	if visible {
		t.Fatalf("unregistered check should deny")
	}
	if failure == nil || failure.Check != "missing" || failure.Recovered != nil {
		t.Fatalf("expected a not-registered failure, got %+v", failure)
	}
}

func TestEvaluateRecoversFromPanic(t *testing.T) {
	e := NewPermissionEvaluator(WithCheck("explodes", func(*nav.Account) bool {
		panic("boom")
	}))

	visible, failure := e.EvaluateWithFailure(nav.RequireCheck("explodes"), &nav.Account{})
	if visible {
		t.Fatalf("panicking check should deny")
	}
	if failure == nil || failure.Check != "explodes" || failure.Recovered == nil {
		t.Fatalf("expected recovered failure, got %+v", failure)
	}
	if failure.Error() == "" {
		t.Fatalf("failure should describe itself")
	}
}

func TestWithChecksSkipsNilFuncs(t *testing.T) {
	e := NewPermissionEvaluator(WithChecks(Checks{"noop": nil}))
	visible, failure := e.EvaluateWithFailure(nav.RequireCheck("noop"), &nav.Account{})
	if visible || failure == nil {
		t.Fatalf("nil check func should behave like an unregistered check")
	}
}
