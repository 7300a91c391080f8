package policy

import (
	"fmt"

	"github.com/goliatone/go-navfilter/nav"
)

// CheckFunc is a named predicate over an account. A panicking check counts
// as a deny; the panic never crosses the evaluator boundary.
type CheckFunc func(account *nav.Account) bool

// Checks is the lookup table named permission checks resolve against.
type Checks map[string]CheckFunc

// CapabilityCheck builds a CheckFunc that reads a boolean capability off the
// account, covering the common case (e.g. billing management).
func CapabilityCheck(name string) CheckFunc {
	return func(account *nav.Account) bool {
		return account.Capability(name)
	}
}

// CheckFailure reports a check that panicked or was not registered.
type CheckFailure struct {
	Check     string
	Recovered any
}

func (e *CheckFailure) Error() string {
	if e.Recovered != nil {
		return fmt.Sprintf("policy: check %q panicked: %v", e.Check, e.Recovered)
	}
	return fmt.Sprintf("policy: check %q is not registered", e.Check)
}

// PermissionEvaluator decides whether an account satisfies a permission
// rule. It holds no per-call state; one evaluator is safe for concurrent use
// as long as its check table is not mutated after construction.
type PermissionEvaluator struct {
	checks Checks
}

// PermissionOption customizes a PermissionEvaluator.
type PermissionOption func(*PermissionEvaluator)

// WithChecks registers named checks. Later registrations win on key clash.
func WithChecks(checks Checks) PermissionOption {
	return func(e *PermissionEvaluator) {
		if e == nil {
			return
		}
		for name, fn := range checks {
			if fn == nil {
				continue
			}
			e.checks[name] = fn
		}
	}
}

// WithCheck registers a single named check.
func WithCheck(name string, fn CheckFunc) PermissionOption {
	return func(e *PermissionEvaluator) {
		if e == nil || fn == nil {
			return
		}
		e.checks[name] = fn
	}
}

// NewPermissionEvaluator constructs an evaluator with the provided options.
func NewPermissionEvaluator(opts ...PermissionOption) *PermissionEvaluator {
	e := &PermissionEvaluator{checks: Checks{}}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Evaluate applies a permission rule to an account.
//
// A nil rule is always visible. A present rule with a nil account denies:
// unauthenticated viewers never pass permission checks. Malformed rules
// (unknown type, unregistered check) deny.
func (e *PermissionEvaluator) Evaluate(perm *nav.Permission, account *nav.Account) bool {
	visible, _ := e.EvaluateWithFailure(perm, account)
	return visible
}

// EvaluateWithFailure is Evaluate plus the recovered check failure, if any,
// so callers can report it without the evaluator doing I/O.
func (e *PermissionEvaluator) EvaluateWithFailure(perm *nav.Permission, account *nav.Account) (visible bool, failure *CheckFailure) {
	if perm == nil {
		return true, nil
	}
	if account == nil {
		return false, nil
	}
	switch perm.Type {
	case nav.PermissionRole:
		for _, role := range perm.Roles {
			if account.HasRole(role) {
				return true, nil
			}
		}
		return false, nil
	case nav.PermissionCheck:
		return e.runCheck(perm.Check, account)
	default:
		return false, nil
	}
}

func (e *PermissionEvaluator) runCheck(name string, account *nav.Account) (visible bool, failure *CheckFailure) {
	var fn CheckFunc
	if e != nil {
		fn = e.checks[name]
	}
	if fn == nil {
		return false, &CheckFailure{Check: name}
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			visible = false
			failure = &CheckFailure{Check: name, Recovered: recovered}
		}
	}()
	return fn(account), nil
}
