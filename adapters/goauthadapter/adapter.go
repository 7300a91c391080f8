// Package goauthadapter derives nav accounts from go-auth actor contexts so
// the navigation filter plugs straight into go-auth equipped applications.
package goauthadapter

import (
	"context"
	"strings"

	"github.com/goliatone/go-auth"

	"github.com/goliatone/go-navfilter/nav"
)

// ActorExtractor extracts an auth.ActorContext from context.
type ActorExtractor func(context.Context) (*auth.ActorContext, bool)

// RoleMapper applies an auth role string onto the account's role fields.
type RoleMapper func(role string, account *nav.Account)

// Option customizes the account resolver behavior.
type Option func(*AccountResolver)

// AccountResolver builds nav.Account values from go-auth actor context.
type AccountResolver struct {
	extractor ActorExtractor
	roles     RoleMapper
}

// NewAccountResolver builds a resolver using go-auth's actor extractor.
func NewAccountResolver(opts ...Option) *AccountResolver {
	resolver := &AccountResolver{
		extractor: auth.ActorFromContext,
		roles:     DefaultRoleMapper,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(resolver)
		}
	}
	if resolver.extractor == nil {
		resolver.extractor = auth.ActorFromContext
	}
	if resolver.roles == nil {
		resolver.roles = DefaultRoleMapper
	}
	return resolver
}

// WithActorExtractor overrides the actor context extractor.
func WithActorExtractor(extractor ActorExtractor) Option {
	return func(resolver *AccountResolver) {
		if resolver == nil {
			return
		}
		resolver.extractor = extractor
	}
}

// WithRoleMapper overrides the role string mapping.
func WithRoleMapper(mapper RoleMapper) Option {
	return func(resolver *AccountResolver) {
		if resolver == nil {
			return
		}
		resolver.roles = mapper
	}
}

// Resolve derives the account for the current context; nil when no actor is
// present, which the filter reads as an unauthenticated viewer.
func (r *AccountResolver) Resolve(ctx context.Context) *nav.Account {
	if r == nil || r.extractor == nil {
		return nil
	}
	actor, ok := r.extractor(ctx)
	if !ok || actor == nil {
		return nil
	}
	return r.accountFromActor(actor)
}

func (r *AccountResolver) accountFromActor(actor *auth.ActorContext) *nav.Account {
	id := actor.ActorID
	if id == "" {
		id = actor.Subject
	}
	account := &nav.Account{ID: id}
	mapper := r.roles
	if mapper == nil {
		mapper = DefaultRoleMapper
	}
	mapper(actor.Role, account)
	return account
}

// AccountFromContext derives an account using the default resolver.
func AccountFromContext(ctx context.Context) *nav.Account {
	return NewAccountResolver().Resolve(ctx)
}

// DefaultRoleMapper recognizes the conventional go-auth role strings and
// sets the matching derived fields. Unknown roles set nothing, which the
// permission evaluator treats as deny for anything beyond RoleUser.
func DefaultRoleMapper(role string, account *nav.Account) {
	if account == nil {
		return
	}
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "admin", "superadmin":
		account.IsAdmin = true
	case "org_admin", "orgadmin":
		account.IsOrgAdmin = true
	case "org_creator", "orgcreator", "owner":
		account.IsOrgCreator = true
	}
}
