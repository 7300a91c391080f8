// Package navctx carries the viewer inputs — account, platform, flag set —
// through context.Context so transport layers can stage them once per
// request and consumers can rebuild a nav.Viewer at render time.
package navctx

import (
	"context"

	"github.com/goliatone/go-navfilter/nav"
)

type contextKey string

const (
	accountKey  contextKey = "navfilter.account"
	platformKey contextKey = "navfilter.platform"
	flagsKey    contextKey = "navfilter.flags"
)

// WithAccount stores the viewer account in context.
func WithAccount(ctx context.Context, account *nav.Account) context.Context {
	return context.WithValue(ctx, accountKey, account)
}

// WithPlatform stores the runtime platform in context.
func WithPlatform(ctx context.Context, platform nav.Platform) context.Context {
	return context.WithValue(ctx, platformKey, nav.NormalizePlatform(platform))
}

// WithFlags stores the flag set in context.
func WithFlags(ctx context.Context, flags nav.FlagSet) context.Context {
	return context.WithValue(ctx, flagsKey, flags)
}

// Account extracts the account from context; nil when absent.
func Account(ctx context.Context) *nav.Account {
	if ctx == nil {
		return nil
	}
	account, _ := ctx.Value(accountKey).(*nav.Account)
	return account
}

// Platform extracts the platform from context; empty when absent.
func Platform(ctx context.Context) nav.Platform {
	if ctx == nil {
		return ""
	}
	platform, _ := ctx.Value(platformKey).(nav.Platform)
	return platform
}

// Flags extracts the flag set from context; nil when absent.
func Flags(ctx context.Context) nav.FlagSet {
	if ctx == nil {
		return nil
	}
	flags, _ := ctx.Value(flagsKey).(nav.FlagSet)
	return flags
}

// ViewerFromContext assembles a nav.Viewer from context values. Missing
// values stay zero, which the filter treats as the most restrictive
// interpretation.
func ViewerFromContext(ctx context.Context) nav.Viewer {
	if ctx == nil {
		return nav.Viewer{}
	}
	return nav.Viewer{
		Account:  Account(ctx),
		Platform: Platform(ctx),
		Flags:    Flags(ctx),
	}
}
