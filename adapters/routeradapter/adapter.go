// Package routeradapter bridges go-router request contexts to the
// navigation filter's viewer inputs.
package routeradapter

import (
	"context"

	"github.com/goliatone/go-router"

	"github.com/goliatone/go-navfilter/nav"
	"github.com/goliatone/go-navfilter/navctx"
)

// Context extracts the standard context from a router context.
func Context(ctx router.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx.Context()
}

// Viewer assembles the viewer staged in the request context by upstream
// middleware (see navctx).
func Viewer(ctx router.Context) nav.Viewer {
	return navctx.ViewerFromContext(Context(ctx))
}

// Account extracts the staged account from a router context.
func Account(ctx router.Context) *nav.Account {
	return navctx.Account(Context(ctx))
}
