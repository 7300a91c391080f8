package navctx

import (
	"context"
	"testing"

	"github.com/goliatone/go-navfilter/nav"
)

func TestRoundTrip(t *testing.T) {
	account := &nav.Account{ID: "u1", IsOrgAdmin: true}
	flags := nav.FlagSet{"beta": true}

	ctx := context.Background()
	ctx = WithAccount(ctx, account)
	ctx = WithPlatform(ctx, nav.PlatformMobile)
	ctx = WithFlags(ctx, flags)

	if got := Account(ctx); got != account {
		t.Fatalf("expected stored account back, got %+v", got)
	}
	if got := Platform(ctx); got != nav.PlatformMobile {
		t.Fatalf("expected mobile platform, got %q", got)
	}
	if got := Flags(ctx); !got.Enabled("beta") {
		t.Fatalf("expected stored flags back, got %+v", got)
	}
}

func TestWithPlatformNormalizes(t *testing.T) {
	ctx := WithPlatform(context.Background(), nav.Platform("  WEB "))
	if got := Platform(ctx); got != nav.PlatformWeb {
		t.Fatalf("expected normalized platform, got %q", got)
	}
}

func TestEmptyContext(t *testing.T) {
	ctx := context.Background()
	if Account(ctx) != nil {
		t.Fatalf("expected nil account on bare context")
	}
	if Platform(ctx) != "" {
		t.Fatalf("expected empty platform on bare context")
	}
	if Flags(ctx) != nil {
		t.Fatalf("expected nil flags on bare context")
	}
}

func TestViewerFromContext(t *testing.T) {
	account := &nav.Account{ID: "u1"}
	ctx := WithFlags(WithPlatform(WithAccount(context.Background(), account), nav.PlatformWeb), nav.FlagSet{"x": true})

	viewer := ViewerFromContext(ctx)
	if viewer.Account != account || viewer.Platform != nav.PlatformWeb || !viewer.Flags.Enabled("x") {
		t.Fatalf("unexpected viewer: %+v", viewer)
	}

	empty := ViewerFromContext(context.Background())
	if empty.Account != nil || empty.Platform != "" || empty.Flags != nil {
		t.Fatalf("expected zero viewer from bare context, got %+v", empty)
	}
}
