package naverrors

import (
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestWrapSentinelPreservesIsAndMetadata(t *testing.T) {
	err := WrapSentinel(ErrBuilderRequired, "", map[string]any{
		MetaItemID: "settings-billing",
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, ErrBuilderRequired) {
		t.Fatalf("expected errors.Is to match sentinel")
	}
	rich, ok := As(err)
	if !ok {
		t.Fatalf("expected rich error")
	}
	if rich.Category != goerrors.CategoryOperation {
		t.Fatalf("unexpected category: %s", rich.Category)
	}
	if rich.TextCode != TextCodeBuilderRequired {
		t.Fatalf("unexpected text code: %s", rich.TextCode)
	}
	if rich.Metadata == nil || rich.Metadata[MetaItemID] != "settings-billing" {
		t.Fatalf("expected metadata to include item id")
	}
}

func TestWrapPlainError(t *testing.T) {
	cause := errors.New("dial timeout")
	err := WrapExternal(cause, TextCodeStoreReadFailed, "flag load failed", map[string]any{
		MetaAdapter: "bun",
	})
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause to stay in the chain")
	}
	if err.Category != goerrors.CategoryExternal || err.TextCode != TextCodeStoreReadFailed {
		t.Fatalf("unexpected classification: %s %s", err.Category, err.TextCode)
	}
}

func TestWrapRichErrorKeepsClassification(t *testing.T) {
	original := NewBadInput(TextCodeInvalidConfig, "bad config", nil)
	err := WrapOperation(original, TextCodeAdapterFailed, "ignored", map[string]any{
		MetaAdapter: "config",
	})
	if err.TextCode != TextCodeInvalidConfig {
		t.Fatalf("existing text code should win, got %s", err.TextCode)
	}
	if err.Metadata == nil || err.Metadata[MetaAdapter] != "config" {
		t.Fatalf("expected metadata merge, got %v", err.Metadata)
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, goerrors.CategoryOperation, TextCodeAdapterFailed, "", nil) != nil {
		t.Fatalf("wrapping nil should stay nil")
	}
}

func TestIsSentinel(t *testing.T) {
	if !IsSentinel(ErrSourceRequired) {
		t.Fatalf("expected sentinel to be recognized")
	}
	if IsSentinel(errors.New("other")) {
		t.Fatalf("foreign errors are not sentinels")
	}
}
