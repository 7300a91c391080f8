// Package naverrors centralizes the rich error vocabulary used by the
// adapter ring. The filter itself raises no errors; these cover adapter and
// builder failures at the module boundary.
package naverrors

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	MetaItemID    = "nav_item_id"
	MetaSectionID = "nav_section_id"
	MetaCheck     = "nav_check"
	MetaFlagKey   = "flag_key"
	MetaRoute     = "route"
	MetaGroup     = "route_group"
	MetaAdapter   = "adapter"
	MetaDomain    = "domain"
	MetaTable     = "table"
	MetaScope     = "scope"
	MetaOperation = "operation"
)

const (
	TextCodeConfigRequired     = "NAV_CONFIG_REQUIRED"
	TextCodeFilterRequired     = "NAV_FILTER_REQUIRED"
	TextCodeBuilderRequired    = "URL_BUILDER_REQUIRED"
	TextCodeResolverRequired   = "RESOLVER_REQUIRED"
	TextCodeSourceRequired     = "FLAG_SOURCE_REQUIRED"
	TextCodeStoreRequired      = "STORE_REQUIRED"
	TextCodeAdapterFailed      = "ADAPTER_FAILED"
	TextCodeStoreReadFailed    = "STORE_READ_FAILED"
	TextCodeRouteResolveFailed = "ROUTE_RESOLVE_FAILED"
	TextCodeInvalidConfig      = "NAV_CONFIG_INVALID"
)

var (
	ErrConfigRequired   = newSentinel(goerrors.CategoryOperation, goerrors.CodeInternal, TextCodeConfigRequired, "navigation config is required")
	ErrFilterRequired   = newSentinel(goerrors.CategoryOperation, goerrors.CodeInternal, TextCodeFilterRequired, "navigation filter is required")
	ErrBuilderRequired  = newSentinel(goerrors.CategoryOperation, goerrors.CodeInternal, TextCodeBuilderRequired, "url builder is required")
	ErrResolverRequired = newSentinel(goerrors.CategoryOperation, goerrors.CodeInternal, TextCodeResolverRequired, "resolver is required")
	ErrSourceRequired   = newSentinel(goerrors.CategoryOperation, goerrors.CodeInternal, TextCodeSourceRequired, "flag source is required")
	ErrStoreRequired    = newSentinel(goerrors.CategoryOperation, goerrors.CodeInternal, TextCodeStoreRequired, "store is required")
)

func newSentinel(category goerrors.Category, code int, textCode, message string) *goerrors.Error {
	err := goerrors.New(message, category).WithTextCode(textCode)
	if code != 0 {
		err.WithCode(code)
	}
	return err
}

// IsSentinel reports whether err is one of the package sentinels.
func IsSentinel(err error) bool {
	return err == ErrConfigRequired ||
		err == ErrFilterRequired ||
		err == ErrBuilderRequired ||
		err == ErrResolverRequired ||
		err == ErrSourceRequired ||
		err == ErrStoreRequired
}

// WrapSentinel derives a metadata-carrying error from a sentinel, keeping
// the sentinel as the source for errors.Is-style matching.
func WrapSentinel(sentinel *goerrors.Error, message string, meta map[string]any) *goerrors.Error {
	if sentinel == nil {
		return nil
	}
	if message == "" {
		message = sentinel.Message
	}
	err := goerrors.New(message, sentinel.Category).
		WithTextCode(sentinel.TextCode).
		WithCode(sentinel.Code).
		WithSeverity(sentinel.Severity)
	err.Source = sentinel
	if meta != nil {
		err.WithMetadata(meta)
	}
	return err
}

// Wrap converts an arbitrary error into a rich error with category, text
// code, and metadata. Rich errors are cloned and enriched in place.
func Wrap(err error, category goerrors.Category, textCode, message string, meta map[string]any) *goerrors.Error {
	if err == nil {
		return nil
	}
	if IsSentinel(err) {
		if sentinel, ok := err.(*goerrors.Error); ok {
			return WrapSentinel(sentinel, "", meta)
		}
	}
	if rich, ok := err.(*goerrors.Error); ok {
		clone := rich.Clone()
		if clone.TextCode == "" && textCode != "" {
			clone.TextCode = textCode
		}
		if clone.Message == "" && message != "" {
			clone.Message = message
		}
		if meta != nil {
			clone.WithMetadata(meta)
		}
		return clone
	}
	if message == "" {
		message = err.Error()
	}
	wrapped := goerrors.New(message, category).WithTextCode(textCode)
	wrapped.Source = err
	if meta != nil {
		wrapped.WithMetadata(meta)
	}
	return wrapped
}

// New builds a rich error from scratch.
func New(category goerrors.Category, textCode, message string, meta map[string]any) *goerrors.Error {
	err := goerrors.New(message, category).WithTextCode(textCode)
	if meta != nil {
		err.WithMetadata(meta)
	}
	return err
}

func NewBadInput(textCode, message string, meta map[string]any) *goerrors.Error {
	return New(goerrors.CategoryBadInput, textCode, message, meta)
}

func WrapBadInput(err error, textCode, message string, meta map[string]any) *goerrors.Error {
	return Wrap(err, goerrors.CategoryBadInput, textCode, message, meta)
}

func NewOperation(textCode, message string, meta map[string]any) *goerrors.Error {
	return New(goerrors.CategoryOperation, textCode, message, meta)
}

func WrapOperation(err error, textCode, message string, meta map[string]any) *goerrors.Error {
	return Wrap(err, goerrors.CategoryOperation, textCode, message, meta)
}

func NewExternal(textCode, message string, meta map[string]any) *goerrors.Error {
	return New(goerrors.CategoryExternal, textCode, message, meta)
}

func WrapExternal(err error, textCode, message string, meta map[string]any) *goerrors.Error {
	return Wrap(err, goerrors.CategoryExternal, textCode, message, meta)
}

// As extracts the rich error from an error chain.
func As(err error) (*goerrors.Error, bool) {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return rich, true
	}
	return nil, false
}
