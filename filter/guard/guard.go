// Package guard turns navigation visibility into access control for route
// handlers: a destination hidden from a viewer's navigation can also be
// denied when reached by direct URL.
package guard

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-navfilter/filter"
	"github.com/goliatone/go-navfilter/nav"
)

// ErrNavDenied is returned when an item is not visible and no custom error
// is provided.
var ErrNavDenied = errors.New("navigation item not visible")

// DeniedError includes the denied item ID and unwraps to ErrNavDenied.
type DeniedError struct {
	ID string
}

func (e DeniedError) Error() string {
	if e.ID == "" {
		return ErrNavDenied.Error()
	}
	return fmt.Sprintf("%s: %s", ErrNavDenied.Error(), e.ID)
}

func (e DeniedError) Unwrap() error {
	return ErrNavDenied
}

// Option configures Require behavior.
type Option func(*config)

type config struct {
	deniedErr   error
	errorMapper func(error) error
}

// WithDeniedError sets the error returned when the item is not visible.
func WithDeniedError(err error) Option {
	return func(c *config) {
		if c == nil {
			return
		}
		c.deniedErr = err
	}
}

// WithErrorMapper transforms the denial error before returning it.
func WithErrorMapper(mapper func(error) error) Option {
	return func(c *config) {
		if c == nil {
			return
		}
		c.errorMapper = mapper
	}
}

// Require filters the sections for the viewer and returns an error unless
// the identified section or item survives. A nil filter uses defaults.
func Require(ctx context.Context, f *filter.Filter, sections []nav.Section, viewer nav.Viewer, id string, opts ...Option) error {
	cfg := &config{}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	if f == nil {
		f = filter.New()
	}
	if Visible(ctx, f, sections, viewer, id) {
		return nil
	}

	err := error(DeniedError{ID: id})
	if cfg.deniedErr != nil {
		err = cfg.deniedErr
	}
	if cfg.errorMapper != nil {
		return cfg.errorMapper(err)
	}
	return err
}

// Visible reports whether the identified node survives filtering.
func Visible(ctx context.Context, f *filter.Filter, sections []nav.Section, viewer nav.Viewer, id string) bool {
	if f == nil {
		f = filter.New()
	}
	for _, section := range f.Apply(ctx, sections, viewer) {
		if section.ID == id {
			return true
		}
		if containsItem(section.Items, id) {
			return true
		}
	}
	return false
}

func containsItem(items []nav.Item, id string) bool {
	for _, item := range items {
		if item.ID == id {
			return true
		}
		if containsItem(item.Children, id) {
			return true
		}
	}
	return false
}
