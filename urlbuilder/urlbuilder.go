// Package urlbuilder resolves route references on filtered navigation trees
// into concrete hrefs. Resolution runs after filtering so hidden nodes never
// cost a lookup.
package urlbuilder

import (
	"github.com/goliatone/go-navfilter/nav"
	"github.com/goliatone/go-navfilter/naverrors"
)

// Builder resolves group/route pairs into URLs.
type Builder interface {
	Resolve(groupPath, route string, params map[string]any, query map[string]string) (string, error)
}

// Apply walks the sections and fills Href on every item carrying a Route
// and no literal Href. The input is not mutated; a new tree is returned.
// The first resolution failure aborts and is returned enriched.
func Apply(builder Builder, sections []nav.Section) ([]nav.Section, error) {
	if builder == nil {
		return nil, naverrors.WrapSentinel(naverrors.ErrBuilderRequired, "", map[string]any{
			naverrors.MetaOperation: "apply",
		})
	}
	out := make([]nav.Section, len(sections))
	for i, section := range sections {
		items, err := applyItems(builder, section.Items)
		if err != nil {
			return nil, err
		}
		section.Items = items
		out[i] = section
	}
	return out, nil
}

func applyItems(builder Builder, items []nav.Item) ([]nav.Item, error) {
	if len(items) == 0 {
		return nil, nil
	}
	out := make([]nav.Item, len(items))
	for i, item := range items {
		if item.Route != nil && item.Href == "" {
			href, err := builder.Resolve(item.Route.Group, item.Route.Name, item.Route.Params, item.Route.Query)
			if err != nil {
				return nil, naverrors.WrapExternal(err, naverrors.TextCodeRouteResolveFailed, "url resolution failed", map[string]any{
					naverrors.MetaItemID: item.ID,
					naverrors.MetaGroup:  item.Route.Group,
					naverrors.MetaRoute:  item.Route.Name,
				})
			}
			item.Href = href
		}
		children, err := applyItems(builder, item.Children)
		if err != nil {
			return nil, err
		}
		item.Children = children
		out[i] = item
	}
	return out, nil
}
