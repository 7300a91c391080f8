package templates

import (
	"context"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-navfilter/filter"
	"github.com/goliatone/go-navfilter/logger"
	"github.com/goliatone/go-navfilter/nav"
	"github.com/goliatone/go-navfilter/navctx"
)

const (
	TemplateContextKey  = "nav_ctx"
	TemplateViewerKey   = "nav_viewer"
	TemplateSectionsKey = "nav_sections"
)

// HelperConfig configures template helpers.
type HelperConfig struct {
	ContextKey         string
	ViewerKey          string
	SectionsKey        string
	EnableErrorLogging bool
	Logger             logger.Logger
}

// HelperOption configures template helpers.
type HelperOption func(*HelperConfig)

// DefaultHelperConfig returns the default helper configuration.
func DefaultHelperConfig() HelperConfig {
	return HelperConfig{
		ContextKey:  TemplateContextKey,
		ViewerKey:   TemplateViewerKey,
		SectionsKey: TemplateSectionsKey,
	}
}

// WithContextKey overrides the template context key name.
func WithContextKey(key string) HelperOption {
	return func(cfg *HelperConfig) {
		if cfg == nil {
			return
		}
		cfg.ContextKey = strings.TrimSpace(key)
	}
}

// WithViewerKey overrides the template viewer key name.
func WithViewerKey(key string) HelperOption {
	return func(cfg *HelperConfig) {
		if cfg == nil {
			return
		}
		cfg.ViewerKey = strings.TrimSpace(key)
	}
}

// WithSectionsKey overrides the precomputed-sections key name.
func WithSectionsKey(key string) HelperOption {
	return func(cfg *HelperConfig) {
		if cfg == nil {
			return
		}
		cfg.SectionsKey = strings.TrimSpace(key)
	}
}

// WithErrorLogging toggles logging of helper failures.
func WithErrorLogging(enabled bool) HelperOption {
	return func(cfg *HelperConfig) {
		if cfg == nil {
			return
		}
		cfg.EnableErrorLogging = enabled
	}
}

// WithLogger injects a logger for helper error logging.
func WithLogger(lgr logger.Logger) HelperOption {
	return func(cfg *HelperConfig) {
		if cfg == nil {
			return
		}
		cfg.Logger = lgr
	}
}

// TemplateHelpers returns the helper set the rendering surfaces register.
//
// Helpers read, in precedence order: precomputed filtered sections placed in
// template data under SectionsKey, an explicit viewer under ViewerKey, and
// finally viewer values carried by the request context under ContextKey.
func TemplateHelpers(f *filter.Filter, cfg nav.Config, opts ...HelperOption) map[string]any {
	helperCfg := DefaultHelperConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&helperCfg)
		}
	}
	if helperCfg.EnableErrorLogging && helperCfg.Logger == nil {
		helperCfg.Logger = logger.Default()
	}
	helpers := &helperSet{
		filter: f,
		config: cfg,
		cfg:    helperCfg,
	}
	return map[string]any{
		"nav_sections":     helpers.sections,
		"nav_section":      helpers.section,
		"nav_visible":      helpers.visible,
		"nav_href":         helpers.href,
		"nav_active_class": helpers.activeClass,
	}
}

type helperSet struct {
	filter *filter.Filter
	config nav.Config
	cfg    HelperConfig
}

// sections returns the filtered sections for the current render.
func (h *helperSet) sections(execCtx *pongo2.ExecutionContext) []nav.Section {
	if snapshot, ok := h.snapshot(execCtx); ok {
		return snapshot
	}
	f := h.filter
	if f == nil {
		f = filter.New()
	}
	ctx := h.context(execCtx)
	return f.ApplyConfig(ctx, h.config, h.viewer(execCtx, ctx))
}

// section returns a single filtered section by ID, or nil when hidden.
func (h *helperSet) section(execCtx *pongo2.ExecutionContext, id any) *nav.Section {
	wanted, ok := parseID(id)
	if !ok {
		return nil
	}
	for _, section := range h.sections(execCtx) {
		if section.ID == wanted {
			out := section
			return &out
		}
	}
	return nil
}

// visible reports whether a section or item survives filtering.
func (h *helperSet) visible(execCtx *pongo2.ExecutionContext, id any) bool {
	wanted, ok := parseID(id)
	if !ok {
		return false
	}
	for _, section := range h.sections(execCtx) {
		if section.ID == wanted || findItem(section.Items, wanted) != nil {
			return true
		}
	}
	return false
}

// href returns the resolved href for a visible item, or "".
func (h *helperSet) href(execCtx *pongo2.ExecutionContext, id any) string {
	wanted, ok := parseID(id)
	if !ok {
		return ""
	}
	for _, section := range h.sections(execCtx) {
		if item := findItem(section.Items, wanted); item != nil {
			return item.Href
		}
	}
	h.logMiss("nav_href", wanted)
	return ""
}

// activeClass returns on when href matches the current path, off otherwise.
// A trailing match also counts for nested paths ("/settings/billing" under
// "/settings").
func (h *helperSet) activeClass(_ *pongo2.ExecutionContext, currentPath any, href any, on any, off ...any) any {
	var fallback any = ""
	if len(off) > 0 {
		fallback = off[0]
	}
	current, ok := parseID(currentPath)
	if !ok {
		return fallback
	}
	target, ok := parseID(href)
	if !ok {
		return fallback
	}
	if current == target || (target != "/" && strings.HasPrefix(current, target+"/")) {
		return on
	}
	return fallback
}

func (h *helperSet) snapshot(execCtx *pongo2.ExecutionContext) ([]nav.Section, bool) {
	data := templateData(execCtx)
	if data == nil {
		return nil, false
	}
	key := h.cfg.SectionsKey
	if key == "" {
		key = TemplateSectionsKey
	}
	raw, ok := data[key]
	if !ok || raw == nil {
		return nil, false
	}
	switch typed := unwrapValue(raw).(type) {
	case []nav.Section:
		return typed, true
	case *[]nav.Section:
		if typed == nil {
			return nil, false
		}
		return *typed, true
	default:
		return nil, false
	}
}

func (h *helperSet) viewer(execCtx *pongo2.ExecutionContext, ctx context.Context) nav.Viewer {
	data := templateData(execCtx)
	if data != nil {
		key := h.cfg.ViewerKey
		if key == "" {
			key = TemplateViewerKey
		}
		if raw, ok := data[key]; ok && raw != nil {
			if viewer, ok := viewerFromValue(raw); ok {
				return viewer
			}
		}
	}
	return navctx.ViewerFromContext(ctx)
}

func (h *helperSet) context(execCtx *pongo2.ExecutionContext) context.Context {
	data := templateData(execCtx)
	if data == nil {
		return context.Background()
	}
	key := h.cfg.ContextKey
	if key == "" {
		key = TemplateContextKey
	}
	raw, ok := data[key]
	if !ok || raw == nil {
		return context.Background()
	}
	return contextFromValue(raw)
}

func (h *helperSet) logMiss(helper, id string) {
	if !h.cfg.EnableErrorLogging || h.cfg.Logger == nil {
		return
	}
	h.cfg.Logger.Debug("navfilter.helper_miss", "helper", helper, "nav_item_id", id)
}

func findItem(items []nav.Item, id string) *nav.Item {
	for i := range items {
		if items[i].ID == id {
			return &items[i]
		}
		if found := findItem(items[i].Children, id); found != nil {
			return found
		}
	}
	return nil
}

func parseID(value any) (string, bool) {
	switch typed := unwrapValue(value).(type) {
	case string:
		trimmed := strings.TrimSpace(typed)
		return trimmed, trimmed != ""
	default:
		return "", false
	}
}

func viewerFromValue(value any) (nav.Viewer, bool) {
	switch typed := unwrapValue(value).(type) {
	case nav.Viewer:
		return typed, true
	case *nav.Viewer:
		if typed == nil {
			return nav.Viewer{}, false
		}
		return *typed, true
	case map[string]any:
		return viewerFromMap(typed)
	default:
		return nav.Viewer{}, false
	}
}

func viewerFromMap(data map[string]any) (nav.Viewer, bool) {
	if len(data) == 0 {
		return nav.Viewer{}, false
	}
	viewer := nav.Viewer{}
	matched := false
	if raw, ok := data["account"]; ok {
		if account, ok := raw.(*nav.Account); ok {
			viewer.Account = account
			matched = true
		}
	}
	if raw, ok := data["platform"]; ok {
		if platform, ok := raw.(string); ok {
			viewer.Platform = nav.NormalizePlatform(nav.Platform(platform))
			matched = true
		}
	}
	if raw, ok := data["flags"]; ok {
		switch typed := raw.(type) {
		case nav.FlagSet:
			viewer.Flags = typed
			matched = true
		case map[string]bool:
			viewer.Flags = nav.FlagSet(typed)
			matched = true
		}
	}
	return viewer, matched
}

func contextFromValue(value any) context.Context {
	switch typed := unwrapValue(value).(type) {
	case context.Context:
		return typed
	case interface{ Context() context.Context }:
		return typed.Context()
	default:
		return context.Background()
	}
}

func unwrapValue(value any) any {
	if value == nil {
		return nil
	}
	if pv, ok := value.(*pongo2.Value); ok && pv != nil {
		return pv.Interface()
	}
	return value
}

func templateData(execCtx *pongo2.ExecutionContext) map[string]any {
	if execCtx == nil || execCtx.Public == nil {
		return nil
	}
	data := make(map[string]any, len(execCtx.Public))
	for key, value := range execCtx.Public {
		data[key] = value
	}
	return data
}
