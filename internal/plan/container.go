package plan

import (
	"versioned-generator/internal/attrs"
	"versioned-generator/internal/diagnostic"
)

// Container is a fully assembled versioned container: the sorted version
// registry, the items with resolved lifecycles, and the versioned views.
// Everything is read-only after Assemble returns.
type Container struct {
	// Name is the canonical container identifier.
	Name string
	// Kind is the container shape (struct or enum).
	Kind attrs.ContainerKind
	// Doc, Annotations and Unexported are pass-through metadata forwarded
	// verbatim into every generated per-version definition.
	Doc         string
	Annotations []string
	Unexported  bool
	// ConversionName is the identifier used when naming conversion routines.
	ConversionName string
	// SkipConversion suppresses conversion synthesis for the container.
	SkipConversion bool
	// Versions is the registry, sorted ascending.
	Versions []Version
	// Items is the full item list in declaration order.
	Items []Item
	// Views holds the resolved active item set per version, oldest first.
	Views []ContainerVersion
}

// ContainerVersion is the versioned view: the ordered active item set of
// one specific version.
type ContainerVersion struct {
	Version Version
	// Items in original declaration order, never alphabetical, so generated
	// output stays diff-stable as items are added over time.
	Items []ResolvedItem
}

// ResolvedItem is one active item of a versioned view.
type ResolvedItem struct {
	// Identity is the canonical item name.
	Identity string
	// Name is the surface name at this version (differs from Identity
	// after a rename).
	Name string
	// Kind of the item.
	Kind ItemKind
	// TypeExpr is the opaque type expression for emitters.
	TypeExpr string
	// Doc is the item's doc comment.
	Doc string
}

// Lookup returns the resolved item with the given identity, if active.
func (cv *ContainerVersion) Lookup(identity string) (ResolvedItem, bool) {
	for _, it := range cv.Items {
		if it.Identity == identity {
			return it, true
		}
	}

	return ResolvedItem{}, false
}

// Assemble validates a container declaration and resolves it into versioned
// views. It is deterministic and idempotent: the same declaration always
// yields the same views. On any validation error the container is rejected
// as a whole; no partial views are produced.
func Assemble(def *attrs.ContainerDef) (*Container, *diagnostic.Diagnostics) {
	versions, diags := RegisterVersions(def.Name, def.Versions)
	if diags.HasErrors() {
		return nil, diags
	}

	items := make([]Item, 0, len(def.Items))

	for _, itemDef := range def.Items {
		item := newItem(def.Kind, itemDef, versions, def.Name, diags)
		if item != nil {
			items = append(items, item)
		}
	}

	if diags.HasErrors() {
		return nil, diags
	}

	c := &Container{
		Name:           def.Name,
		Kind:           def.Kind,
		Doc:            def.Doc,
		Annotations:    def.Annotations,
		Unexported:     def.Unexported,
		ConversionName: def.ConversionIdent(),
		SkipConversion: def.SkipConversion,
		Versions:       versions,
		Items:          items,
	}

	c.Views = resolveViews(c)

	return c, diags
}

// resolveViews walks the registry oldest to newest and collects, per
// version, the items whose lifecycle makes them active there.
func resolveViews(c *Container) []ContainerVersion {
	views := make([]ContainerVersion, 0, len(c.Versions))

	for _, v := range c.Versions {
		view := ContainerVersion{Version: v}

		for _, item := range c.Items {
			status := item.StatusAt(v.Name)
			if !status.Present() {
				continue
			}

			view.Items = append(view.Items, ResolvedItem{
				Identity: item.Identity(),
				Name:     status.Name,
				Kind:     item.Kind(),
				TypeExpr: item.TypeExpr(),
				Doc:      item.Doc(),
			})
		}

		views = append(views, view)
	}

	return views
}
