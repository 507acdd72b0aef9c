package plan

import (
	"fmt"
	"sort"

	"versioned-generator/internal/attrs"
	"versioned-generator/internal/common"
	"versioned-generator/internal/diagnostic"
)

// ItemKind distinguishes record fields from union variants.
type ItemKind int

const (
	ItemField ItemKind = iota
	ItemVariant
)

// String returns a human-readable kind name.
func (k ItemKind) String() string {
	switch k {
	case ItemField:
		return "field"
	case ItemVariant:
		return "variant"
	default:
		return common.UnknownStr
	}
}

// StatusKind describes what happened to an item at one specific version.
type StatusKind int

const (
	// StatusNotPresent - the item has not been introduced yet.
	StatusNotPresent StatusKind = iota
	// StatusAdded - the item is introduced at this version.
	StatusAdded
	// StatusRenamed - the item changes surface name at this version.
	StatusRenamed
	// StatusNoChange - the item carries over unchanged.
	StatusNoChange
	// StatusDeprecated - the item is retired at or before this version.
	StatusDeprecated
)

// String returns a human-readable status name.
func (k StatusKind) String() string {
	switch k {
	case StatusNotPresent:
		return "not_present"
	case StatusAdded:
		return "added"
	case StatusRenamed:
		return "renamed"
	case StatusNoChange:
		return "no_change"
	case StatusDeprecated:
		return "deprecated"
	default:
		return common.UnknownStr
	}
}

// ItemStatus is an item's resolved state at one version.
type ItemStatus struct {
	// Kind of lifecycle event in effect at this version.
	Kind StatusKind
	// Name is the effective surface name at this version. For deprecated
	// items this is the last name the item carried while still active, so
	// conversions out of the previous version can still reference it.
	Name string
	// From is the previous surface name; set only for StatusRenamed.
	From string
}

// Present returns true if the item belongs to the active set at this version.
func (s ItemStatus) Present() bool {
	switch s.Kind {
	case StatusAdded, StatusRenamed, StatusNoChange:
		return true
	default:
		return false
	}
}

// Item is a named member of a versioned container with a resolved
// per-version lifecycle. The two implementations are Field (record member)
// and Variant (union member); the engine treats them uniformly and only
// consults NeedsDefaultOnAdd where they differ.
type Item interface {
	// Identity returns the canonical name, stable across renames.
	Identity() string
	// Kind returns the item kind.
	Kind() ItemKind
	// TypeExpr returns the opaque type expression forwarded to emitters.
	TypeExpr() string
	// DefaultExpr returns the declared default-value expression, or "".
	DefaultExpr() string
	// Doc returns the item's doc comment, or "".
	Doc() string
	// DeprecationNote returns the note attached to the deprecation, or "".
	DeprecationNote() string
	// NeedsDefaultOnAdd reports whether a conversion into the version that
	// introduces this item must synthesize a value for it.
	NeedsDefaultOnAdd() bool
	// StatusAt returns the resolved status at the named version.
	StatusAt(version string) ItemStatus
}

// itemBase carries the declaration and the resolved status chain shared by
// both item kinds.
type itemBase struct {
	def   attrs.ItemDef
	chain map[string]ItemStatus
}

func (b *itemBase) Identity() string        { return b.def.Name }
func (b *itemBase) TypeExpr() string        { return b.def.Type }
func (b *itemBase) DefaultExpr() string     { return b.def.Default }
func (b *itemBase) Doc() string             { return b.def.Doc }
func (b *itemBase) DeprecationNote() string { return b.def.DeprecationNote }

func (b *itemBase) StatusAt(version string) ItemStatus {
	return b.chain[version]
}

// Field is a record member.
type Field struct {
	itemBase
}

func (f *Field) Kind() ItemKind { return ItemField }

// NeedsDefaultOnAdd is true for fields: a conversion into the version that
// introduces a field has no source value and must synthesize one.
func (f *Field) NeedsDefaultOnAdd() bool { return true }

// Variant is a tagged-union member.
type Variant struct {
	itemBase
}

func (v *Variant) Kind() ItemKind { return ItemVariant }

// NeedsDefaultOnAdd is false for variants: a value of the source version can
// never hold a variant that did not exist yet, so nothing is synthesized.
func (v *Variant) NeedsDefaultOnAdd() bool { return false }

// newItem builds an item with its full status chain over the given version
// sequence, validating the action timeline as it goes. Returns nil if the
// timeline is invalid; the problems are recorded in diags.
func newItem(kind attrs.ContainerKind, def attrs.ItemDef, versions []Version,
	container string, diags *diagnostic.Diagnostics,
) Item {
	chain := buildChain(def, versions, container, diags)
	if chain == nil {
		return nil
	}

	base := itemBase{def: def, chain: chain}

	if kind == attrs.KindEnum {
		return &Variant{itemBase: base}
	}

	return &Field{itemBase: base}
}

// rename is a resolved rename action, keyed by version index.
type rename struct {
	at int
	to string
}

// buildChain resolves the action timeline into one status per version,
// walking versions ascending and carrying the running surface name forward.
func buildChain(def attrs.ItemDef, versions []Version, container string,
	diags *diagnostic.Diagnostics,
) map[string]ItemStatus {
	addedAt, depAt := -1, -1
	ok := true

	if def.AddedIn != "" {
		if addedAt = findVersion(versions, def.AddedIn); addedAt < 0 {
			diags.AddError("unknown_version_reference",
				fmt.Sprintf("item %q added in undeclared version %q", def.Name, def.AddedIn),
				container, def.Name)

			ok = false
		}
	}

	if def.DeprecatedIn != "" {
		if depAt = findVersion(versions, def.DeprecatedIn); depAt < 0 {
			diags.AddError("unknown_version_reference",
				fmt.Sprintf("item %q deprecated in undeclared version %q", def.Name, def.DeprecatedIn),
				container, def.Name)

			ok = false
		}
	}

	renames := make([]rename, 0, len(def.RenamedIn))

	for _, r := range def.RenamedIn {
		at := findVersion(versions, r.In)
		if at < 0 {
			diags.AddError("unknown_version_reference",
				fmt.Sprintf("item %q renamed in undeclared version %q", def.Name, r.In),
				container, def.Name)

			ok = false

			continue
		}

		renames = append(renames, rename{at: at, to: r.To})
	}

	if !ok {
		return nil
	}

	if !validateLifecycle(def, addedAt, depAt, renames, container, diags) {
		return nil
	}

	sort.Slice(renames, func(i, j int) bool { return renames[i].at < renames[j].at })

	renameAt := map[int]string{}
	for _, r := range renames {
		renameAt[r.at] = r.to
	}

	chain := make(map[string]ItemStatus, len(versions))
	running := def.Name

	for i, v := range versions {
		switch {
		case addedAt >= 0 && i < addedAt:
			chain[v.Name] = ItemStatus{Kind: StatusNotPresent}

		case depAt >= 0 && i >= depAt:
			chain[v.Name] = ItemStatus{Kind: StatusDeprecated, Name: running}

		default:
			if to, renamed := renameAt[i]; renamed {
				chain[v.Name] = ItemStatus{Kind: StatusRenamed, Name: to, From: running}
				running = to
			} else if i == addedAt {
				chain[v.Name] = ItemStatus{Kind: StatusAdded, Name: running}
			} else {
				chain[v.Name] = ItemStatus{Kind: StatusNoChange, Name: running}
			}
		}
	}

	return chain
}

// validateLifecycle enforces the semantic rules on a single item timeline:
// an item must be present in at least one version, renames happen strictly
// between introduction and retirement, and a deprecation is terminal.
func validateLifecycle(def attrs.ItemDef, addedAt, depAt int, renames []rename,
	container string, diags *diagnostic.Diagnostics,
) bool {
	ok := true

	invalid := func(msg string) {
		diags.AddError("invalid_lifecycle",
			fmt.Sprintf("item %q %s", def.Name, msg), container, def.Name)

		ok = false
	}

	if depAt >= 0 {
		if depAt == addedAt {
			invalid(fmt.Sprintf("is added and deprecated in the same version %q; it must be present in at least one version", def.DeprecatedIn))
		} else if depAt < addedAt {
			invalid(fmt.Sprintf("is deprecated in %q before being added in %q", def.DeprecatedIn, def.AddedIn))
		} else if addedAt < 0 && depAt == 0 {
			invalid(fmt.Sprintf("is deprecated in the first version %q; it must be present in at least one version", def.DeprecatedIn))
		}
	}

	seenRename := map[int]struct{}{}

	for _, r := range renames {
		if _, dup := seenRename[r.at]; dup {
			invalid("is renamed more than once in the same version")
			continue
		}

		seenRename[r.at] = struct{}{}

		if addedAt >= 0 && r.at <= addedAt {
			invalid(fmt.Sprintf("is renamed at or before its introduction in %q; declare it with the final name instead", def.AddedIn))
		}

		if depAt >= 0 && r.at >= depAt {
			invalid(fmt.Sprintf("is renamed at or after its deprecation in %q", def.DeprecatedIn))
		}
	}

	return ok
}
