package attrs

import "versioned-generator/internal/common"

// SchemaFile represents the root of a YAML schema definition file.
// This is the authoritative, human-edited versioning declaration.
type SchemaFile struct {
	// Version of the schema file format (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Containers is the list of versioned container declarations.
	Containers []ContainerDef `yaml:"containers"`
}

// ContainerKind distinguishes the two supported container shapes.
type ContainerKind string

const (
	// KindStruct is a record container whose items are named fields.
	KindStruct ContainerKind = "struct"
	// KindEnum is a tagged-union container whose items are variants.
	KindEnum ContainerKind = "enum"
)

// IsValid returns true if the kind is a recognized value.
func (k ContainerKind) IsValid() bool {
	return k == KindStruct || k == KindEnum
}

// String returns the kind name.
func (k ContainerKind) String() string {
	if !k.IsValid() {
		return common.UnknownStr
	}

	return string(k)
}

// ContainerDef declares one versioned container: its identity, the versions
// it evolves through, and the items it carries across those versions.
type ContainerDef struct {
	// Name is the canonical identifier of the container.
	Name string `yaml:"name"`

	// Kind selects the container shape. Defaults to "struct".
	Kind ContainerKind `yaml:"kind,omitempty"`

	// Doc is an optional doc comment forwarded into every generated
	// per-version definition.
	Doc string `yaml:"doc,omitempty"`

	// Annotations are pass-through source annotations with no semantic
	// effect on versioning; forwarded verbatim by emitters.
	Annotations []string `yaml:"annotations,omitempty"`

	// Unexported marks the generated definitions as package-private.
	Unexported bool `yaml:"unexported,omitempty"`

	// ConversionName overrides the container name when naming generated
	// conversion routines. Empty means use Name.
	ConversionName string `yaml:"conversion_name,omitempty"`

	// SkipConversion suppresses conversion-routine generation for the
	// whole container.
	SkipConversion bool `yaml:"skip_conversion,omitempty"`

	// Versions is the list of declared versions, in any order; the engine
	// sorts them ascending.
	Versions []VersionDef `yaml:"versions"`

	// Items is the full, version-agnostic item list in declaration order.
	Items []ItemDef `yaml:"items"`
}

// VersionDef declares a single version of a container.
type VersionDef struct {
	// Name is the version identifier, e.g. "v1alpha1", "v1beta2", "v2".
	Name string `yaml:"name"`

	// Deprecated marks the whole version as deprecated. Pass-through
	// metadata; resolution is unaffected.
	Deprecated bool `yaml:"deprecated,omitempty"`

	// SkipConversion suppresses generation of the conversion routine
	// into this version only.
	SkipConversion bool `yaml:"skip_conversion,omitempty"`

	// Doc is an optional doc comment for the generated definition.
	Doc string `yaml:"doc,omitempty"`
}

// ItemDef declares one item (field or variant) and its action timeline.
// An item with no actions is present, unchanged, in every version.
type ItemDef struct {
	// Name is the item's identity: the canonical key used across all
	// versions, even after renames.
	Name string `yaml:"name"`

	// Type is the opaque type expression of the item, forwarded to
	// emitters. Required for fields; optional for unit variants.
	Type string `yaml:"type,omitempty"`

	// Doc is an optional doc comment forwarded to emitters.
	Doc string `yaml:"doc,omitempty"`

	// Default is an optional default-value expression. It is consulted
	// when a conversion must synthesize a value for this item because it
	// was added in the destination version.
	Default string `yaml:"default,omitempty"`

	// AddedIn names the version that introduced the item. Empty means the
	// item exists since the first version.
	AddedIn string `yaml:"added_in,omitempty"`

	// RenamedIn lists renames applied to the item, each at a specific
	// version. Renames change the surface name from that version onward;
	// the identity (Name) never changes.
	RenamedIn []RenameDef `yaml:"renamed_in,omitempty"`

	// DeprecatedIn names the version that retired the item. From that
	// version onward the item is excluded from the active set.
	DeprecatedIn string `yaml:"deprecated_in,omitempty"`

	// DeprecationNote is an optional note forwarded to emitters alongside
	// the deprecation.
	DeprecationNote string `yaml:"deprecation_note,omitempty"`
}

// RenameDef is a single rename action: at version In the item's surface
// name becomes To.
type RenameDef struct {
	In string `yaml:"in"`
	To string `yaml:"to"`
}

// IsVersioned returns true if the item declares any lifecycle action.
func (i *ItemDef) IsVersioned() bool {
	return i.AddedIn != "" || i.DeprecatedIn != "" || len(i.RenamedIn) > 0
}

// ConversionIdent returns the name used for generated conversion routines.
func (c *ContainerDef) ConversionIdent() string {
	if c.ConversionName != "" {
		return c.ConversionName
	}

	return c.Name
}
