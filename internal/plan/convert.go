package plan

import (
	"fmt"

	"versioned-generator/internal/common"
	"versioned-generator/internal/diagnostic"
)

// OpKind describes how one item is carried across an adjacent version pair.
type OpKind int

const (
	// OpMap - the value passes through verbatim, possibly under a new name.
	OpMap OpKind = iota
	// OpDefault - the item is new in the destination; its value comes from
	// the declared default expression.
	OpDefault
	// OpDrop - the item exists only in the source; its value is discarded.
	OpDrop
)

// String returns a human-readable op name.
func (k OpKind) String() string {
	switch k {
	case OpMap:
		return "map"
	case OpDefault:
		return "default"
	case OpDrop:
		return "drop"
	default:
		return common.UnknownStr
	}
}

// ItemOp is one item-level step of a conversion routine.
type ItemOp struct {
	// Kind of the operation.
	Kind OpKind
	// Identity is the canonical item name the op is keyed by.
	Identity string
	// ItemKind of the item the op applies to.
	ItemKind ItemKind
	// SourceName is the surface name in the source version (map, drop).
	SourceName string
	// TargetName is the surface name in the destination version (map, default).
	TargetName string
	// TypeExpr is the item's type expression, for emitters.
	TypeExpr string
	// Default is the default-value expression (default ops only).
	Default string
}

// ConversionSpec is the synthesized conversion for one adjacent version
// pair. It is total over the source shape: every emitted spec can be
// rendered into a routine that accepts any source value.
type ConversionSpec struct {
	// Container is the owning container's name.
	Container string
	// ConversionName is the identifier used to name the generated routine.
	ConversionName string
	// From and To are the adjacent source and destination versions.
	From Version
	To   Version
	// Ops in destination declaration order, with drops appended last, so
	// generated bodies stay stable as items are added over time.
	Ops []ItemOp
}

// SynthesizeConversions computes the conversion specs for every adjacent
// version pair of an assembled container. Items are matched by identity,
// never by surface name, so renames map cleanly. A destination item with no
// source counterpart and no declared default is a generation-time error;
// following the conservative policy, any such error fails the whole
// container and no specs are returned.
func SynthesizeConversions(c *Container) ([]ConversionSpec, *diagnostic.Diagnostics) {
	diags := &diagnostic.Diagnostics{}

	if c.SkipConversion || !common.IsMultiple(c.Views) {
		return nil, diags
	}

	specs := make([]ConversionSpec, 0, len(c.Views)-1)

	for i := 0; i+1 < len(c.Views); i++ {
		from, to := &c.Views[i], &c.Views[i+1]

		if to.Version.SkipConversion {
			continue
		}

		spec := synthesizePair(c, from, to, diags)
		if spec != nil {
			specs = append(specs, *spec)
		}
	}

	if diags.HasErrors() {
		return nil, diags
	}

	return specs, diags
}

// synthesizePair computes the item mapping from one versioned view into the
// next. Pass-through and default ops follow the destination's item order;
// drops follow the source's and come last.
func synthesizePair(c *Container, from, to *ContainerVersion,
	diags *diagnostic.Diagnostics,
) *ConversionSpec {
	spec := &ConversionSpec{
		Container:      c.Name,
		ConversionName: c.ConversionName,
		From:           from.Version,
		To:             to.Version,
	}

	failed := false

	for _, item := range c.Items {
		dst, inTo := to.Lookup(item.Identity())
		if !inTo {
			continue
		}

		src, inFrom := from.Lookup(item.Identity())
		if inFrom {
			spec.Ops = append(spec.Ops, ItemOp{
				Kind:       OpMap,
				Identity:   item.Identity(),
				ItemKind:   item.Kind(),
				SourceName: src.Name,
				TargetName: dst.Name,
				TypeExpr:   dst.TypeExpr,
			})

			continue
		}

		// Freshly added in the destination.
		if !item.NeedsDefaultOnAdd() {
			continue
		}

		if item.DefaultExpr() == "" {
			diags.AddError("no_default_for_added_item",
				fmt.Sprintf("conversion %s -> %s cannot synthesize a value for item %q added in %s; declare a default",
					from.Version, to.Version, item.Identity(), to.Version),
				c.Name, item.Identity())

			failed = true

			continue
		}

		spec.Ops = append(spec.Ops, ItemOp{
			Kind:       OpDefault,
			Identity:   item.Identity(),
			ItemKind:   item.Kind(),
			TargetName: dst.Name,
			TypeExpr:   dst.TypeExpr,
			Default:    item.DefaultExpr(),
		})
	}

	for _, src := range from.Items {
		if _, inTo := to.Lookup(src.Identity); inTo {
			continue
		}

		spec.Ops = append(spec.Ops, ItemOp{
			Kind:       OpDrop,
			Identity:   src.Identity,
			ItemKind:   src.Kind,
			SourceName: src.Name,
			TypeExpr:   src.TypeExpr,
		})
	}

	if failed {
		return nil
	}

	return spec
}
