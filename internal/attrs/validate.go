package attrs

import (
	"fmt"

	"versioned-generator/internal/common"
	"versioned-generator/internal/diagnostic"
)

// Validate performs syntactic validation of a schema file: names are
// present, kinds are recognized, rename entries are well formed and item
// names are unique within a container. Semantic rules (version ordering,
// lifecycle consistency) are checked later by the engine.
func Validate(sf *SchemaFile) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if sf == nil {
		res.AddError("schema_is_nil", "schema file is nil", "", "")
		return res
	}

	if len(sf.Containers) == 0 {
		res.AddError("no_containers", "schema file declares no containers", "", "")
		return res
	}

	seenContainers := map[string]struct{}{}

	for i := range sf.Containers {
		c := &sf.Containers[i]
		if c.Name == "" {
			res.AddError("missing_container_name",
				fmt.Sprintf("container at index %d has no name", i), "", "")
			continue
		}

		if _, ok := seenContainers[c.Name]; ok {
			res.AddError("duplicate_container",
				fmt.Sprintf("duplicate container %q", c.Name), c.Name, "")
			continue
		}

		seenContainers[c.Name] = struct{}{}

		validateContainer(res, c)
	}

	return res
}

func validateContainer(res *diagnostic.Diagnostics, c *ContainerDef) {
	if !c.Kind.IsValid() {
		res.AddError("invalid_kind",
			fmt.Sprintf("unrecognized container kind %q", string(c.Kind)), c.Name, "")
	}

	if common.IsEmpty(c.Versions) {
		res.AddError("missing_versions", "container declares no versions", c.Name, "")
	}

	for _, v := range c.Versions {
		if v.Name == "" {
			res.AddError("missing_version_name", "version entry has no name", c.Name, "")
		}
	}

	seenItems := map[string]struct{}{}

	for j := range c.Items {
		it := &c.Items[j]
		if it.Name == "" {
			res.AddError("missing_item_name",
				fmt.Sprintf("item at index %d has no name", j), c.Name, "")
			continue
		}

		if _, ok := seenItems[it.Name]; ok {
			res.AddError("duplicate_item",
				fmt.Sprintf("duplicate item %q", it.Name), c.Name, it.Name)
			continue
		}

		seenItems[it.Name] = struct{}{}

		validateItem(res, c, it)
	}
}

func validateItem(res *diagnostic.Diagnostics, c *ContainerDef, it *ItemDef) {
	if c.Kind == KindStruct && it.Type == "" {
		res.AddError("missing_item_type",
			fmt.Sprintf("field %q has no type", it.Name), c.Name, it.Name)
	}

	for _, r := range it.RenamedIn {
		if r.In == "" || r.To == "" {
			res.AddError("invalid_rename",
				fmt.Sprintf("rename of %q needs both 'in' and 'to'", it.Name), c.Name, it.Name)
		}
	}

	if it.DeprecationNote != "" && it.DeprecatedIn == "" {
		res.AddWarning("orphan_deprecation_note",
			fmt.Sprintf("item %q has a deprecation note but no deprecated_in", it.Name),
			c.Name, it.Name)
	}
}
