package plan

import (
	"errors"

	"versioned-generator/internal/attrs"
	"versioned-generator/internal/diagnostic"
)

// ContainerPlan bundles one successfully assembled container with its
// synthesized conversion specs.
type ContainerPlan struct {
	Container   *Container
	Conversions []ConversionSpec
}

// GenerationPlan is the final output of the engine, consumed by emission.
type GenerationPlan struct {
	// Containers that assembled and synthesized cleanly, in input order.
	Containers []ContainerPlan
	// Diagnostics collected across all containers, failed ones included.
	Diagnostics diagnostic.Diagnostics
}

// Build runs the full pipeline over every container declaration. Containers
// are independent: a failing one is reported through the plan's diagnostics
// and excluded, while generation for the others continues. A container
// either appears complete (views plus all its conversions) or not at all.
func Build(defs []attrs.ContainerDef) (*GenerationPlan, error) {
	if len(defs) == 0 {
		return nil, errors.New("no container declarations")
	}

	p := &GenerationPlan{}

	for i := range defs {
		def := &defs[i]

		container, diags := Assemble(def)
		p.Diagnostics.Merge(*diags)

		if container == nil {
			continue
		}

		conversions, convDiags := SynthesizeConversions(container)
		p.Diagnostics.Merge(*convDiags)

		if convDiags.HasErrors() {
			continue
		}

		p.Containers = append(p.Containers, ContainerPlan{
			Container:   container,
			Conversions: conversions,
		})
	}

	return p, nil
}
