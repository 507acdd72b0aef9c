package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"versioned-generator/internal/attrs"
	"versioned-generator/internal/plan"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// PackageName is the name of the generated package.
	PackageName string
	// OutputDir is the directory where generated files are written.
	OutputDir string
	// GenerateComments enables explanatory comments in conversion bodies.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		PackageName:      "schema",
		OutputDir:        "./generated",
		GenerateComments: true,
	}
}

// Generator renders a generation plan into Go source files.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "bucketspec_versioned.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate renders one file per container: a type declaration for every
// declared version plus a conversion function per adjacent version pair.
// A plan carrying errors is refused outright so partially-correct code is
// never emitted.
func (g *Generator) Generate(p *plan.GenerationPlan) ([]GeneratedFile, error) {
	if p == nil {
		return nil, errors.New("generation plan is nil")
	}

	if p.Diagnostics.HasErrors() {
		return nil, fmt.Errorf("refusing to generate from a failed plan: %w", p.Diagnostics.Error())
	}

	var files []GeneratedFile

	for i := range p.Containers {
		file, err := g.generateContainer(&p.Containers[i])
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", p.Containers[i].Container.Name, err)
		}

		files = append(files, *file)
	}

	return files, nil
}

// Write writes generated files into the configured output directory.
func (g *Generator) Write(files []GeneratedFile) error {
	if err := os.MkdirAll(g.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating output dir %s: %w", g.config.OutputDir, err)
	}

	for _, f := range files {
		path := filepath.Join(g.config.OutputDir, f.Filename)
		if err := os.WriteFile(path, f.Content, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}

	return nil
}

// fileData holds all data needed for the versioned file template.
type fileData struct {
	PackageName string
	Decls       []string
}

func (g *Generator) generateContainer(cp *plan.ContainerPlan) (*GeneratedFile, error) {
	c := cp.Container

	data := &fileData{PackageName: g.config.PackageName}

	for i := range c.Views {
		data.Decls = append(data.Decls, g.renderVersionDecl(c, &c.Views[i]))
	}

	for i := range cp.Conversions {
		data.Decls = append(data.Decls, g.renderConversion(c, &cp.Conversions[i]))
	}

	var buf bytes.Buffer
	if err := versionedTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	filename := strings.ToLower(c.Name) + "_versioned.go"

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return &GeneratedFile{
			Filename: filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w", err)
	}

	return &GeneratedFile{
		Filename: filename,
		Content:  formatted,
	}, nil
}

// renderVersionDecl renders the type declaration for one versioned view.
func (g *Generator) renderVersionDecl(c *plan.Container, view *plan.ContainerVersion) string {
	var b strings.Builder

	name := TypeName(c, view.Version)

	if c.Doc != "" {
		writeComment(&b, "", fmt.Sprintf("%s %s", name, c.Doc))
	}

	if view.Version.Doc != "" {
		writeComment(&b, "", view.Version.Doc)
	}

	if view.Version.Deprecated {
		writeComment(&b, "", fmt.Sprintf("Deprecated: schema version %s is deprecated.", view.Version))
	}

	for _, a := range c.Annotations {
		b.WriteString(a)
		b.WriteString("\n")
	}

	if c.Kind == attrs.KindEnum {
		renderEnumDecl(&b, name, view)
	} else {
		renderStructDecl(&b, name, view)
	}

	return b.String()
}

func renderStructDecl(b *strings.Builder, name string, view *plan.ContainerVersion) {
	fmt.Fprintf(b, "type %s struct {\n", name)

	for _, item := range view.Items {
		if item.Doc != "" {
			writeComment(b, "\t", item.Doc)
		}

		fmt.Fprintf(b, "\t%s %s\n", item.Name, item.TypeExpr)
	}

	b.WriteString("}")
}

func renderEnumDecl(b *strings.Builder, name string, view *plan.ContainerVersion) {
	fmt.Fprintf(b, "type %s string\n", name)

	if len(view.Items) == 0 {
		return
	}

	b.WriteString("\nconst (\n")

	for _, item := range view.Items {
		if item.Doc != "" {
			writeComment(b, "\t", item.Doc)
		}

		fmt.Fprintf(b, "\t%s%s %s = %q\n", name, item.Name, name, item.Name)
	}

	b.WriteString(")")
}

// renderConversion renders the conversion function for one adjacent pair.
func (g *Generator) renderConversion(c *plan.Container, spec *plan.ConversionSpec) string {
	var b strings.Builder

	fromType := TypeName(c, spec.From)
	toType := TypeName(c, spec.To)
	funcName := ConversionFuncName(c, spec)

	writeComment(&b, "", fmt.Sprintf("%s converts a %s into a %s.", funcName, fromType, toType))
	fmt.Fprintf(&b, "func %s(in %s) %s {\n", funcName, fromType, toType)

	if c.Kind == attrs.KindEnum {
		renderEnumConversion(&b, g.config.GenerateComments, fromType, toType, spec)
	} else {
		renderStructConversion(&b, g.config.GenerateComments, toType, spec)
	}

	b.WriteString("}")

	return b.String()
}

func renderStructConversion(b *strings.Builder, comments bool, toType string, spec *plan.ConversionSpec) {
	fmt.Fprintf(b, "\tout := %s{}\n", toType)

	for _, op := range spec.Ops {
		switch op.Kind {
		case plan.OpMap:
			fmt.Fprintf(b, "\tout.%s = in.%s\n", op.TargetName, op.SourceName)
		case plan.OpDefault:
			if comments {
				fmt.Fprintf(b, "\t// %s added in %s\n", op.TargetName, spec.To)
			}

			fmt.Fprintf(b, "\tout.%s = %s\n", op.TargetName, op.Default)
		case plan.OpDrop:
			if comments {
				fmt.Fprintf(b, "\t// %s dropped in %s\n", op.SourceName, spec.To)
			}
		}
	}

	b.WriteString("\treturn out\n")
}

func renderEnumConversion(b *strings.Builder, comments bool, fromType, toType string, spec *plan.ConversionSpec) {
	var mapped, dropped []plan.ItemOp

	for _, op := range spec.Ops {
		switch op.Kind {
		case plan.OpMap:
			mapped = append(mapped, op)
		case plan.OpDrop:
			dropped = append(dropped, op)
		}
	}

	if len(mapped) > 0 {
		b.WriteString("\tswitch in {\n")

		for _, op := range mapped {
			fmt.Fprintf(b, "\tcase %s%s:\n\t\treturn %s%s\n", fromType, op.SourceName, toType, op.TargetName)
		}

		b.WriteString("\t}\n")
	}

	if comments && len(dropped) > 0 {
		for _, op := range dropped {
			fmt.Fprintf(b, "\t// %s dropped in %s\n", op.SourceName, spec.To)
		}
	}

	fmt.Fprintf(b, "\tvar zero %s\n\treturn zero\n", toType)
}

// TypeName returns the generated type name for a container at one version,
// e.g. "BucketSpec" at "v1alpha1" becomes "BucketSpecV1alpha1". Containers
// declared unexported keep a lower-cased leading rune.
func TypeName(c *plan.Container, v plan.Version) string {
	return applyVisibility(c, c.Name+VersionSuffix(v))
}

// ConversionFuncName returns the name of the generated conversion routine
// for one adjacent pair, e.g. "ConvertBucketSpecV1ToV2".
func ConversionFuncName(c *plan.Container, spec *plan.ConversionSpec) string {
	name := "convert" + spec.ConversionName + VersionSuffix(spec.From) + "To" + VersionSuffix(spec.To)
	if !c.Unexported {
		name = "C" + name[1:]
	}

	return name
}

func applyVisibility(c *plan.Container, name string) string {
	if c.Unexported && name != "" {
		return strings.ToLower(name[:1]) + name[1:]
	}

	return name
}

// VersionSuffix returns the version name with its leading "v" upper-cased,
// suitable for splicing into an identifier.
func VersionSuffix(v plan.Version) string {
	if v.Name == "" {
		return ""
	}

	return strings.ToUpper(v.Name[:1]) + v.Name[1:]
}

// writeComment writes text as // comment lines with the given indent.
func writeComment(b *strings.Builder, indent, text string) {
	for _, line := range strings.Split(text, "\n") {
		b.WriteString(indent)
		b.WriteString("// ")
		b.WriteString(line)
		b.WriteString("\n")
	}
}

// Template for the versioned container file

var versionedTemplate = template.Must(template.New("versioned").Parse(`// Code generated by versioned-gen. DO NOT EDIT.

package {{.PackageName}}

{{range .Decls}}{{.}}

{{end}}`))
