package gen

import (
	"go/format"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"versioned-generator/internal/attrs"
	"versioned-generator/internal/plan"
)

func buildTestPlan(t *testing.T, defs ...attrs.ContainerDef) *plan.GenerationPlan {
	t.Helper()

	p, err := plan.Build(defs)
	require.NoError(t, err)
	require.False(t, p.Diagnostics.HasErrors(), spew.Sdump(p.Diagnostics))

	return p
}

func userContainer() attrs.ContainerDef {
	return attrs.ContainerDef{
		Name: "User",
		Kind: attrs.KindStruct,
		Doc:  "is a user account.",
		Versions: []attrs.VersionDef{
			{Name: "v1"},
			{Name: "v2"},
		},
		Items: []attrs.ItemDef{
			{Name: "Name", Type: "string"},
			{Name: "Count", Type: "int", AddedIn: "v2", Default: "0"},
		},
	}
}

func TestGenerateStruct(t *testing.T) {
	p := buildTestPlan(t, userContainer())

	files, err := NewGenerator(DefaultGeneratorConfig()).Generate(p)
	require.NoError(t, err)
	require.Len(t, files, 1)

	assert.Equal(t, "user_versioned.go", files[0].Filename)

	src := string(files[0].Content)
	assert.Contains(t, src, "package schema")
	assert.Contains(t, src, "type UserV1 struct {")
	assert.Contains(t, src, "type UserV2 struct {")
	assert.Contains(t, src, "Name string")
	assert.Contains(t, src, "Count int")
	assert.Contains(t, src, "func ConvertUserV1ToV2(in UserV1) UserV2 {")
	assert.Contains(t, src, "out.Name = in.Name")
	assert.Contains(t, src, "out.Count = 0")
	assert.Contains(t, src, "// Count added in v2")

	// Output is gofmt-clean.
	formatted, err := format.Source(files[0].Content)
	require.NoError(t, err)
	assert.Equal(t, formatted, files[0].Content)
}

func TestGenerateRenameAndDrop(t *testing.T) {
	def := attrs.ContainerDef{
		Name: "Record",
		Kind: attrs.KindStruct,
		Versions: []attrs.VersionDef{
			{Name: "v1"}, {Name: "v2"}, {Name: "v3"},
		},
		Items: []attrs.ItemDef{
			{Name: "ID", Type: "string",
				RenamedIn:    []attrs.RenameDef{{In: "v2", To: "Identifier"}},
				DeprecatedIn: "v3"},
			{Name: "Payload", Type: "[]byte"},
		},
	}

	p := buildTestPlan(t, def)

	files, err := NewGenerator(DefaultGeneratorConfig()).Generate(p)
	require.NoError(t, err)

	src := string(files[0].Content)
	assert.Contains(t, src, "out.Identifier = in.ID")
	assert.Contains(t, src, "// Identifier dropped in v3")
	assert.Contains(t, src, "func ConvertRecordV2ToV3(in RecordV2) RecordV3 {")

	// The v3 type omits the deprecated item entirely.
	idx := strings.Index(src, "type RecordV3 struct {")
	require.GreaterOrEqual(t, idx, 0)

	v3Decl := src[idx:]
	v3Decl = v3Decl[:strings.Index(v3Decl, "}")]
	assert.NotContains(t, v3Decl, "Identifier")
	assert.Contains(t, v3Decl, "Payload []byte")
}

func TestGenerateEnum(t *testing.T) {
	def := attrs.ContainerDef{
		Name: "State",
		Kind: attrs.KindEnum,
		Versions: []attrs.VersionDef{
			{Name: "v1"}, {Name: "v2"},
		},
		Items: []attrs.ItemDef{
			{Name: "Active"},
			{Name: "Frozen", RenamedIn: []attrs.RenameDef{{In: "v2", To: "Suspended"}}},
		},
	}

	p := buildTestPlan(t, def)

	files, err := NewGenerator(DefaultGeneratorConfig()).Generate(p)
	require.NoError(t, err)

	src := string(files[0].Content)
	assert.Contains(t, src, "type StateV1 string")
	assert.Contains(t, src, `StateV1Active StateV1 = "Active"`)
	assert.Contains(t, src, `StateV2Suspended StateV2 = "Suspended"`)
	assert.Contains(t, src, "case StateV1Frozen:")
	assert.Contains(t, src, "return StateV2Suspended")
	assert.Contains(t, src, "var zero StateV2")
}

func TestGenerateDeprecatedVersionMarker(t *testing.T) {
	def := userContainer()
	def.Versions[0].Deprecated = true

	p := buildTestPlan(t, def)

	files, err := NewGenerator(DefaultGeneratorConfig()).Generate(p)
	require.NoError(t, err)

	assert.Contains(t, string(files[0].Content), "// Deprecated: schema version v1 is deprecated.")
}

func TestGenerateRefusesFailedPlan(t *testing.T) {
	bad := userContainer()
	bad.Items[1].Default = ""

	p, err := plan.Build([]attrs.ContainerDef{bad})
	require.NoError(t, err)
	require.True(t, p.Diagnostics.HasErrors())

	_, err = NewGenerator(DefaultGeneratorConfig()).Generate(p)
	assert.ErrorContains(t, err, "refusing to generate")
}

func TestGenerateNoComments(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.GenerateComments = false

	p := buildTestPlan(t, userContainer())

	files, err := NewGenerator(cfg).Generate(p)
	require.NoError(t, err)

	src := string(files[0].Content)
	assert.NotContains(t, src, "// Count added in v2")
	assert.Contains(t, src, "out.Count = 0")
}

func TestWriteFiles(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.OutputDir = t.TempDir()

	g := NewGenerator(cfg)

	p := buildTestPlan(t, userContainer())

	files, err := g.Generate(p)
	require.NoError(t, err)
	require.NoError(t, g.Write(files))

	written, err := os.ReadFile(filepath.Join(cfg.OutputDir, "user_versioned.go"))
	require.NoError(t, err)
	assert.Equal(t, files[0].Content, written)
}

func TestNamingHelpers(t *testing.T) {
	c := &plan.Container{Name: "Bucket"}

	v, err := plan.ParseVersion(attrs.VersionDef{Name: "v1alpha1"})
	require.NoError(t, err)

	assert.Equal(t, "BucketV1alpha1", TypeName(c, v))
	assert.Equal(t, "V1alpha1", VersionSuffix(v))
}
