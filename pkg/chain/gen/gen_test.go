package gen

import (
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ib-77/pnext/pkg/chain/schema"
)

const declYAML = `
package: sample
types:
  - name: First
    tag: 100
    label: SAMPLE_FIRST
    doc: |
      carries a counter.
      Second line of documentation.
    fields:
      - name: Count
        type: uint32
        doc: number of things
      - name: Names
        type: "[]string"
  - name: Second
    tag: 200
  - name: Third
    tag: 300
roots:
  - name: Root
    doc: is the canonical view of Root extensions.
    extensions: [Third, First]
  - name: Other
    extensions: [Second]
`

func loadDecl(t *testing.T, text string) *schema.Decl {
	t.Helper()
	d, err := schema.LoadDecl(strings.NewReader(text))
	require.NoError(t, err)
	return d
}

func topLevel(t *testing.T, src []byte) map[string]bool {
	t.Helper()

	f, err := parser.ParseFile(token.NewFileSet(), "gen.go", src, parser.ParseComments)
	require.NoError(t, err)

	names := map[string]bool{}
	for _, decl := range f.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					names[s.Name.Name] = true
				case *ast.ValueSpec:
					for _, n := range s.Names {
						names[n.Name] = true
					}
				}
			}
		case *ast.FuncDecl:
			name := d.Name.Name
			if d.Recv != nil {
				switch r := d.Recv.List[0].Type.(type) {
				case *ast.StarExpr:
					name = r.X.(*ast.Ident).Name + "." + name
				case *ast.Ident:
					name = r.Name + "." + name
				}
			}
			names[name] = true
		}
	}
	return names
}

func TestGenerate_Declarations(t *testing.T) {
	t.Parallel()

	src, err := Generate(loadDecl(t, declYAML), "sample.yaml")
	require.NoError(t, err)

	names := topLevel(t, src)
	for _, want := range []string{
		"TagFirst", "TagSecond", "TagThird",
		"First", "Second", "Third",
		"First.StructureType", "Second.StructureType", "Third.StructureType",
		"RootSchema", "RootChain", "RootChain.Schema", "RootChain.Slot", "RootChain.Extract",
		"OtherSchema", "OtherChain",
	} {
		assert.True(t, names[want], "missing %s", want)
	}

	text := string(src)
	assert.True(t, strings.HasPrefix(text, "// Code generated by chaingen from sample.yaml. DO NOT EDIT."))
	assert.Contains(t, text, `chain.RegisterTagName(TagFirst, "SAMPLE_FIRST")`)
	assert.Contains(t, text, `chain.RegisterTagName(TagSecond, "Second")`)
	assert.Contains(t, text, "// First carries a counter.\n// Second line of documentation.")
	assert.Contains(t, text, "// Second is a chain record.")
	assert.Contains(t, text, "// RootChain is the canonical view of Root extensions.")
	assert.Contains(t, text, "// OtherChain holds the records extracted for Other.")
	assert.Contains(t, text, "// number of things")
	assert.Contains(t, text, "Third extract.Of[Third]")
}

func TestGenerate_SlotOrderFollowsExtensions(t *testing.T) {
	t.Parallel()

	src, err := Generate(loadDecl(t, declYAML), "")
	require.NoError(t, err)
	text := string(src)

	assert.True(t, strings.HasPrefix(text, "// Code generated by chaingen. DO NOT EDIT."))

	third := strings.Index(text, "case 0:\n\t\treturn &c.Third")
	first := strings.Index(text, "case 1:\n\t\treturn &c.First")
	assert.True(t, third > 0 && first > third, "slots out of order:\n%s", text)
}

func TestGenerate_LongNamesStayGofmtStable(t *testing.T) {
	t.Parallel()

	const long = `
package: sample
types:
  - name: PhysicalDeviceVeryLongExtensionNameForFormattingPurposesEXT
    tag: 42
roots:
  - name: PhysicalDeviceVeryLongRootNameForFormatting
    extensions: [PhysicalDeviceVeryLongExtensionNameForFormattingPurposesEXT]
`
	src, err := Generate(loadDecl(t, long), "")
	require.NoError(t, err)

	again, err := format.Source(src)
	require.NoError(t, err)
	assert.Equal(t, string(src), string(again))

	text := string(src)
	assert.Contains(t, text, "func (PhysicalDeviceVeryLongExtensionNameForFormattingPurposesEXT) StructureType() chain.Tag {\n"+
		"\treturn TagPhysicalDeviceVeryLongExtensionNameForFormattingPurposesEXT\n}")
	assert.Contains(t, text, "func (c *PhysicalDeviceVeryLongRootNameForFormattingChain) Schema() *schema.Schema {\n"+
		"\treturn PhysicalDeviceVeryLongRootNameForFormattingSchema\n}")
}

func TestGenerate_Deterministic(t *testing.T) {
	t.Parallel()

	d := loadDecl(t, declYAML)
	a, err := Generate(d, "x.yaml")
	require.NoError(t, err)
	b, err := Generate(d, "x.yaml")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerate_NoRoots(t *testing.T) {
	t.Parallel()

	src, err := Generate(loadDecl(t, "package: bare\ntypes:\n  - name: Only\n    tag: 7\n"), "")
	require.NoError(t, err)

	text := string(src)
	assert.NotContains(t, text, "pkg/chain/extract")
	assert.NotContains(t, text, "pkg/chain/schema")
	assert.True(t, topLevel(t, src)["Only.StructureType"])
}

func TestGenerate_InvalidDecl(t *testing.T) {
	t.Parallel()

	d := &schema.Decl{Package: "broken", Roots: []schema.RootDecl{{Name: "R", Extensions: []string{"Missing"}}}}
	_, err := Generate(d, "")
	assert.ErrorIs(t, err, schema.ErrUnknownType)
}

func TestComment(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", comment("", ""))
	assert.Equal(t, "// X is a chain record.", comment("X", "  "))
	assert.Equal(t, "// X does things.", comment("X", "does things.\n"))
	assert.Equal(t, "// one\n// two", comment("", "one\n  two"))
	assert.Equal(t, "// a\n//\n// b", comment("", "a\n\nb"))
}
