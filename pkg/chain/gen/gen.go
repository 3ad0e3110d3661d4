package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"github.com/ib-77/pnext/pkg/chain/schema"
)

type values struct {
	Source string
	Decl   *schema.Decl
}

// Generate renders gofmt-ed Go source for d. source names the declaration
// file in the generated header and may be empty.
func Generate(d *schema.Decl, source string) ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("invalid declaration: %w", err)
	}

	funcMap := sprig.FuncMap()
	funcMap["comment"] = comment

	tmpl, err := template.New("source").Funcs(funcMap).Parse(sourceTemplate)
	if err != nil {
		return nil, fmt.Errorf("unable to parse source template: %w", err)
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values{Source: source, Decl: d}); err != nil {
		return nil, fmt.Errorf("unable to render source: %w", err)
	}

	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("generated source does not parse: %w", err)
	}
	return out, nil
}

// comment renders doc as a Go comment, prefixed by name when it is given.
func comment(name, doc string) string {
	doc = strings.TrimSpace(doc)
	switch {
	case doc == "" && name == "":
		return ""
	case doc == "":
		return "// " + name + " is a chain record."
	case name != "":
		doc = name + " " + doc
	}

	lines := strings.Split(doc, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight("// "+strings.TrimSpace(l), " ")
	}
	return strings.Join(lines, "\n")
}
