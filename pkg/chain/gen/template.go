package gen

const sourceTemplate = `// Code generated by chaingen{{ with .Source }} from {{ . }}{{ end }}. DO NOT EDIT.

package {{ .Decl.Package }}

import (
	"github.com/ib-77/pnext/pkg/chain"
{{- if .Decl.Roots }}
	"github.com/ib-77/pnext/pkg/chain/extract"
	"github.com/ib-77/pnext/pkg/chain/schema"
{{- end }}
)

const (
{{- range .Decl.Types }}
	Tag{{ .Name }} chain.Tag = {{ printf "%d" .Tag }}
{{- end }}
)

func init() {
{{- range .Decl.Types }}
	chain.RegisterTagName(Tag{{ .Name }}, {{ default .Name .Label | quote }})
{{- end }}
}
{{ range .Decl.Types }}
{{ comment .Name .Doc }}
type {{ .Name }} struct {
	chain.Base
{{- range .Fields }}
{{- with .Doc }}
	{{ comment "" . }}
{{- end }}
	{{ .Name }} {{ .Type }}
{{- end }}
}

func ({{ .Name }}) StructureType() chain.Tag { return Tag{{ .Name }} }
{{ end }}
{{- range .Decl.Roots }}
{{- $root := .Name }}
// {{ $root }}Schema lists the records that may extend {{ $root }}, in canonical order.
var {{ $root }}Schema = schema.MustNew({{ quote $root }},
{{- range .Extensions }}
	Tag{{ . }},
{{- end }}
)

{{ comment (printf "%sChain" $root) (default (printf "holds the records extracted for %s." $root) (trim .Doc)) }}
type {{ $root }}Chain struct {
{{- range .Extensions }}
	{{ . }} extract.Of[{{ . }}]
{{- end }}
}

func (c *{{ $root }}Chain) Schema() *schema.Schema { return {{ $root }}Schema }

func (c *{{ $root }}Chain) Slot(i int) extract.Slot {
	switch i {
{{- range $i, $ext := .Extensions }}
	case {{ $i }}:
		return &c.{{ $ext }}
{{- end }}
	}
	return nil
}

// Extract fills c from the chain at head and returns the canonical chain.
func (c *{{ $root }}Chain) Extract(head chain.Node, opts ...extract.Option) chain.Node {
	return extract.Extract(head, c, opts...)
}
{{ end -}}
`
