package schema

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/ib-77/pnext/pkg/chain"
)

var (
	ErrNoPackage   = errors.New("declaration has no package name")
	ErrUnknownType = errors.New("unknown record type")
	ErrUnknownRoot = errors.New("unknown root")
	ErrBadName     = errors.New("invalid name")
	ErrNameClash   = errors.New("generated identifier clashes")
)

// FieldDecl is one payload field of a record type.
type FieldDecl struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	Doc  string `yaml:"doc,omitempty"`
}

// TypeDecl declares one record type of the closed tag universe.
type TypeDecl struct {
	Name   string      `yaml:"name"`
	Tag    chain.Tag   `yaml:"tag"`
	Label  string      `yaml:"label,omitempty"`
	Doc    string      `yaml:"doc,omitempty"`
	Fields []FieldDecl `yaml:"fields,omitempty"`
}

// RootDecl lists, in canonical order, the record types that may extend a root.
type RootDecl struct {
	Name       string   `yaml:"name"`
	Doc        string   `yaml:"doc,omitempty"`
	Extensions []string `yaml:"extensions"`
}

// Decl is the YAML declaration a code generator turns into record types,
// schemas and extracted sets.
type Decl struct {
	Package string     `yaml:"package"`
	Types   []TypeDecl `yaml:"types"`
	Roots   []RootDecl `yaml:"roots"`
}

// LoadDecl decodes and validates a declaration.
func LoadDecl(r io.Reader) (*Decl, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var d Decl
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("unable to decode declaration: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// LoadDeclFile is LoadDecl for a file on disk.
func LoadDeclFile(path string) (d *Decl, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open declaration: %w", err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	if d, err = LoadDecl(f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Validate checks names, tags and references, reporting every problem.
func (d *Decl) Validate() error {
	var err error
	if d.Package == "" {
		err = multierr.Append(err, ErrNoPackage)
	}

	names := make(map[string]struct{}, len(d.Types))
	tags := make(map[chain.Tag]string, len(d.Types))
	for i, t := range d.Types {
		if !isIdent(t.Name) {
			err = multierr.Append(err, fmt.Errorf("type %d: %w %q", i, ErrBadName, t.Name))
			continue
		}
		if _, ok := names[t.Name]; ok {
			err = multierr.Append(err, fmt.Errorf("type %s: declared twice", t.Name))
		}
		names[t.Name] = struct{}{}

		if t.Tag == chain.TagNone {
			err = multierr.Append(err, fmt.Errorf("type %s: %w", t.Name, ErrZeroTag))
		} else if other, ok := tags[t.Tag]; ok {
			err = multierr.Append(err, fmt.Errorf("type %s: tag %d already used by %s", t.Name, t.Tag, other))
		} else {
			tags[t.Tag] = t.Name
		}

		for _, f := range t.Fields {
			if !isIdent(f.Name) || f.Type == "" {
				err = multierr.Append(err, fmt.Errorf("type %s: field %w %q", t.Name, ErrBadName, f.Name))
				continue
			}
			if _, ok := reservedFields[f.Name]; ok {
				err = multierr.Append(err, fmt.Errorf("type %s: field %s: %w with a record member", t.Name, f.Name, ErrNameClash))
			}
		}
	}

	roots := make(map[string]struct{}, len(d.Roots))
	for i, r := range d.Roots {
		if !isIdent(r.Name) {
			err = multierr.Append(err, fmt.Errorf("root %d: %w %q", i, ErrBadName, r.Name))
			continue
		}
		if _, ok := roots[r.Name]; ok {
			err = multierr.Append(err, fmt.Errorf("root %s: declared twice", r.Name))
		}
		roots[r.Name] = struct{}{}

		for _, ext := range r.Extensions {
			if _, ok := reservedSlots[ext]; ok {
				err = multierr.Append(err, fmt.Errorf("root %s: extension %s: %w with a set method", r.Name, ext, ErrNameClash))
			}
		}

		if _, e := d.SchemaFor(r.Name); e != nil {
			err = multierr.Append(err, e)
		}
	}
	return multierr.Append(err, d.checkIdents())
}

// fields every record already has through chain.Base or its generated methods
var reservedFields = map[string]struct{}{"Base": {}, "Type": {}, "Next": {}, "Header": {}, "StructureType": {}}

// methods of a generated extracted set, extension slots are named after their type
var reservedSlots = map[string]struct{}{"Schema": {}, "Slot": {}, "Extract": {}}

// checkIdents reports package level identifiers the generator would emit twice.
func (d *Decl) checkIdents() error {
	var err error
	owners := make(map[string]string)
	claim := func(ident, owner string) {
		if prev, ok := owners[ident]; ok {
			if prev != owner {
				err = multierr.Append(err, fmt.Errorf("%s and %s both produce %s: %w", prev, owner, ident, ErrNameClash))
			}
			return
		}
		owners[ident] = owner
	}

	for _, t := range d.Types {
		if !isIdent(t.Name) {
			continue
		}
		owner := "type " + t.Name
		claim(t.Name, owner)
		claim("Tag"+t.Name, owner)
	}
	for _, r := range d.Roots {
		if !isIdent(r.Name) {
			continue
		}
		owner := "root " + r.Name
		claim(r.Name+"Schema", owner)
		claim(r.Name+"Chain", owner)
	}
	return err
}

// Type looks a record type up by name.
func (d *Decl) Type(name string) (TypeDecl, bool) {
	for _, t := range d.Types {
		if t.Name == name {
			return t, true
		}
	}
	return TypeDecl{}, false
}

// SchemaFor builds the schema of the named root.
func (d *Decl) SchemaFor(root string) (*Schema, error) {
	for _, r := range d.Roots {
		if r.Name != root {
			continue
		}

		var err error
		tags := make([]chain.Tag, 0, len(r.Extensions))
		for _, ext := range r.Extensions {
			t, ok := d.Type(ext)
			if !ok {
				err = multierr.Append(err, fmt.Errorf("root %s: %w %s", root, ErrUnknownType, ext))
				continue
			}
			tags = append(tags, t.Tag)
		}
		if err != nil {
			return nil, err
		}
		return New(root, tags...)
	}
	return nil, fmt.Errorf("%w %s", ErrUnknownRoot, root)
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
