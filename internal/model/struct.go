package model

import (
	"fmt"
	"strings"
)

// StructKind distinguishes the three PHP class-like declarations.
type StructKind string

const (
	KindClass     StructKind = "class"
	KindInterface StructKind = "interface"
	KindTrait     StructKind = "trait"
)

func ParseStructKind(s string) (StructKind, error) {
	switch k := StructKind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindClass, KindInterface, KindTrait:
		return k, nil
	case "":
		return KindClass, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

// Struct is a class, interface or trait. It owns its members and supplies
// their default visibilities.
type Struct struct {
	named
	namespaceAware
	commentAware
	kind       StructKind
	final      bool
	abstract   bool
	extends    []string
	implements []string
	traits     []string
	constants  []*Constant
	properties []*Property
	methods    []*Method

	defaultConstVisibility    Visibility
	defaultPropertyVisibility Visibility
	defaultMethodVisibility   Visibility
}

// NewStruct creates a struct of the given kind. A qualified name such as
// `App\Models\User` also sets the namespace.
func NewStruct(kind StructKind, name string) (*Struct, error) {
	switch kind {
	case KindClass, KindInterface, KindTrait:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	ns, short := splitQualified(name)
	s := &Struct{kind: kind}
	if err := s.setName(short); err != nil {
		return nil, err
	}
	s.SetNamespace(ns)
	return s, nil
}

func NewClass(name string) (*Struct, error)     { return NewStruct(KindClass, name) }
func NewInterface(name string) (*Struct, error) { return NewStruct(KindInterface, name) }
func NewTrait(name string) (*Struct, error)     { return NewStruct(KindTrait, name) }

func (s *Struct) Kind() StructKind { return s.kind }

// FullName is the namespace-qualified name without a leading separator.
func (s *Struct) FullName() string {
	return s.qualify(s.Name())
}

func (s *Struct) IsFinal() bool             { return s.final }
func (s *Struct) SetFinal(final bool)       { s.final = final }
func (s *Struct) IsAbstract() bool          { return s.abstract }
func (s *Struct) SetAbstract(abstract bool) { s.abstract = abstract }

// SetExtends sets the parent class, or the parent interfaces of an interface.
func (s *Struct) SetExtends(names ...string) {
	s.extends = appendUnique(nil, names...)
}

func (s *Struct) Extends() []string { return append([]string(nil), s.extends...) }

func (s *Struct) AddImplement(names ...string) {
	s.implements = appendUnique(s.implements, names...)
}

func (s *Struct) Implements() []string { return append([]string(nil), s.implements...) }

func (s *Struct) AddTrait(names ...string) {
	s.traits = appendUnique(s.traits, names...)
}

func (s *Struct) Traits() []string { return append([]string(nil), s.traits...) }

func (s *Struct) DefaultConstVisibility() Visibility {
	return orDefault(s.defaultConstVisibility)
}

func (s *Struct) DefaultPropertyVisibility() Visibility {
	return orDefault(s.defaultPropertyVisibility)
}

func (s *Struct) DefaultMethodVisibility() Visibility {
	return orDefault(s.defaultMethodVisibility)
}

func (s *Struct) SetDefaultConstVisibility(v Visibility) error {
	return setDefault(&s.defaultConstVisibility, v)
}

func (s *Struct) SetDefaultPropertyVisibility(v Visibility) error {
	return setDefault(&s.defaultPropertyVisibility, v)
}

func (s *Struct) SetDefaultMethodVisibility(v Visibility) error {
	return setDefault(&s.defaultMethodVisibility, v)
}

// AddConstant attaches c, replacing a constant of the same name.
func (s *Struct) AddConstant(c *Constant) {
	c.SetParent(s)
	for i, existing := range s.constants {
		if existing.Name() == c.Name() {
			existing.SetParent(nil)
			s.constants[i] = c
			return
		}
	}
	s.constants = append(s.constants, c)
}

func (s *Struct) Constant(name string) (*Constant, bool) {
	for _, c := range s.constants {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

func (s *Struct) Constants() []*Constant { return append([]*Constant(nil), s.constants...) }

func (s *Struct) RemoveConstant(name string) {
	for i, c := range s.constants {
		if c.Name() == name {
			c.SetParent(nil)
			s.constants = append(s.constants[:i], s.constants[i+1:]...)
			return
		}
	}
}

func (s *Struct) AddProperty(p *Property) {
	p.SetParent(s)
	for i, existing := range s.properties {
		if existing.Name() == p.Name() {
			existing.SetParent(nil)
			s.properties[i] = p
			return
		}
	}
	s.properties = append(s.properties, p)
}

func (s *Struct) Property(name string) (*Property, bool) {
	for _, p := range s.properties {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}

func (s *Struct) Properties() []*Property { return append([]*Property(nil), s.properties...) }

func (s *Struct) RemoveProperty(name string) {
	for i, p := range s.properties {
		if p.Name() == name {
			p.SetParent(nil)
			s.properties = append(s.properties[:i], s.properties[i+1:]...)
			return
		}
	}
}

// AddMethod attaches m. PHP method names are case-insensitive, so "getName"
// replaces "GetName".
func (s *Struct) AddMethod(m *Method) {
	m.SetParent(s)
	for i, existing := range s.methods {
		if strings.EqualFold(existing.Name(), m.Name()) {
			existing.SetParent(nil)
			s.methods[i] = m
			return
		}
	}
	s.methods = append(s.methods, m)
}

func (s *Struct) Method(name string) (*Method, bool) {
	for _, m := range s.methods {
		if strings.EqualFold(m.Name(), name) {
			return m, true
		}
	}
	return nil, false
}

func (s *Struct) Methods() []*Method { return append([]*Method(nil), s.methods...) }

func (s *Struct) RemoveMethod(name string) {
	for i, m := range s.methods {
		if strings.EqualFold(m.Name(), name) {
			m.SetParent(nil)
			s.methods = append(s.methods[:i], s.methods[i+1:]...)
			return
		}
	}
}

func (s *Struct) String() string {
	var sb strings.Builder
	sb.WriteString(s.commentsToString())
	if s.final {
		sb.WriteString("final ")
	}
	if s.abstract {
		sb.WriteString("abstract ")
	}
	sb.WriteString(string(s.kind))
	sb.WriteByte(' ')
	sb.WriteString(s.Name())
	if len(s.extends) > 0 {
		sb.WriteString(" extends ")
		sb.WriteString(strings.Join(s.extends, ", "))
	}
	if len(s.implements) > 0 {
		sb.WriteString(" implements ")
		sb.WriteString(strings.Join(s.implements, ", "))
	}
	sb.WriteString("\n{\n")

	var sections []string
	if len(s.traits) > 0 {
		var uses strings.Builder
		for _, t := range s.traits {
			uses.WriteString("use " + t + ";\n")
		}
		sections = append(sections, uses.String())
	}
	if len(s.constants) > 0 {
		var consts strings.Builder
		for _, c := range s.constants {
			consts.WriteString(c.String())
		}
		sections = append(sections, consts.String())
	}
	if len(s.properties) > 0 {
		parts := make([]string, 0, len(s.properties))
		for _, p := range s.properties {
			parts = append(parts, p.String())
		}
		sections = append(sections, strings.Join(parts, "\n"))
	}
	if len(s.methods) > 0 {
		parts := make([]string, 0, len(s.methods))
		for _, m := range s.methods {
			parts = append(parts, m.String())
		}
		sections = append(sections, strings.Join(parts, "\n"))
	}

	for i, section := range sections {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(indentLines(strings.TrimSuffix(section, "\n"), indent))
		sb.WriteByte('\n')
	}

	sb.WriteString("}\n")
	return sb.String()
}

func orDefault(v Visibility) Visibility {
	if v == "" {
		return DefaultVisibility
	}
	return v
}

func setDefault(dst *Visibility, v Visibility) error {
	if !v.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidVisibility, v)
	}
	*dst = v
	return nil
}

func appendUnique(dst []string, names ...string) []string {
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		dup := false
		for _, existing := range dst {
			if existing == name {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, name)
		}
	}
	return dst
}
