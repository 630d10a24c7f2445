// Package blueprint builds model files from YAML class blueprints.
package blueprint

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/doITmagic/phpgen/internal/literal"
	"github.com/doITmagic/phpgen/internal/model"
)

// File is the root of a blueprint document.
type File struct {
	Namespace   string   `yaml:"namespace"`
	Uses        []string `yaml:"uses"`
	StrictTypes *bool    `yaml:"strict_types"`
	Comment     string   `yaml:"comment"`
	Structs     []Struct `yaml:"structs"`
}

// Struct describes a class, interface or trait. Names are decoded as `any`
// so that a missing or non-string name is reported as a contract violation.
type Struct struct {
	Kind       string     `yaml:"kind"`
	Name       any        `yaml:"name"`
	Extends    []string   `yaml:"extends"`
	Implements []string   `yaml:"implements"`
	Traits     []string   `yaml:"traits"`
	Final      bool       `yaml:"final"`
	Abstract   bool       `yaml:"abstract"`
	Comment    string     `yaml:"comment"`
	Constants  []Constant `yaml:"constants"`
	Properties []Property `yaml:"properties"`
	Methods    []Method   `yaml:"methods"`

	// Defaults for members that do not name a visibility
	ConstVisibility    string `yaml:"const_visibility"`
	PropertyVisibility string `yaml:"property_visibility"`
	MethodVisibility   string `yaml:"method_visibility"`
}

type Constant struct {
	Name       any    `yaml:"name"`
	Visibility string `yaml:"visibility"`
	Comment    string `yaml:"comment"`
	Value      Value  `yaml:",inline"`
}

type Property struct {
	Name       any      `yaml:"name"`
	Visibility string   `yaml:"visibility"`
	Static     bool     `yaml:"static"`
	Readonly   bool     `yaml:"readonly"`
	Types      []string `yaml:"types"`
	Comment    string   `yaml:"comment"`
	Value      Value    `yaml:",inline"`
}

type Parameter struct {
	Name      any      `yaml:"name"`
	Types     []string `yaml:"types"`
	Reference bool     `yaml:"reference"`
	Variadic  bool     `yaml:"variadic"`
	Value     Value    `yaml:",inline"`
}

type Method struct {
	Name       any         `yaml:"name"`
	Visibility string      `yaml:"visibility"`
	Static     bool        `yaml:"static"`
	Abstract   bool        `yaml:"abstract"`
	Final      bool        `yaml:"final"`
	Reference  bool        `yaml:"reference"`
	Comment    string      `yaml:"comment"`
	Params     []Parameter `yaml:"params"`
	Returns    []string    `yaml:"returns"`
	Body       string      `yaml:"body"`
}

// Value is either `value`, any YAML scalar, list or map dumped as a PHP
// literal, or `expr`, PHP source emitted verbatim. An explicit `value: null`
// is kept apart from an absent value.
type Value struct {
	Value yaml.Node `yaml:"value"`
	Expr  *string   `yaml:"expr"`
}

// Set reports whether the blueprint assigns anything.
func (v Value) Set() bool {
	return !v.Value.IsZero() || v.Expr != nil
}

// Build converts v to a model value.
func (v Value) Build() (*model.Value, error) {
	if !v.Value.IsZero() && v.Expr != nil {
		return nil, fmt.Errorf("%w: value and expr are mutually exclusive", model.ErrTypeContract)
	}
	if v.Expr != nil {
		return model.Literal(*v.Expr), nil
	}
	if v.Value.IsZero() || v.Value.ShortTag() == "!!null" {
		return model.Null(), nil
	}
	data, err := nodeLiteral(&v.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to decode value: %w", err)
	}
	return model.ValueOf(data)
}

// nodeLiteral converts a YAML node into a literal, keeping mapping keys in
// document order.
func nodeLiteral(n *yaml.Node) (literal.Value, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return nodeLiteral(n.Alias)
	case yaml.SequenceNode:
		items := make([]literal.Value, 0, len(n.Content))
		for _, child := range n.Content {
			item, err := nodeLiteral(child)
			if err != nil {
				return literal.Value{}, err
			}
			items = append(items, item)
		}
		return literal.List(items...), nil
	case yaml.MappingNode:
		entries := make([]literal.Entry, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			item, err := nodeLiteral(n.Content[i+1])
			if err != nil {
				return literal.Value{}, err
			}
			entries = append(entries, literal.Entry{Key: n.Content[i].Value, Value: item})
		}
		return literal.Map(entries...), nil
	}

	var data any
	if err := n.Decode(&data); err != nil {
		return literal.Value{}, err
	}
	return literal.From(data)
}

// Decode reads one blueprint document.
func Decode(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var bp File
	if err := dec.Decode(&bp); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty blueprint")
		}
		return nil, fmt.Errorf("failed to parse blueprint: %w", err)
	}
	return &bp, nil
}

// Parse decodes data and builds the file it describes.
func Parse(data []byte) (*model.File, error) {
	bp, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return bp.Build()
}

// Build converts the blueprint into a model file.
func (bp *File) Build() (*model.File, error) {
	f := model.NewFile()
	f.SetNamespace(bp.Namespace)
	f.AddUse(bp.Uses...)
	if bp.StrictTypes != nil {
		f.SetStrictTypes(*bp.StrictTypes)
	}
	f.SetComment(bp.Comment)

	for i, sb := range bp.Structs {
		s, err := sb.Build()
		if err != nil {
			return nil, fmt.Errorf("structs[%d]: %w", i, err)
		}
		f.AddStruct(s)
	}
	return f, nil
}

func (sb *Struct) Build() (*model.Struct, error) {
	kind, err := model.ParseStructKind(sb.Kind)
	if err != nil {
		return nil, err
	}
	name, err := model.ParseName(sb.Name)
	if err != nil {
		return nil, err
	}
	s, err := model.NewStruct(kind, name)
	if err != nil {
		return nil, err
	}
	s.SetFinal(sb.Final)
	s.SetAbstract(sb.Abstract)
	if len(sb.Extends) > 0 {
		s.SetExtends(sb.Extends...)
	}
	s.AddImplement(sb.Implements...)
	s.AddTrait(sb.Traits...)
	s.SetComment(sb.Comment)

	defaults := []struct {
		raw string
		set func(model.Visibility) error
	}{
		{sb.ConstVisibility, s.SetDefaultConstVisibility},
		{sb.PropertyVisibility, s.SetDefaultPropertyVisibility},
		{sb.MethodVisibility, s.SetDefaultMethodVisibility},
	}
	for _, d := range defaults {
		if err := setVisibility(d.set, d.raw); err != nil {
			return nil, err
		}
	}

	for i, cb := range sb.Constants {
		c, err := cb.Build()
		if err != nil {
			return nil, fmt.Errorf("constants[%d]: %w", i, err)
		}
		s.AddConstant(c)
	}
	for i, pb := range sb.Properties {
		p, err := pb.Build()
		if err != nil {
			return nil, fmt.Errorf("properties[%d]: %w", i, err)
		}
		s.AddProperty(p)
	}
	for i, mb := range sb.Methods {
		m, err := mb.Build()
		if err != nil {
			return nil, fmt.Errorf("methods[%d]: %w", i, err)
		}
		s.AddMethod(m)
	}
	return s, nil
}

// Build requires a value: a constant without one is a contract violation.
func (cb *Constant) Build() (*model.Constant, error) {
	name, err := model.ParseName(cb.Name)
	if err != nil {
		return nil, err
	}
	c, err := model.NewConstant(name)
	if err != nil {
		return nil, err
	}
	if err := setVisibility(c.SetVisibility, cb.Visibility); err != nil {
		return nil, err
	}
	c.SetComment(cb.Comment)
	if !cb.Value.Set() {
		return nil, fmt.Errorf("%w: constant %s needs a value", model.ErrTypeContract, name)
	}
	v, err := cb.Value.Build()
	if err != nil {
		return nil, err
	}
	c.SetValue(v)
	return c, nil
}

func (pb *Property) Build() (*model.Property, error) {
	name, err := model.ParseName(pb.Name)
	if err != nil {
		return nil, err
	}
	p, err := model.NewProperty(name)
	if err != nil {
		return nil, err
	}
	if err := setVisibility(p.SetVisibility, pb.Visibility); err != nil {
		return nil, err
	}
	p.SetStatic(pb.Static)
	p.SetReadonly(pb.Readonly)
	p.SetTypes(pb.Types)
	p.SetComment(pb.Comment)
	if pb.Value.Set() {
		v, err := pb.Value.Build()
		if err != nil {
			return nil, err
		}
		p.SetValue(v)
	}
	return p, nil
}

func (pb *Parameter) Build() (*model.Parameter, error) {
	name, err := model.ParseName(pb.Name)
	if err != nil {
		return nil, err
	}
	p, err := model.NewParameter(name)
	if err != nil {
		return nil, err
	}
	p.SetTypes(pb.Types)
	p.SetReference(pb.Reference)
	p.SetVariadic(pb.Variadic)
	if pb.Value.Set() {
		v, err := pb.Value.Build()
		if err != nil {
			return nil, err
		}
		p.SetValue(v)
	}
	return p, nil
}

func (mb *Method) Build() (*model.Method, error) {
	name, err := model.ParseName(mb.Name)
	if err != nil {
		return nil, err
	}
	m, err := model.NewMethod(name)
	if err != nil {
		return nil, err
	}
	if err := setVisibility(m.SetVisibility, mb.Visibility); err != nil {
		return nil, err
	}
	m.SetStatic(mb.Static)
	m.SetAbstract(mb.Abstract)
	m.SetFinal(mb.Final)
	m.SetReturnsReference(mb.Reference)
	m.SetComment(mb.Comment)
	for i, pb := range mb.Params {
		p, err := pb.Build()
		if err != nil {
			return nil, fmt.Errorf("%s params[%d]: %w", name, i, err)
		}
		m.AddParameter(p)
	}
	m.SetReturnTypes(mb.Returns)
	m.SetBody(mb.Body)
	return m, nil
}

// setVisibility leaves the element untouched when raw is empty.
func setVisibility(set func(model.Visibility) error, raw string) error {
	if raw == "" {
		return nil
	}
	v, err := model.ParseVisibility(raw)
	if err != nil {
		return err
	}
	return set(v)
}
