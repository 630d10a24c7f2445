// Package generator turns reflected PHP declarations into model elements that
// can be edited and rendered again.
package generator

import (
	"fmt"
	"strings"

	"github.com/doITmagic/phpgen/internal/docblock"
	"github.com/doITmagic/phpgen/internal/model"
	"github.com/doITmagic/phpgen/internal/reflection"
)

// Generator copies declarations out of a Reflector.
type Generator struct {
	reflector *reflection.Reflector
}

func New(r *reflection.Reflector) *Generator {
	return &Generator{reflector: r}
}

// ParameterFrom copies a parameter. The type hint wins over @param types,
// which are narrowed to native hints. A default value is kept as source text.
func (g *Generator) ParameterFrom(p *reflection.Parameter) (*model.Parameter, error) {
	param, err := model.NewParameter(p.Name())
	if err != nil {
		return nil, err
	}
	if hint := p.Type(); hint != "" {
		param.AddType(hint)
	} else {
		param.SetTypes(nativeTypes(reflection.DocBlockTypes(p)))
	}
	param.SetReference(p.IsPassedByReference())
	param.SetVariadic(p.IsVariadic())
	if def, ok := p.DefaultValue(); ok {
		param.SetValue(valueOf(def))
	}
	return param, nil
}

// MethodFrom copies a method with its recovered body.
func (g *Generator) MethodFrom(m *reflection.Method) (*model.Method, error) {
	method, err := model.NewMethod(m.Name())
	if err != nil {
		return nil, err
	}
	if err := setVisibility(method.SetVisibility, m.Visibility()); err != nil {
		return nil, err
	}
	method.SetStatic(m.IsStatic())
	method.SetFinal(m.IsFinal())
	method.SetAbstract(m.IsAbstract() && !m.Class().IsInterface())
	method.SetReturnsReference(m.ReturnsReference())
	setComment(method.SetComment, m)

	for _, p := range m.Parameters() {
		param, err := g.ParameterFrom(p)
		if err != nil {
			return nil, fmt.Errorf("parameter of %s: %w", m.Name(), err)
		}
		method.AddParameter(param)
	}

	if hint := m.ReturnType(); hint != "" {
		method.AddReturnType(hint)
	} else {
		method.SetReturnTypes(nativeTypes(reflection.DocBlockReturnTypes(m)))
	}

	body, err := g.reflector.ExtractBody(m, m.Class().IsInterface())
	if err != nil {
		return nil, fmt.Errorf("body of %s::%s(): %w", m.Class().FullName(), m.Name(), err)
	}
	method.SetBody(Dedent(body))
	return method, nil
}

// PropertyFrom copies a property. The type hint wins over @var types.
func (g *Generator) PropertyFrom(p *reflection.Property) (*model.Property, error) {
	prop, err := model.NewProperty(p.Name())
	if err != nil {
		return nil, err
	}
	if err := setVisibility(prop.SetVisibility, p.Visibility()); err != nil {
		return nil, err
	}
	prop.SetStatic(p.IsStatic())
	prop.SetReadonly(p.IsReadonly())
	setComment(prop.SetComment, p)

	if hint := p.Type(); hint != "" {
		prop.AddType(hint)
	} else {
		prop.SetTypes(nativeTypes(reflection.DocBlockTypes(p)))
	}
	if def, ok := p.DefaultValue(); ok {
		prop.SetValue(valueOf(def))
	}
	return prop, nil
}

func (g *Generator) ConstantFrom(k *reflection.ClassConstant) (*model.Constant, error) {
	c, err := model.NewConstant(k.Name())
	if err != nil {
		return nil, err
	}
	if err := setVisibility(c.SetVisibility, k.Visibility()); err != nil {
		return nil, err
	}
	setComment(c.SetComment, k)
	c.SetValue(valueOf(k.Value()))
	return c, nil
}

// StructFrom copies a whole class, interface or trait.
func (g *Generator) StructFrom(class *reflection.Class) (*model.Struct, error) {
	kind, err := model.ParseStructKind(string(class.Kind()))
	if err != nil {
		return nil, err
	}
	s, err := model.NewStruct(kind, class.FullName())
	if err != nil {
		return nil, err
	}
	s.SetAbstract(class.IsAbstract())
	s.SetFinal(class.IsFinal())
	if len(class.Extends()) > 0 {
		s.SetExtends(class.Extends()...)
	}
	s.AddImplement(class.Implements()...)
	s.AddTrait(class.Traits()...)
	setComment(s.SetComment, class)

	for _, k := range class.Constants() {
		c, err := g.ConstantFrom(k)
		if err != nil {
			return nil, err
		}
		s.AddConstant(c)
	}
	for _, p := range class.Properties() {
		prop, err := g.PropertyFrom(p)
		if err != nil {
			return nil, err
		}
		s.AddProperty(prop)
	}
	for _, m := range class.Methods() {
		method, err := g.MethodFrom(m)
		if err != nil {
			return nil, err
		}
		s.AddMethod(method)
	}
	return s, nil
}

// FileFrom wraps the struct of class in a file carrying its namespace and
// the imports of its declaring file.
func (g *Generator) FileFrom(class *reflection.Class) (*model.File, error) {
	s, err := g.StructFrom(class)
	if err != nil {
		return nil, err
	}
	f := model.NewFile()
	f.SetNamespace(class.NamespaceName())
	for _, alias := range sortedKeys(class.Imports()) {
		fqn := class.Imports()[alias]
		if fqn[strings.LastIndex(fqn, `\`)+1:] == alias {
			f.AddUse(fqn)
		} else {
			f.AddUse(fqn + " as " + alias)
		}
	}
	f.AddStruct(s)
	return f, nil
}

// valueOf keeps a default expression verbatim, except null which becomes a
// real null so the owner turns nullable.
func valueOf(code string) *model.Value {
	if strings.EqualFold(strings.TrimSpace(code), "null") {
		return model.Null()
	}
	return model.Literal(code)
}

func setVisibility(set func(model.Visibility) error, v string) error {
	vis, err := model.ParseVisibility(v)
	if err != nil {
		return err
	}
	return set(vis)
}

func setComment(set func(string), h reflection.Documented) {
	if doc, ok := h.DocComment(); ok {
		if text := docblock.Text(doc); text != "" {
			set(text)
		}
	}
}
