package generator

import (
	"fmt"
	"strings"

	"github.com/doITmagic/phpgen/internal/docblock"
	"github.com/doITmagic/phpgen/internal/model"
	"github.com/doITmagic/phpgen/internal/reflection"
)

// proxyProperty holds the wrapped instance.
const proxyProperty = "inner"

// skipForwarding are the magic methods a proxy never forwards.
var skipForwarding = map[string]bool{
	"__construct": true,
	"__destruct":  true,
	"__clone":     true,
	"__wakeup":    true,
	"__sleep":     true,
}

// Proxy builds a final class called name in namespace that wraps an instance
// of class and forwards every public, non-static method to it. When class is
// an interface the proxy implements it.
func (g *Generator) Proxy(class *reflection.Class, name, namespace string) (*model.File, error) {
	if class.Kind() == reflection.KindTrait {
		return nil, fmt.Errorf("cannot proxy trait %s", class.FullName())
	}

	target := `\` + class.FullName()
	s, err := model.NewClass(name)
	if err != nil {
		return nil, err
	}
	s.SetFinal(true)
	s.SetComment(fmt.Sprintf("Forwards calls to %s.", target))
	if class.IsInterface() {
		s.AddImplement(target)
	}

	inner, err := model.NewProperty(proxyProperty)
	if err != nil {
		return nil, err
	}
	inner.AddType(target)
	if err := inner.SetVisibility(model.Private); err != nil {
		return nil, err
	}
	inner.SetReadonly(true)
	s.AddProperty(inner)

	ctor, err := g.proxyConstructor(target)
	if err != nil {
		return nil, err
	}
	s.AddMethod(ctor)

	for _, m := range class.Methods() {
		if m.Visibility() != "public" || m.IsStatic() || skipForwarding[strings.ToLower(m.Name())] {
			continue
		}
		method, err := g.forward(m, target)
		if err != nil {
			return nil, err
		}
		s.AddMethod(method)
	}

	f := model.NewFile()
	f.SetNamespace(namespace)
	f.AddStruct(s)
	return f, nil
}

func (g *Generator) proxyConstructor(target string) (*model.Method, error) {
	ctor, err := model.NewMethod("__construct")
	if err != nil {
		return nil, err
	}
	p, err := model.NewParameter(proxyProperty)
	if err != nil {
		return nil, err
	}
	p.AddType(target)
	ctor.AddParameter(p)
	ctor.SetBody(fmt.Sprintf("$this->%s = $%s;", proxyProperty, proxyProperty))
	return ctor, nil
}

// forward copies the signature of m and replaces its body with a call on the
// wrapped instance. The proxy lives in another namespace, so class names in
// the signature are fully qualified and self becomes target.
func (g *Generator) forward(m *reflection.Method, target string) (*model.Method, error) {
	method, err := model.NewMethod(m.Name())
	if err != nil {
		return nil, err
	}
	method.SetReturnsReference(m.ReturnsReference())
	ctx := docblock.NewContext(m.NamespaceName(), m.Imports())

	args := make([]string, 0, len(m.Parameters()))
	for _, p := range m.Parameters() {
		param, err := g.ParameterFrom(p)
		if err != nil {
			return nil, fmt.Errorf("parameter of %s: %w", m.Name(), err)
		}
		param.SetTypes(qualify(param.Types(), ctx, target))
		method.AddParameter(param)
		if p.IsVariadic() {
			args = append(args, "...$"+p.Name())
		} else {
			args = append(args, "$"+p.Name())
		}
	}

	if hint := m.ReturnType(); hint != "" {
		method.AddReturnType(hint)
	} else {
		method.SetReturnTypes(nativeTypes(reflection.DocBlockReturnTypes(m)))
	}
	method.SetReturnTypes(qualify(method.ReturnTypes(), ctx, "self"))

	call := fmt.Sprintf("$this->%s->%s(%s);", proxyProperty, m.Name(), strings.Join(args, ", "))
	switch returnKind(method.ReturnTypes()) {
	case "void":
		method.SetBody(call)
	case "fluent":
		method.SetBody(call + "\n\nreturn $this;")
	default:
		method.SetBody("return " + call)
	}
	return method, nil
}

// returnKind classifies return types: "void" for void and never, "fluent"
// when the method returns its own instance.
func returnKind(types []string) string {
	if len(types) != 1 {
		return ""
	}
	switch strings.ToLower(types[0]) {
	case "void", "never":
		return "void"
	case "static", "self", "$this":
		return "fluent"
	}
	return ""
}

// qualify resolves the class names in types against ctx. A self hint is
// replaced by selfType.
func qualify(types []string, ctx *docblock.Context, selfType string) []string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		if strings.EqualFold(t, "self") {
			out = append(out, selfType)
			continue
		}
		out = append(out, docblock.ResolveType(t, ctx))
	}
	return out
}
