package reflection

import (
	"strings"

	"github.com/doITmagic/phpgen/internal/docblock"
)

// ExtractDeclaredTypes returns the types named by every `@tag` in the doc
// comment of h, each union member resolved against the namespace of h. The
// list keeps tag order and is not deduplicated.
func ExtractDeclaredTypes(h Documented, tag string) []string {
	doc, ok := h.DocComment()
	if !ok {
		return []string{}
	}

	ctx := contextOf(h)
	types := []string{}
	for _, t := range docblock.Parse(doc, ctx).TagsByName(tag) {
		for _, alt := range strings.Split(t.Type, "|") {
			if resolved := docblock.ResolveType(alt, ctx); resolved != "" {
				types = append(types, resolved)
			}
		}
	}
	return types
}

// DocBlockReturnTypes returns the @return types of fn.
func DocBlockReturnTypes(fn Function) []string {
	return ExtractDeclaredTypes(fn, "return")
}

// DocBlockTypes returns the doc comment types of a parameter or property.
// Parameters read the @param tags of their function that name them, or that
// name no variable at all; properties read their own @var tags.
func DocBlockTypes(h Documented) []string {
	switch v := h.(type) {
	case *Parameter:
		return parameterDocTypes(v)
	case *Property:
		return ExtractDeclaredTypes(v, "var")
	default:
		return ExtractDeclaredTypes(h, "param")
	}
}

func parameterDocTypes(p *Parameter) []string {
	doc, ok := p.DocComment()
	if !ok {
		return []string{}
	}

	ctx := contextOf(p)
	types := []string{}
	for _, t := range docblock.Parse(doc, ctx).TagsByName("param") {
		if t.Variable != "" && t.Variable != p.Name() {
			continue
		}
		types = append(types, docblock.ResolveTypes(t.Type, ctx)...)
	}
	return types
}

// contextOf builds the resolution context of h, or nil in the global
// namespace without imports.
func contextOf(h Documented) *docblock.Context {
	var uses map[string]string
	if i, ok := h.(importer); ok {
		uses = i.Imports()
	}
	ns := h.NamespaceName()
	if ns == "" && len(uses) == 0 {
		return nil
	}
	return docblock.NewContext(ns, uses)
}
