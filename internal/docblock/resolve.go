package docblock

import (
	"strings"
)

// Context is the namespace scope a type name is resolved in.
type Context struct {
	Namespace string
	// Aliases maps a lowercased import alias to its fully qualified name
	Aliases map[string]string
}

// NewContext builds a context for namespace. uses maps alias to fully
// qualified name, as written in `use X as Y;` statements.
func NewContext(namespace string, uses map[string]string) *Context {
	ctx := &Context{
		Namespace: strings.Trim(namespace, `\`),
		Aliases:   make(map[string]string, len(uses)),
	}
	for alias, fqn := range uses {
		ctx.Aliases[strings.ToLower(alias)] = strings.TrimPrefix(fqn, `\`)
	}
	return ctx
}

// keywords are the pseudo types PHPDoc never treats as class names.
// The value is the canonical spelling.
var keywords = map[string]string{
	"string":           "string",
	"int":              "int",
	"integer":          "int",
	"bool":             "bool",
	"boolean":          "bool",
	"float":            "float",
	"double":           "float",
	"real":             "float",
	"array":            "array",
	"iterable":         "iterable",
	"callable":         "callable",
	"object":           "object",
	"mixed":            "mixed",
	"void":             "void",
	"never":            "never",
	"null":             "null",
	"false":            "false",
	"true":             "true",
	"resource":         "resource",
	"scalar":           "scalar",
	"numeric":          "numeric",
	"self":             "self",
	"static":           "static",
	"parent":           "parent",
	"$this":            "$this",
	"class-string":     "class-string",
	"callable-string":  "callable-string",
	"numeric-string":   "numeric-string",
	"non-empty-string": "non-empty-string",
	"positive-int":     "positive-int",
	"negative-int":     "negative-int",
	"list":             "list",
	"non-empty-list":   "non-empty-list",
	"non-empty-array":  "non-empty-array",
}

// ResolveType resolves a single type expression against ctx. Union members
// are resolved one by one and joined back with `|`. Class names come back
// fully qualified with a leading separator.
func ResolveType(raw string, ctx *Context) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if parts := splitUnion(raw); len(parts) > 1 {
		resolved := make([]string, 0, len(parts))
		for _, p := range parts {
			resolved = append(resolved, ResolveType(p, ctx))
		}
		return strings.Join(resolved, "|")
	}

	if strings.HasPrefix(raw, "?") {
		return "?" + ResolveType(raw[1:], ctx)
	}
	if strings.HasSuffix(raw, "[]") {
		return ResolveType(strings.TrimSuffix(raw, "[]"), ctx) + "[]"
	}
	if strings.HasPrefix(raw, "(") && strings.HasSuffix(raw, ")") {
		return "(" + ResolveType(raw[1:len(raw)-1], ctx) + ")"
	}

	// Generic arguments are kept as written, only the base name is resolved
	base, generic := raw, ""
	if i := strings.IndexAny(raw, "<{"); i > 0 {
		base, generic = raw[:i], raw[i:]
	}

	if kw, ok := keywords[strings.ToLower(base)]; ok {
		return kw + generic
	}
	return resolveClass(base, ctx) + generic
}

// ResolveTypes splits raw on `|` and resolves every alternative.
func ResolveTypes(raw string, ctx *Context) []string {
	var types []string
	for _, p := range splitUnion(raw) {
		if t := ResolveType(p, ctx); t != "" {
			types = append(types, t)
		}
	}
	return types
}

func resolveClass(name string, ctx *Context) string {
	if strings.HasPrefix(name, `\`) {
		return name
	}
	if ctx == nil {
		return `\` + name
	}

	head, rest, qualified := strings.Cut(name, `\`)
	if fqn, ok := ctx.Aliases[strings.ToLower(head)]; ok {
		if qualified {
			return `\` + fqn + `\` + rest
		}
		return `\` + fqn
	}
	if strings.HasPrefix(strings.ToLower(name), `namespace\`) {
		name = name[len(`namespace\`):]
	}
	if ctx.Namespace == "" {
		return `\` + name
	}
	return `\` + ctx.Namespace + `\` + name
}

// splitUnion splits on `|` outside of generic brackets.
func splitUnion(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '<', '(', '{':
			depth++
		case '>', ')', '}':
			if depth > 0 {
				depth--
			}
		case '|':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	return append(parts, strings.TrimSpace(s[start:]))
}
