package generator

import (
	"strings"
)

// pseudoTypes maps PHPDoc-only type names to the native hint that accepts
// them. An empty value means no native hint exists.
var pseudoTypes = map[string]string{
	"list":             "array",
	"non-empty-list":   "array",
	"non-empty-array":  "array",
	"class-string":     "string",
	"callable-string":  "string",
	"numeric-string":   "string",
	"non-empty-string": "string",
	"positive-int":     "int",
	"negative-int":     "int",
	"$this":            "static",
	"resource":         "",
	"scalar":           "",
	"numeric":          "",
}

// nativeTypes narrows doc comment types to something a type hint can
// express: generics lose their arguments and `T[]` becomes array. When a
// member has no native form the whole union is dropped.
func nativeTypes(types []string) []string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		t = strings.TrimSpace(t)
		nullable := strings.HasPrefix(t, "?")
		t = strings.TrimPrefix(t, "?")

		switch {
		case strings.HasSuffix(t, "[]"):
			t = "array"
		case strings.ContainsAny(t, "<{("):
			t = t[:strings.IndexAny(t, "<{(")]
		}
		if native, ok := pseudoTypes[strings.ToLower(t)]; ok {
			if native == "" {
				return nil
			}
			t = native
		}
		if t == "" {
			return nil
		}

		out = append(out, t)
		if nullable {
			out = append(out, "null")
		}
	}
	return out
}
