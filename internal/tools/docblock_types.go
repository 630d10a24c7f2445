package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/doITmagic/phpgen/internal/reflection"
)

// DocblockTypesTool lists the types declared in a docblock, resolved to
// fully qualified names
type DocblockTypesTool struct {
	source *Source
}

func NewDocblockTypesTool(source *Source) *DocblockTypesTool {
	return &DocblockTypesTool{source: source}
}

func (t *DocblockTypesTool) Name() string {
	return "docblock_types"
}

func (t *DocblockTypesTool) Description() string {
	return "List the types a PHPDoc comment declares for a method or function (@return by default, or any 'tag'), one of its parameters (@param), or a class property (@var). Class names are resolved against the namespace and use imports of the file."
}

type docblockTypesResult struct {
	Target string   `json:"target"`
	Tag    string   `json:"tag"`
	Types  []string `json:"types"`
}

func (t *DocblockTypesTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	path, err := stringArg(args, "file_path")
	if err != nil {
		return "", err
	}
	r, err := t.source.Load(path)
	if err != nil {
		return "", err
	}

	class := optionalString(args, "class")
	tag := optionalString(args, "tag")
	result := docblockTypesResult{}

	if property := strings.TrimPrefix(optionalString(args, "property"), "$"); property != "" {
		if class == "" {
			return "", fmt.Errorf("class is required for property")
		}
		p, err := reflection.PropertyFromName(r, class, property)
		if err != nil {
			return "", err
		}
		result.Target = fmt.Sprintf("%s::$%s", p.Class().FullName(), p.Name())
		if tag == "" {
			result.Tag, result.Types = "var", reflection.DocBlockTypes(p)
		} else {
			result.Tag, result.Types = tag, reflection.ExtractDeclaredTypes(p, tag)
		}
		return toJSON(result)
	}

	fn, _, err := resolveFunction(r, args)
	if err != nil {
		return "", err
	}
	result.Target = fn.Name()
	if m, ok := fn.(*reflection.Method); ok {
		result.Target = m.Class().FullName() + "::" + m.Name()
	}

	if name := strings.TrimPrefix(optionalString(args, "parameter"), "$"); name != "" {
		p, ok := parameterNamed(fn, name)
		if !ok {
			return "", fmt.Errorf("parameter $%s of %s: %w", name, result.Target, reflection.ErrNotFound)
		}
		result.Target += "($" + p.Name() + ")"
		result.Tag, result.Types = "param", reflection.DocBlockTypes(p)
		return toJSON(result)
	}

	if tag == "" {
		tag = "return"
	}
	result.Tag, result.Types = tag, reflection.ExtractDeclaredTypes(fn, tag)
	return toJSON(result)
}

func parameterNamed(fn reflection.Function, name string) (*reflection.Parameter, bool) {
	type withParams interface {
		Parameter(name string) (*reflection.Parameter, bool)
	}
	if f, ok := fn.(withParams); ok {
		return f.Parameter(name)
	}
	return nil, false
}
