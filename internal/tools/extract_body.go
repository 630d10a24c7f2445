package tools

import (
	"context"
	"fmt"

	"github.com/doITmagic/phpgen/internal/reflection"
)

// ExtractBodyTool recovers the body of a method, function or closure from
// its source file
type ExtractBodyTool struct {
	source *Source
}

func NewExtractBodyTool(source *Source) *ExtractBodyTool {
	return &ExtractBodyTool{source: source}
}

func (t *ExtractBodyTool) Name() string {
	return "extract_body"
}

func (t *ExtractBodyTool) Description() string {
	return "Recover the statements between the braces of a PHP method, function or closure. Give 'class' and 'method', a global 'function', or the 'closure_line' a closure starts on. The recovery scans source lines and expects braces on their own lines."
}

func (t *ExtractBodyTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	path, err := stringArg(args, "file_path")
	if err != nil {
		return "", err
	}
	r, err := t.source.Load(path)
	if err != nil {
		return "", err
	}

	fn, isInterface, err := resolveFunction(r, args)
	if err != nil {
		return "", err
	}
	return r.ExtractBody(fn, isInterface)
}

// resolveFunction finds the method, function or closure named by args.
func resolveFunction(r *reflection.Reflector, args map[string]interface{}) (reflection.Function, bool, error) {
	class := optionalString(args, "class")
	method := optionalString(args, "method")
	function := optionalString(args, "function")
	line, hasLine := optionalInt(args, "closure_line")

	switch {
	case class != "" && method != "":
		m, err := reflection.MethodFromName(r, class, method)
		if err != nil {
			return nil, false, err
		}
		return m, m.Class().IsInterface(), nil
	case function != "":
		f, err := reflection.FunctionFromName(r, function)
		if err != nil {
			return nil, false, err
		}
		return f, false, nil
	case hasLine:
		files := r.Files()
		if len(files) != 1 {
			return nil, false, fmt.Errorf("closure_line needs file_path to name a single file")
		}
		f, err := reflection.FunctionFromClosure(r, reflection.Closure{File: files[0], Line: line})
		if err != nil {
			return nil, false, err
		}
		return f, false, nil
	}
	return nil, false, fmt.Errorf("class and method, function, or closure_line is required")
}
