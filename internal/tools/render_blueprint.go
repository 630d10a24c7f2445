package tools

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/doITmagic/phpgen/internal/blueprint"
	"github.com/doITmagic/phpgen/internal/config"
)

// RenderBlueprintTool renders a YAML class blueprint into PHP source
type RenderBlueprintTool struct {
	source *Source
	cfg    config.GeneratorConfig
}

func NewRenderBlueprintTool(source *Source, cfg config.GeneratorConfig) *RenderBlueprintTool {
	return &RenderBlueprintTool{source: source, cfg: cfg}
}

func (t *RenderBlueprintTool) Name() string {
	return "render_blueprint"
}

func (t *RenderBlueprintTool) Description() string {
	return "Render a YAML class blueprint (namespace, uses, structs with constants, properties and methods) into a PHP file. Pass the YAML inline as 'blueprint' or point 'file_path' at a blueprint file."
}

func (t *RenderBlueprintTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	data := []byte(optionalString(args, "blueprint"))
	if len(data) == 0 {
		path, err := stringArg(args, "file_path")
		if err != nil {
			return "", fmt.Errorf("blueprint or file_path is required")
		}
		resolved, err := t.source.resolvePath(path)
		if err != nil {
			return "", err
		}
		if data, err = afero.ReadFile(t.source.Fs(), resolved); err != nil {
			return "", fmt.Errorf("failed to read blueprint: %w", err)
		}
	}

	bp, err := blueprint.Decode(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	if bp.StrictTypes == nil {
		strict := t.cfg.Strict()
		bp.StrictTypes = &strict
	}
	if strict, ok := optionalBool(args, "strict_types"); ok {
		bp.StrictTypes = &strict
	}

	f, err := bp.Build()
	if err != nil {
		return "", err
	}
	return f.String(), nil
}
