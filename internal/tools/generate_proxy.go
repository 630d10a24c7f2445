package tools

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/doITmagic/phpgen/internal/config"
	"github.com/doITmagic/phpgen/internal/generator"
	"github.com/doITmagic/phpgen/internal/project"
	"github.com/doITmagic/phpgen/internal/reflection"
)

// GenerateProxyTool builds a forwarding proxy for an existing class or interface
type GenerateProxyTool struct {
	source *Source
	cfg    config.GeneratorConfig
}

func NewGenerateProxyTool(source *Source, cfg config.GeneratorConfig) *GenerateProxyTool {
	return &GenerateProxyTool{source: source, cfg: cfg}
}

func (t *GenerateProxyTool) Name() string {
	return "generate_proxy"
}

func (t *GenerateProxyTool) Description() string {
	return "Generate a final PHP class that wraps an instance of an existing class or interface and forwards every public method to it. 'file_path' may be a file or a directory to index. With 'write' the proxy is saved where the project's composer.json PSR-4 autoload expects it."
}

func (t *GenerateProxyTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	path, err := stringArg(args, "file_path")
	if err != nil {
		return "", err
	}
	className, err := stringArg(args, "class")
	if err != nil {
		return "", err
	}
	r, err := t.source.Load(path)
	if err != nil {
		return "", err
	}
	class, err := reflection.ClassFromName(r, className)
	if err != nil {
		return "", err
	}

	name := optionalString(args, "name")
	if name == "" {
		name = class.Name() + t.cfg.ProxySuffix
	}
	namespace := optionalString(args, "namespace")
	if namespace == "" {
		namespace = t.cfg.ProxyNamespace
	}

	f, err := generator.New(r).Proxy(class, name, namespace)
	if err != nil {
		return "", err
	}
	f.SetStrictTypes(t.cfg.Strict())

	if write, _ := optionalBool(args, "write"); !write {
		return f.String(), nil
	}
	fqcn := name
	if namespace != "" {
		fqcn = namespace + `\` + name
	}
	out, err := t.autoloadPath(path, fqcn)
	if err != nil {
		return "", err
	}
	fs := t.source.Fs()
	if err := fs.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", filepath.Dir(out), err)
	}
	if err := afero.WriteFile(fs, out, []byte(f.String()), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", out, err)
	}
	return fmt.Sprintf("Wrote %s to %s", fqcn, out), nil
}

// autoloadPath finds the file fqcn belongs in, from the composer.json of the
// project containing path.
func (t *GenerateProxyTool) autoloadPath(path, fqcn string) (string, error) {
	p, err := project.NewDetector(t.source.Fs()).Detect(path)
	if err != nil {
		return "", err
	}
	out, ok := p.PathFor(fqcn)
	if !ok {
		return "", fmt.Errorf("no psr-4 prefix of %s matches %s", filepath.Join(p.Root, project.Marker), fqcn)
	}
	return out, nil
}
