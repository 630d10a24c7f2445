// Package reflection indexes PHP sources and recovers fragments of their text:
// function bodies and the types declared in doc comments.
package reflection

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/VKCOM/php-parser/pkg/conf"
	"github.com/VKCOM/php-parser/pkg/errors"
	"github.com/VKCOM/php-parser/pkg/parser"
	"github.com/VKCOM/php-parser/pkg/version"
	"github.com/VKCOM/php-parser/pkg/visitor/traverser"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"golang.org/x/text/cases"

	"github.com/doITmagic/phpgen/internal/logger"
)

// DefaultExclude skips dependency and VCS directories when walking paths.
var DefaultExclude = []string{"**/vendor/**", "**/node_modules/**", "**/.git/**"}

// maxParserWarnings is how many parser errors are logged per file.
const maxParserWarnings = 3

// Reflector is an index of the classes and functions declared in a set of
// PHP files. It is filled by LoadFile/LoadPaths and read-only afterwards.
type Reflector struct {
	fs      afero.Fs
	log     logger.Logger
	version *version.Version
	exclude []string

	classes   map[string]*Class
	functions map[string]*Func
	closures  map[Closure]*Func
	files     []string
}

type Option func(*Reflector)

// WithFs sets the filesystem sources are read from. Defaults to the OS.
func WithFs(fs afero.Fs) Option {
	return func(r *Reflector) { r.fs = fs }
}

func WithLogger(l logger.Logger) Option {
	return func(r *Reflector) { r.log = l }
}

// WithExclude replaces DefaultExclude with doublestar patterns.
func WithExclude(patterns ...string) Option {
	return func(r *Reflector) { r.exclude = patterns }
}

// WithPHPVersion selects the grammar, e.g. "8.1". Invalid input is ignored.
func WithPHPVersion(v string) Option {
	return func(r *Reflector) {
		if parsed, err := ParseVersion(v); err == nil {
			r.version = parsed
		}
	}
}

func NewReflector(opts ...Option) *Reflector {
	r := &Reflector{
		fs:        afero.NewOsFs(),
		version:   &version.Version{Major: 8, Minor: 0},
		exclude:   DefaultExclude,
		classes:   make(map[string]*Class),
		functions: make(map[string]*Func),
		closures:  make(map[Closure]*Func),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logger.GetDefault()
	}
	return r
}

// phpVersions are the grammars the parser understands.
var phpVersions = map[string]*version.Version{
	"5.6": {Major: 5, Minor: 6},
	"7.0": {Major: 7, Minor: 0},
	"7.1": {Major: 7, Minor: 1},
	"7.2": {Major: 7, Minor: 2},
	"7.3": {Major: 7, Minor: 3},
	"7.4": {Major: 7, Minor: 4},
	"8.0": {Major: 8, Minor: 0},
	"8.1": {Major: 8, Minor: 1},
	"8.2": {Major: 8, Minor: 2},
	"8.3": {Major: 8, Minor: 3},
	"8.4": {Major: 8, Minor: 4},
}

// ParseVersion parses a "major.minor" PHP version.
func ParseVersion(v string) (*version.Version, error) {
	v = strings.TrimSpace(v)
	if !strings.Contains(v, ".") {
		v += ".0"
	}
	if parsed, ok := phpVersions[v]; ok {
		return parsed, nil
	}
	return nil, fmt.Errorf("unsupported PHP version %q", v)
}

func (r *Reflector) Fs() afero.Fs { return r.fs }

// Files lists the indexed files in load order.
func (r *Reflector) Files() []string { return append([]string(nil), r.files...) }

// LoadPaths indexes every .php file under paths. Files are loaded as given;
// directories are walked, skipping anything matching the exclude patterns.
func (r *Reflector) LoadPaths(paths ...string) error {
	for _, root := range paths {
		info, err := r.fs.Stat(root)
		if err != nil {
			return fmt.Errorf("error accessing path %s: %w", root, err)
		}
		if !info.IsDir() {
			if err := r.LoadFile(root); err != nil {
				return err
			}
			continue
		}

		err = afero.Walk(r.fs, root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if path != root && r.excluded(root, path) {
				if info.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if info.IsDir() || !strings.HasSuffix(info.Name(), ".php") {
				return nil
			}
			if err := r.LoadFile(path); err != nil {
				r.log.Warn("failed to index PHP file", "file", path, "error", err)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("error walking directory %s: %w", root, err)
		}
	}
	return nil
}

// excluded matches path, relative to the walked root, against the exclude
// patterns.
func (r *Reflector) excluded(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	slashed := filepath.ToSlash(rel)
	for _, pattern := range r.exclude {
		if ok, _ := doublestar.Match(pattern, slashed); ok {
			return true
		}
		// "**/vendor/**" should also match the vendor directory itself
		if ok, _ := doublestar.Match(pattern, slashed+"/"); ok {
			return true
		}
	}
	return false
}

// LoadFile reads and indexes a single file.
func (r *Reflector) LoadFile(path string) error {
	content, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return fmt.Errorf("%w %s: %v", ErrReadFile, path, err)
	}
	return r.LoadSource(path, content)
}

// LoadSource indexes content as if it was read from path.
func (r *Reflector) LoadSource(path string, content []byte) error {
	var parserErrors []*errors.Error
	root, err := parser.Parse(content, conf.Config{
		Version: r.version,
		ErrorHandlerFunc: func(e *errors.Error) {
			parserErrors = append(parserErrors, e)
		},
	})
	if err != nil {
		return fmt.Errorf("failed to parse PHP in %s: %w", path, err)
	}

	// Log parser errors but continue
	for i, e := range parserErrors {
		if i >= maxParserWarnings {
			r.log.Warn("more PHP parser warnings suppressed", "file", path, "count", len(parserErrors)-maxParserWarnings)
			break
		}
		r.log.Warn("PHP parser warning", "file", path, "error", e.String())
	}
	if root == nil {
		return nil
	}

	c := &collector{reflector: r, file: path, content: content}
	traverser.NewTraverser(c).Traverse(root)
	r.files = append(r.files, path)
	r.log.Debug("indexed PHP file", "file", path, "classes", c.classes, "functions", c.functions)
	return nil
}

// foldName produces the lookup key of a class or function name. PHP compares
// these without regard to case.
func foldName(name string) string {
	return cases.Fold().String(strings.TrimPrefix(name, `\`))
}

// Class returns the class, interface or trait with the fully qualified name.
func (r *Reflector) Class(name string) (*Class, error) {
	if c, ok := r.classes[foldName(name)]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: class %s", ErrNotFound, name)
}

// Classes returns the indexed classes ordered by full name.
func (r *Reflector) Classes() []*Class {
	out := make([]*Class, 0, len(r.classes))
	for _, c := range r.classes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName() < out[j].FullName() })
	return out
}

// Function returns the global function with the fully qualified name.
func (r *Reflector) Function(name string) (*Func, error) {
	if f, ok := r.functions[foldName(name)]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("%w: function %s", ErrNotFound, name)
}

// Closure returns the closure declared at c.
func (r *Reflector) Closure(c Closure) (*Func, error) {
	if f, ok := r.closures[c]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("%w: closure at %s:%d", ErrNotFound, c.File, c.Line)
}

func (r *Reflector) addClass(c *Class) {
	r.classes[foldName(c.FullName())] = c
}

func (r *Reflector) addFunction(f *Func) {
	if f.closure {
		r.closures[Closure{File: f.file, Line: f.startLine}] = f
		return
	}
	r.functions[foldName(f.FullName())] = f
}
