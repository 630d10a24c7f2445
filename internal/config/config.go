package config

import (
	"time"
)

// Config represents the global application configuration
type Config struct {
	// Generator configuration
	Generator GeneratorConfig `yaml:"generator"`

	// Reflection configuration (PHP source indexing)
	Reflection ReflectionConfig `yaml:"reflection"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging"`

	// Watch configuration (regenerate on change)
	Watch WatchConfig `yaml:"watch"`
}

// GeneratorConfig contains rendering settings
type GeneratorConfig struct {
	// StrictTypes emits declare(strict_types=1); nil means the default (true)
	StrictTypes *bool `yaml:"strict_types"`

	// ProxyNamespace is the namespace generated proxies are placed in
	ProxyNamespace string `yaml:"proxy_namespace"`

	// ProxySuffix is appended to the proxied class name, e.g. UserRepositoryProxy
	ProxySuffix string `yaml:"proxy_suffix"`

	// OutputDir is where rendered files are written; empty means stdout
	OutputDir string `yaml:"output_dir"`
}

// Strict reports whether generated files declare strict types.
func (g GeneratorConfig) Strict() bool {
	return g.StrictTypes == nil || *g.StrictTypes
}

// ReflectionConfig contains settings for indexing existing PHP sources
type ReflectionConfig struct {
	PHPVersion string   `yaml:"php_version"` // e.g. 8.1
	Exclude    []string `yaml:"exclude"`     // doublestar patterns, relative to the loaded root
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error, disabled
	Format string `yaml:"format"` // json, text
}

// WatchConfig contains settings for the watch command
type WatchConfig struct {
	Debounce   time.Duration `yaml:"debounce"`
	Extensions []string      `yaml:"extensions"` // changes to other files are ignored
}
