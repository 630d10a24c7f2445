package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"

	"github.com/doITmagic/phpgen/internal/logger"
	"github.com/doITmagic/phpgen/internal/reflection"
)

// Load reads and parses the configuration file. Values missing from the file
// keep their defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	// Read configuration file
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only, env overrides still apply
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		if err := mergo.Merge(cfg, fileCfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge config file: %w", err)
		}
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Validate configuration
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Generator: GeneratorConfig{
			// StrictTypes nil means true, a false bool would not survive the merge
			ProxyNamespace: `Generated\Proxy`,
			ProxySuffix:    "Proxy",
		},
		Reflection: ReflectionConfig{
			PHPVersion: "8.0",
			Exclude:    append([]string(nil), reflection.DefaultExclude...),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Watch: WatchConfig{
			Debounce:   300 * time.Millisecond,
			Extensions: []string{".php", ".yaml", ".yml"},
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration
func applyEnvOverrides(cfg *Config) {
	if level := os.Getenv("PHPGEN_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = strings.ToLower(level)
	}
	if format := os.Getenv("PHPGEN_LOG_FORMAT"); format != "" {
		cfg.Logging.Format = strings.ToLower(format)
	}

	if v := os.Getenv("PHPGEN_PHP_VERSION"); v != "" {
		cfg.Reflection.PHPVersion = v
	}
	if exclude := os.Getenv("PHPGEN_EXCLUDE"); exclude != "" {
		cfg.Reflection.Exclude = cfg.Reflection.Exclude[:0]
		for _, p := range strings.Split(exclude, ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				cfg.Reflection.Exclude = append(cfg.Reflection.Exclude, p)
			}
		}
	}

	if strict := os.Getenv("PHPGEN_STRICT_TYPES"); strict != "" {
		if v, err := strconv.ParseBool(strict); err == nil {
			cfg.Generator.StrictTypes = &v
		}
	}
	if ns := os.Getenv("PHPGEN_PROXY_NAMESPACE"); ns != "" {
		cfg.Generator.ProxyNamespace = ns
	}

	if debounce := os.Getenv("PHPGEN_WATCH_DEBOUNCE"); debounce != "" {
		if v, err := time.ParseDuration(debounce); err == nil {
			cfg.Watch.Debounce = v
		}
	}
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if !logger.LogLevel(cfg.Logging.Level).Valid() {
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error, disabled", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" && cfg.Logging.Format != "text" {
		return fmt.Errorf("logging.format must be 'json' or 'text'")
	}

	if _, err := reflection.ParseVersion(cfg.Reflection.PHPVersion); err != nil {
		return fmt.Errorf("reflection.php_version: %w", err)
	}

	if cfg.Watch.Debounce <= 0 {
		return fmt.Errorf("watch.debounce must be positive")
	}

	return nil
}
