package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigValues(t *testing.T) {
	cfg := DefaultConfig()
	if cfg == nil {
		t.Fatalf("DefaultConfig() returned nil")
	}

	if !cfg.Generator.Strict() {
		t.Errorf("Generator.Strict() = false, want true")
	}
	if cfg.Generator.ProxyNamespace != `Generated\Proxy` {
		t.Errorf("Generator.ProxyNamespace = %q, want %q", cfg.Generator.ProxyNamespace, `Generated\Proxy`)
	}
	if cfg.Reflection.PHPVersion != "8.0" {
		t.Errorf("Reflection.PHPVersion = %q, want %q", cfg.Reflection.PHPVersion, "8.0")
	}
	if len(cfg.Reflection.Exclude) != 3 {
		t.Errorf("Reflection.Exclude = %#v, want the three default patterns", cfg.Reflection.Exclude)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
	if cfg.Watch.Debounce != 300*time.Millisecond {
		t.Errorf("Watch.Debounce = %v, want %v", cfg.Watch.Debounce, 300*time.Millisecond)
	}
	if err := validate(cfg); err != nil {
		t.Errorf("validate(DefaultConfig()) returned error: %v", err)
	}
}

func TestLoadMissingFileReturnsDefaultConfig(t *testing.T) {
	tempDir := t.TempDir()
	missing := filepath.Join(tempDir, "no-such-config.yaml")

	cfg, err := Load(missing)
	if err != nil {
		t.Fatalf("Load(%q) returned error: %v", missing, err)
	}
	if cfg == nil {
		t.Fatalf("Load(%q) returned nil config", missing)
	}

	if cfg.Logging.Format != "text" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "text")
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "phpgen.yaml")

	yamlContent := []byte(`
generator:
  strict_types: false
  proxy_namespace: App\Proxies
reflection:
  php_version: "8.2"
  exclude:
    - "**/tests/**"
watch:
  debounce: 1s
`)
	if err := os.WriteFile(path, yamlContent, 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) returned error: %v", path, err)
	}

	if cfg.Generator.Strict() {
		t.Errorf("Generator.Strict() = true, want false")
	}
	if cfg.Generator.ProxyNamespace != `App\Proxies` {
		t.Errorf("Generator.ProxyNamespace = %q, want %q", cfg.Generator.ProxyNamespace, `App\Proxies`)
	}
	// Not in the file, so the default survives the merge
	if cfg.Generator.ProxySuffix != "Proxy" {
		t.Errorf("Generator.ProxySuffix = %q, want %q", cfg.Generator.ProxySuffix, "Proxy")
	}
	if cfg.Reflection.PHPVersion != "8.2" {
		t.Errorf("Reflection.PHPVersion = %q, want %q", cfg.Reflection.PHPVersion, "8.2")
	}
	if len(cfg.Reflection.Exclude) != 1 || cfg.Reflection.Exclude[0] != "**/tests/**" {
		t.Errorf("Reflection.Exclude = %#v, want [**/tests/**]", cfg.Reflection.Exclude)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
	if cfg.Watch.Debounce != time.Second {
		t.Errorf("Watch.Debounce = %v, want %v", cfg.Watch.Debounce, time.Second)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	tempDir := t.TempDir()

	broken := filepath.Join(tempDir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("logging: [unclosed"), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	if _, err := Load(broken); err == nil {
		t.Errorf("Load(broken yaml) = nil error, want non-nil")
	}

	badVersion := filepath.Join(tempDir, "version.yaml")
	if err := os.WriteFile(badVersion, []byte("reflection:\n  php_version: \"4.4\"\n"), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	if _, err := Load(badVersion); err == nil {
		t.Errorf("Load(php_version 4.4) = nil error, want non-nil")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := DefaultConfig()

	t.Setenv("PHPGEN_LOG_LEVEL", "DEBUG")
	t.Setenv("PHPGEN_LOG_FORMAT", "json")
	t.Setenv("PHPGEN_PHP_VERSION", "7.4")
	t.Setenv("PHPGEN_EXCLUDE", "**/cache/**, **/build/**  ")
	t.Setenv("PHPGEN_STRICT_TYPES", "false")
	t.Setenv("PHPGEN_PROXY_NAMESPACE", `Acme\Proxy`)
	t.Setenv("PHPGEN_WATCH_DEBOUNCE", "50ms")

	applyEnvOverrides(cfg)

	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "json")
	}
	if cfg.Reflection.PHPVersion != "7.4" {
		t.Errorf("Reflection.PHPVersion = %q, want %q", cfg.Reflection.PHPVersion, "7.4")
	}
	if len(cfg.Reflection.Exclude) != 2 || cfg.Reflection.Exclude[0] != "**/cache/**" || cfg.Reflection.Exclude[1] != "**/build/**" {
		t.Errorf("Reflection.Exclude = %#v, want [**/cache/** **/build/**]", cfg.Reflection.Exclude)
	}
	if cfg.Generator.Strict() {
		t.Errorf("Generator.Strict() = true, want false")
	}
	if cfg.Generator.ProxyNamespace != `Acme\Proxy` {
		t.Errorf("Generator.ProxyNamespace = %q, want %q", cfg.Generator.ProxyNamespace, `Acme\Proxy`)
	}
	if cfg.Watch.Debounce != 50*time.Millisecond {
		t.Errorf("Watch.Debounce = %v, want %v", cfg.Watch.Debounce, 50*time.Millisecond)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "verbose"
	if err := validate(cfg); err == nil {
		t.Errorf("validate(level verbose) = nil error, want non-nil")
	}

	cfg = DefaultConfig()
	cfg.Logging.Format = "xml"
	if err := validate(cfg); err == nil {
		t.Errorf("validate(format xml) = nil error, want non-nil")
	}

	cfg = DefaultConfig()
	cfg.Watch.Debounce = 0
	if err := validate(cfg); err == nil {
		t.Errorf("validate(debounce 0) = nil error, want non-nil")
	}
}
