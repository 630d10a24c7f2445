package project

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

const composerJSON = `{
    "name": "acme/shop",
    "autoload": {
        "psr-4": {
            "App\\": "src/",
            "App\\Generated\\": ["generated/", "legacy/"]
        }
    },
    "autoload-dev": {
        "psr-4": {"Tests\\": "tests"}
    }
}`

func newProjectFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"/shop/composer.json":                  composerJSON,
		"/shop/src/Repo/UserRepository.php":    "<?php\n",
		"/shop/vendor/acme/lib/composer.json":  `{"name": "acme/lib"}`,
		"/shop/vendor/acme/lib/src/Helper.php": "<?php\n",
	}
	for path, content := range files {
		if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return fs
}

func TestDetector_Detect(t *testing.T) {
	d := NewDetector(newProjectFs(t))

	p, err := d.Detect("/shop/src/Repo/UserRepository.php")
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if p.Root != "/shop" {
		t.Errorf("Expected root /shop, got %s", p.Root)
	}
	if p.Name != "acme/shop" {
		t.Errorf("Expected name acme/shop, got %s", p.Name)
	}

	if _, err := d.Detect("/shop/src"); err != nil {
		t.Errorf("Detect from a directory failed: %v", err)
	}
}

func TestDetector_DetectRejectsVendorAndOrphans(t *testing.T) {
	fs := newProjectFs(t)
	if err := afero.WriteFile(fs, "/orphan/Thing.php", []byte("<?php\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	d := NewDetector(fs)

	if _, err := d.Detect("/shop/vendor/acme/lib/src/Helper.php"); err == nil {
		t.Error("Expected an error for a file inside vendor/")
	}
	if _, err := d.Detect("/orphan/Thing.php"); err == nil {
		t.Error("Expected an error without composer.json")
	}
}

func TestProject_PathFor(t *testing.T) {
	p, err := Load(newProjectFs(t), "/shop")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		class string
		want  string
		ok    bool
	}{
		{`App\Repo\UserRepository`, "/shop/src/Repo/UserRepository.php", true},
		{`\App\Repo\UserRepository`, "/shop/src/Repo/UserRepository.php", true},
		{`App\Generated\Proxy\UserProxy`, "/shop/generated/Proxy/UserProxy.php", true},
		{`Tests\Unit\CartTest`, "/shop/tests/Unit/CartTest.php", true},
		{`Other\Thing`, "", false},
	}
	for _, tt := range tests {
		got, ok := p.PathFor(tt.class)
		if ok != tt.ok || got != filepath.FromSlash(tt.want) {
			t.Errorf("PathFor(%q) = %q, %v; want %q, %v", tt.class, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLoadRejectsBadAutoload(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/p/composer.json", []byte(`{"autoload": {"psr-4": {"App\\": 3}}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(fs, "/p"); err == nil {
		t.Error("Expected an error for a numeric psr-4 path")
	}
}
