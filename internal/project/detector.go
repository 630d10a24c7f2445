// Package project locates the Composer project a PHP file belongs to and maps
// class names to the files PSR-4 autoloading expects them in.
package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Marker identifies a project root.
const Marker = "composer.json"

// Detector walks up from a path looking for a composer.json.
type Detector struct {
	fs afero.Fs

	// Paths under these directories belong to dependencies and are never
	// generated into.
	excludeDirs map[string]bool
}

func NewDetector(fs afero.Fs) *Detector {
	return &Detector{
		fs:          fs,
		excludeDirs: map[string]bool{"vendor": true, "node_modules": true},
	}
}

// Detect returns the project containing path, which may be a file or a
// directory.
func (d *Detector) Detect(path string) (*Project, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	for _, part := range strings.Split(filepath.ToSlash(absPath), "/") {
		if d.excludeDirs[part] {
			return nil, fmt.Errorf("%s is inside %s/, not a project", absPath, part)
		}
	}

	current := absPath
	if !d.isDir(absPath) {
		current = filepath.Dir(absPath)
	}

	for {
		if d.exists(filepath.Join(current, Marker)) {
			return Load(d.fs, current)
		}

		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return nil, fmt.Errorf("no %s found above %s", Marker, absPath)
}

func (d *Detector) exists(path string) bool {
	_, err := d.fs.Stat(path)
	return err == nil
}

func (d *Detector) isDir(path string) bool {
	info, err := d.fs.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
