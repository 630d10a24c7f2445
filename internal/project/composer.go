package project

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// Project is a Composer project root and its PSR-4 autoload map.
type Project struct {
	Root string
	Name string

	// prefixes are namespace prefixes ending in a backslash, longest first.
	prefixes []string
	dirs     map[string][]string
}

type composerFile struct {
	Name        string   `json:"name"`
	Autoload    autoload `json:"autoload"`
	AutoloadDev autoload `json:"autoload-dev"`
}

type autoload struct {
	PSR4 map[string]json.RawMessage `json:"psr-4"`
}

// Load reads root/composer.json. Both autoload and autoload-dev are used.
func Load(fs afero.Fs, root string) (*Project, error) {
	path := filepath.Join(root, Marker)
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var cf composerFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	p := &Project{Root: root, Name: cf.Name, dirs: map[string][]string{}}
	for _, section := range []autoload{cf.Autoload, cf.AutoloadDev} {
		for prefix, raw := range section.PSR4 {
			dirs, err := psr4Dirs(raw)
			if err != nil {
				return nil, fmt.Errorf("%s: psr-4 %q: %w", path, prefix, err)
			}
			prefix = strings.TrimLeft(prefix, `\`)
			if _, seen := p.dirs[prefix]; !seen {
				p.prefixes = append(p.prefixes, prefix)
			}
			p.dirs[prefix] = append(p.dirs[prefix], dirs...)
		}
	}
	sort.Slice(p.prefixes, func(i, j int) bool {
		if len(p.prefixes[i]) != len(p.prefixes[j]) {
			return len(p.prefixes[i]) > len(p.prefixes[j])
		}
		return p.prefixes[i] < p.prefixes[j]
	})
	return p, nil
}

// psr4Dirs accepts the string or list form of a psr-4 entry.
func psr4Dirs(raw json.RawMessage) ([]string, error) {
	var one string
	if err := json.Unmarshal(raw, &one); err == nil {
		return []string{one}, nil
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err != nil {
		return nil, fmt.Errorf("expected a path or a list of paths")
	}
	return many, nil
}

// PathFor returns the file the autoloader loads class from. The longest
// matching prefix wins, and its first directory is used.
func (p *Project) PathFor(class string) (string, bool) {
	class = strings.TrimLeft(class, `\`)
	for _, prefix := range p.prefixes {
		if prefix != "" && !strings.HasPrefix(class, prefix) {
			continue
		}
		dirs := p.dirs[prefix]
		if len(dirs) == 0 {
			continue
		}
		rel := strings.ReplaceAll(strings.TrimPrefix(class, prefix), `\`, "/") + ".php"
		return filepath.Join(p.Root, filepath.FromSlash(dirs[0]), filepath.FromSlash(rel)), true
	}
	return "", false
}
