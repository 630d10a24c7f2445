package tools

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/doITmagic/phpgen/internal/config"
	"github.com/doITmagic/phpgen/internal/logger"
	"github.com/doITmagic/phpgen/internal/reflection"
)

// Source builds a fresh Reflector over a file or directory for every tool
// call, so edits made between calls are always seen.
type Source struct {
	fs         afero.Fs
	log        logger.Logger
	phpVersion string
	exclude    []string
}

// NewSource creates a Source reading through fs.
func NewSource(fs afero.Fs, cfg config.ReflectionConfig, log logger.Logger) *Source {
	if log == nil {
		log = logger.GetDefault()
	}
	return &Source{fs: fs, log: log, phpVersion: cfg.PHPVersion, exclude: cfg.Exclude}
}

func (s *Source) Fs() afero.Fs { return s.fs }

// Load indexes path.
func (s *Source) Load(path string) (*reflection.Reflector, error) {
	resolved, err := s.resolvePath(path)
	if err != nil {
		return nil, err
	}

	opts := []reflection.Option{
		reflection.WithFs(s.fs),
		reflection.WithLogger(s.log),
		reflection.WithPHPVersion(s.phpVersion),
	}
	if len(s.exclude) > 0 {
		opts = append(opts, reflection.WithExclude(s.exclude...))
	}
	r := reflection.NewReflector(opts...)
	if err := r.LoadPaths(resolved); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Source) resolvePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("file_path is required")
	}
	cleanPath := filepath.Clean(path)
	if _, err := s.fs.Stat(cleanPath); err != nil {
		return "", fmt.Errorf("file not found: %s", cleanPath)
	}
	return cleanPath, nil
}
