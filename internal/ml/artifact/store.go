package artifact

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
)

// LoadError wraps any failure to read or decode a persisted bundle: a
// missing file, a truncated gob stream, or a bundle whose contents do not
// decode. Callers that see one typically fall back to training from scratch.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("artifact: load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Store persists bundles under a directory, one gob file per model name.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created on the
// first Save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the artifact directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".gob")
}

// Save writes the bundle atomically: gob-encode into a temp file in the same
// directory, sync, then rename over the final name. A crash mid-write never
// leaves a partial bundle visible.
func (s *Store) Save(b *Bundle) error {
	if b == nil || b.ModelName == "" {
		return fmt.Errorf("artifact: bundle must carry a model name")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("artifact: create dir %s: %w", s.dir, err)
	}

	tmp, err := os.CreateTemp(s.dir, b.ModelName+".*.tmp")
	if err != nil {
		return fmt.Errorf("artifact: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(b); err != nil {
		tmp.Close()
		return fmt.Errorf("artifact: encode bundle %s: %w", b.ModelName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("artifact: sync bundle %s: %w", b.ModelName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("artifact: close bundle %s: %w", b.ModelName, err)
	}

	if err := os.Rename(tmp.Name(), s.path(b.ModelName)); err != nil {
		return fmt.Errorf("artifact: publish bundle %s: %w", b.ModelName, err)
	}
	return nil
}

// Load reads one bundle. Every failure mode comes back as a *LoadError.
func (s *Store) Load(name string) (*Bundle, error) {
	path := s.path(name)
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	var b Bundle
	if err := gob.NewDecoder(f).Decode(&b); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if b.Model == nil || b.Scaler == nil || len(b.LabelEncoders) == 0 {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("bundle is incomplete")}
	}
	return &b, nil
}

// LoadAll reads a bundle for every name, all-or-nothing: a single missing or
// corrupt bundle fails the whole load.
func (s *Store) LoadAll(names []string) (map[string]*Bundle, error) {
	bundles := make(map[string]*Bundle, len(names))
	for _, name := range names {
		b, err := s.Load(name)
		if err != nil {
			return nil, err
		}
		bundles[name] = b
	}
	return bundles, nil
}

// Exists reports whether a bundle file is present for the name.
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.path(name))
	return err == nil
}
