// README: Artifact store; gob files under a configurable directory, stable round-trip only.
package model

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
)

type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+".gob")
}

// Save writes the artifact, creating intermediate directories. The
// write goes through a temp file and rename so a crash never leaves a
// half-written artifact at the final path.
func (s *Store) Save(name string, art *Artifact) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create artifact: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(art); err != nil {
		tmp.Close()
		return fmt.Errorf("encode artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	return os.Rename(tmp.Name(), s.Path(name))
}

// Load reads an artifact back. A missing file is ErrModelNotFound; a
// file that exists but does not decode is ErrCorruptModel.
func (s *Store) Load(name string) (*Artifact, error) {
	f, err := os.Open(s.Path(name))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, s.Path(name))
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var art Artifact
	if err := gob.NewDecoder(f).Decode(&art); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptModel, err)
	}
	if art.Booster == nil || art.Norm == nil {
		return nil, fmt.Errorf("%w: incomplete artifact", ErrCorruptModel)
	}
	return &art, nil
}
