package file

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"trivia-client/internal/domain"
)

// Store persists the participant profile as a YAML file. This is the
// terminal-client analog of the cookie the browser game kept the name in.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Load(_ context.Context) (domain.Profile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Profile{}, domain.ErrProfileNotFound
		}
		return domain.Profile{}, err
	}
	var profile domain.Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return domain.Profile{}, err
	}
	return profile, nil
}

func (s *Store) Save(_ context.Context, profile domain.Profile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(profile)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Delete removes the saved profile; absent files are not an error.
func (s *Store) Delete(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
