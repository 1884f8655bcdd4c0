// Package state keeps the working base URI that relative targets resolve
// against, so `yuri cd` carries over from one invocation to the next.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// State is the saved working base. The file holds a single JSON object,
// {"base": "<uri>"}; an empty Base means no working base.
type State struct {
	Base string `json:"base,omitempty"`

	path string
}

// DefaultPath is state.json next to the config file.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "yuri", "state.json")
}

// Load reads the working base saved at path. A missing file is an empty
// State bound to path, so the first Save creates it.
func Load(path string) (*State, error) {
	if path == "" {
		path = DefaultPath()
	}
	st := &State{path: path}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return st, nil
	case err != nil:
		return nil, fmt.Errorf("reading working base from %s: %w", path, err)
	}

	if err := json.Unmarshal(raw, st); err != nil {
		return nil, fmt.Errorf("decoding working base from %s: %w", path, err)
	}
	return st, nil
}

// Save writes the working base back to the file it was loaded from.
func (s *State) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}

	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding working base: %w", err)
	}
	return os.WriteFile(s.path, append(raw, '\n'), 0o644)
}

// SetBase records uri, already resolved and normalized, as the working base.
func (s *State) SetBase(uri string) {
	s.Base = uri
}

// Clear forgets the working base.
func (s *State) Clear() {
	s.Base = ""
}
