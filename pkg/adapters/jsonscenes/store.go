// Package jsonscenes persists the scene list as a JSON file.
package jsonscenes

import (
	"encoding/json"
	"fmt"

	"github.com/user/scenemix/pkg/ports"
)

// Store implements ports.SceneStore on a ports.FileSystem.
type Store struct {
	fs   ports.FileSystem
	path string
}

// New creates a Store writing to the given path.
func New(fs ports.FileSystem, path string) *Store {
	return &Store{fs: fs, path: path}
}

// Load returns the persisted scenes. A missing file is not an error,
// it just means nothing was persisted yet.
func (s *Store) Load() ([]ports.SceneRecord, error) {
	exists, err := s.fs.Exists(s.path)
	if err != nil {
		return nil, fmt.Errorf("stat scenes file: %w", err)
	}
	if !exists {
		return nil, nil
	}

	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read scenes file: %w", err)
	}

	var scenes []ports.SceneRecord
	if err := json.Unmarshal(data, &scenes); err != nil {
		return nil, fmt.Errorf("parse scenes file: %w", err)
	}
	return scenes, nil
}

// Save persists the full scene list, replacing the previous contents.
func (s *Store) Save(scenes []ports.SceneRecord) error {
	data, err := json.MarshalIndent(scenes, "", "  ")
	if err != nil {
		return fmt.Errorf("encode scenes: %w", err)
	}
	if err := s.fs.WriteFile(s.path, data); err != nil {
		return fmt.Errorf("write scenes file: %w", err)
	}
	return nil
}

// Ensure Store implements ports.SceneStore
var _ ports.SceneStore = (*Store)(nil)
