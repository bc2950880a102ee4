package mocks

import (
	"sync"

	"github.com/user/scenemix/pkg/ports"
)

// SceneStore is a mock implementation of ports.SceneStore.
type SceneStore struct {
	mu     sync.Mutex
	scenes []ports.SceneRecord

	LoadFunc func() ([]ports.SceneRecord, error)
	SaveFunc func(scenes []ports.SceneRecord) error

	// Recorded calls for verification
	SaveCalls int
}

func (m *SceneStore) Load() ([]ports.SceneRecord, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scenes, nil
}

func (m *SceneStore) Save(scenes []ports.SceneRecord) error {
	m.mu.Lock()
	m.SaveCalls++
	m.mu.Unlock()
	if m.SaveFunc != nil {
		return m.SaveFunc(scenes)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scenes = scenes
	return nil
}

// Saved returns the last saved scene list (for test verification).
func (m *SceneStore) Saved() []ports.SceneRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scenes
}

var _ ports.SceneStore = (*SceneStore)(nil)
