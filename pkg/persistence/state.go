package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/rap-protocol/rap-go/pkg/config"
	"github.com/rap-protocol/rap-go/pkg/register"
)

// StateVersion is the current version of the state file format.
const StateVersion = 1

// RegisterState is one saved register.
type RegisterState struct {
	Addr  uint64   `json:"addr"`
	Value uint64   `json:"value"`
	Fifo  []uint64 `json:"fifo,omitempty"`
}

// ImageState is the on-disk form of a register image.
type ImageState struct {
	// Version is the state file format version.
	Version int `json:"version"`

	// SavedAt is when the state was last saved.
	SavedAt time.Time `json:"saved_at"`

	// Layout is the configuration layout the image was taken with.
	// Restoring into a different layout is refused.
	Layout string `json:"layout"`

	Registers []RegisterState `json:"registers,omitempty"`
}

// FromImage converts img, sorting registers by address.
func FromImage(layout string, img register.Image) *ImageState {
	addrs := make([]uint64, 0, len(img.Values)+len(img.Fifos))
	for a := range img.Values {
		addrs = append(addrs, a)
	}
	for a := range img.Fifos {
		if _, ok := img.Values[a]; !ok {
			addrs = append(addrs, a)
		}
	}
	slices.Sort(addrs)

	st := &ImageState{Layout: layout, Registers: make([]RegisterState, len(addrs))}
	for i, a := range addrs {
		st.Registers[i] = RegisterState{Addr: a, Value: img.Values[a], Fifo: img.Fifos[a]}
	}
	return st
}

// Image converts the state back to a register image.
func (s *ImageState) Image() register.Image {
	img := register.Image{
		Values: make(map[uint64]uint64, len(s.Registers)),
		Fifos:  make(map[uint64][]uint64),
	}
	for _, r := range s.Registers {
		img.Values[r.Addr] = r.Value
		if len(r.Fifo) > 0 {
			img.Fifos[r.Addr] = r.Fifo
		}
	}
	return img
}

// ImageStore manages persistence of a register image to a JSON file.
type ImageStore struct {
	mu   sync.Mutex
	path string
}

// NewImageStore creates a new image store.
func NewImageStore(path string) *ImageStore {
	return &ImageStore{path: path}
}

// Path returns the state file path.
func (s *ImageStore) Path() string { return s.path }

// Save persists the state to disk. The file is replaced atomically.
func (s *ImageStore) Save(state *ImageState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	state.Version = StateVersion
	if state.SavedAt.IsZero() {
		state.SavedAt = time.Now()
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Load reads the state from disk.
// Returns nil, nil if the file doesn't exist (empty state).
func (s *ImageStore) Load() (*ImageState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	state := &ImageState{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, err
	}
	if state.Version != StateVersion {
		return nil, fmt.Errorf("%s: unsupported state version %d", s.path, state.Version)
	}
	return state, nil
}

// Clear removes the state file.
func (s *ImageStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Restore loads the saved image into target. It reports whether a state
// file existed.
func (s *ImageStore) Restore(cfg *config.Configuration, target register.Snapshotter) (bool, error) {
	state, err := s.Load()
	if err != nil || state == nil {
		return false, err
	}
	if state.Layout != cfg.Layout() {
		return false, fmt.Errorf("%s: saved for %s, not %s", s.path, state.Layout, cfg.Layout())
	}
	target.Restore(state.Image())
	return true, nil
}

// Snapshot saves target's current image.
func (s *ImageStore) Snapshot(cfg *config.Configuration, target register.Snapshotter) error {
	return s.Save(FromImage(cfg.Layout(), target.Snapshot()))
}
