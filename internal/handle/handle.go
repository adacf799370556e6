// Package handle provides revocable view handles for attachment content,
// the desktop analogue of browser object URLs. A handle materializes the
// attachment bytes at a temporary path for external viewers; releasing it
// removes the file. Every mutation that invalidates a handle must release
// it, keeping at most one live handle per record.
package handle

import (
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/opsdesk/registerdesk/pkg/types"
)

// Registry tracks live handles so sessions and tests can assert that none
// outlives its record.
type Registry struct {
	mu   sync.Mutex
	live map[string]*Ref
}

// Ref is one revocable view handle.
type Ref struct {
	id   string
	path string

	mu       sync.Mutex
	registry *Registry
	released bool
}

// NewRegistry creates an empty handle registry.
func NewRegistry() *Registry {
	return &Registry{live: make(map[string]*Ref)}
}

// Acquire materializes the blob at a temporary path and returns its handle.
func (g *Registry) Acquire(blob *types.FileBlob) (*Ref, error) {
	f, err := os.CreateTemp("", "registerdesk-view-*")
	if err != nil {
		return nil, fmt.Errorf("creating view file: %w", err)
	}
	if _, err := f.Write(blob.Data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("writing view file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("closing view file: %w", err)
	}

	ref := &Ref{
		id:       uuid.New().String(),
		path:     f.Name(),
		registry: g,
	}
	g.mu.Lock()
	g.live[ref.id] = ref
	g.mu.Unlock()
	return ref, nil
}

// Live returns the number of currently held handles.
func (g *Registry) Live() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.live)
}

// ReleaseAll revokes every live handle. Used on session close.
func (g *Registry) ReleaseAll() {
	g.mu.Lock()
	refs := make([]*Ref, 0, len(g.live))
	for _, r := range g.live {
		refs = append(refs, r)
	}
	g.mu.Unlock()

	for _, r := range refs {
		r.Release()
	}
}

// Path returns the materialized file path, or "" after release.
func (r *Ref) Path() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return ""
	}
	return r.path
}

// Release revokes the handle and removes its file. Idempotent.
func (r *Ref) Release() {
	r.mu.Lock()
	if r.released {
		r.mu.Unlock()
		return
	}
	r.released = true
	path := r.path
	r.mu.Unlock()

	os.Remove(path)

	r.registry.mu.Lock()
	delete(r.registry.live, r.id)
	r.registry.mu.Unlock()
}
