// Tests for revocable attachment view handles.
package handle

import (
	"os"
	"testing"

	"github.com/opsdesk/registerdesk/pkg/types"
)

func testBlob() *types.FileBlob {
	return &types.FileBlob{Name: "doc.pdf", MIME: "application/pdf", Data: []byte("content")}
}

func TestAcquireRelease(t *testing.T) {
	g := NewRegistry()

	ref, err := g.Acquire(testBlob())
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if g.Live() != 1 {
		t.Errorf("Live() = %d, want 1", g.Live())
	}

	path := ref.Path()
	if path == "" {
		t.Fatal("Path() empty for live handle")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading view file: %v", err)
	}
	if string(data) != "content" {
		t.Errorf("view file content = %q", data)
	}

	ref.Release()
	if g.Live() != 0 {
		t.Errorf("Live() after release = %d, want 0", g.Live())
	}
	if ref.Path() != "" {
		t.Error("Path() should be empty after release")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("view file survived release")
	}

	// Idempotent.
	ref.Release()
	if g.Live() != 0 {
		t.Errorf("Live() after double release = %d", g.Live())
	}
}

func TestReleaseAll(t *testing.T) {
	g := NewRegistry()

	var paths []string
	for i := 0; i < 3; i++ {
		ref, err := g.Acquire(testBlob())
		if err != nil {
			t.Fatalf("Acquire: %v", err)
		}
		paths = append(paths, ref.Path())
	}
	if g.Live() != 3 {
		t.Fatalf("Live() = %d, want 3", g.Live())
	}

	g.ReleaseAll()
	if g.Live() != 0 {
		t.Errorf("Live() after ReleaseAll = %d, want 0", g.Live())
	}
	for _, p := range paths {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("view file %s survived ReleaseAll", p)
		}
	}
}

func TestHandlesIndependent(t *testing.T) {
	g := NewRegistry()

	a, err := g.Acquire(testBlob())
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	b, err := g.Acquire(testBlob())
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if a.Path() == b.Path() {
		t.Error("two handles share a path")
	}

	a.Release()
	if b.Path() == "" {
		t.Error("releasing one handle revoked another")
	}
	if g.Live() != 1 {
		t.Errorf("Live() = %d, want 1", g.Live())
	}
	b.Release()
}
