// End-to-end tests for the register lifecycle: open, edit, attach, close,
// and reopen against a real on-disk slot store.
package integration

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdesk/registerdesk/internal/session"
	"github.com/opsdesk/registerdesk/internal/store"
	"github.com/opsdesk/registerdesk/pkg/types"
)

func openRegister(t *testing.T, dir string, schema types.Schema) (*session.Session, *store.Store) {
	t.Helper()
	st, err := store.Open(dir)
	require.NoError(t, err)

	cfg := types.Config{DataDir: dir, AutosaveDelay: 20 * time.Millisecond}
	s, err := session.Open(schema, st, cfg, nil)
	require.NoError(t, err)
	return s, st
}

func TestRegisterLifecycle(t *testing.T) {
	dir := t.TempDir()

	s, st := openRegister(t, dir, types.ContractorsSchema)

	// Build up a register: two rows, one with dates inside the warning
	// window and an attachment.
	s.AddRow()
	require.NoError(t, s.EditField(1, "contractor", "Acme Ltd"))
	require.NoError(t, s.EditField(1, "startDate", "2026-01-01"))
	require.NoError(t, s.EditField(1, "endDate", "2026-02-01"))

	content := []byte("signed agreement")
	require.NoError(t, s.SetAttachment(1, "agreement.pdf", "application/pdf",
		bytes.NewReader(content), int64(len(content))))

	s.AddRow()
	require.NoError(t, s.EditField(2, "contractor", "Beta Corp"))
	require.NoError(t, s.EditField(2, "startDate", "2026-01-01"))
	require.NoError(t, s.EditField(2, "endDate", "2027-06-01"))

	assert.Equal(t, 1, s.Alerts().Count(), "one row inside the warning window")

	// Close flushes the pending autosave; reopening restores everything.
	require.NoError(t, s.Close())
	require.NoError(t, st.Close())

	s2, st2 := openRegister(t, dir, types.ContractorsSchema)
	defer st2.Close()
	defer s2.Close()

	require.Equal(t, 2, s2.Len())
	rec := s2.Records()[0]
	assert.Equal(t, "Acme Ltd", rec.Value("contractor"))
	assert.Equal(t, "31 days left", rec.Duration)
	assert.True(t, rec.Warning)
	assert.Equal(t, types.ModeLink, rec.DisplayMode())
	assert.Equal(t, "agreement.pdf", rec.AttachmentName())
	assert.Equal(t, content, rec.Attachment.Data)
	assert.Equal(t, 1, s2.Alerts().Count())

	// The materialized view carries the original bytes.
	path, err := s2.ViewPath(1)
	require.NoError(t, err)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestRegistersAreIsolated(t *testing.T) {
	dir := t.TempDir()

	st, err := store.Open(dir)
	require.NoError(t, err)
	defer st.Close()

	for _, schema := range types.Schemas {
		cfg := types.Config{DataDir: dir}
		s, err := session.Open(schema, st, cfg, nil)
		require.NoError(t, err)

		s.AddRow()
		require.NoError(t, s.EditField(1, "contractor", "Tenant of "+schema.Name))
		require.NoError(t, s.SaveNow())
		require.NoError(t, s.Close())
	}

	// Each register sees only its own row.
	for _, schema := range types.Schemas {
		s, err := session.Open(schema, st, types.Config{DataDir: dir}, nil)
		require.NoError(t, err)
		require.Equal(t, 1, s.Len(), schema.Name)
		assert.Equal(t, "Tenant of "+schema.Name, s.Records()[0].Value("contractor"))
		require.NoError(t, s.Close())
	}
}

func TestDeleteSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	s, st := openRegister(t, dir, types.BillsSchema)
	s.AddRow()
	s.AddRow()
	s.AddRow()
	require.NoError(t, s.EditField(2, "contractor", "Middle Corp"))
	require.NoError(t, s.SaveNow())

	require.NoError(t, s.DeleteRow(2))
	require.NoError(t, s.Close())
	require.NoError(t, st.Close())

	s2, st2 := openRegister(t, dir, types.BillsSchema)
	defer st2.Close()
	defer s2.Close()

	require.Equal(t, 2, s2.Len())
	for _, rec := range s2.Records() {
		assert.NotEqual(t, "Middle Corp", rec.Value("contractor"))
	}

	// Numbering continues past every sno ever issued.
	rec := s2.AddRow()
	assert.Equal(t, "4", rec.Seq())
}

func TestDatabaseFileOnDisk(t *testing.T) {
	dir := t.TempDir()
	s, st := openRegister(t, dir, types.EPBGSchema)
	s.AddRow()
	require.NoError(t, s.SaveNow())
	require.NoError(t, s.Close())
	require.NoError(t, st.Close())

	_, err := os.Stat(filepath.Join(dir, "registerdesk.db"))
	require.NoError(t, err, "slot database should live inside the data directory")
}
