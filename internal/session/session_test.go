// Tests for the per-register editing session: persistence round trips,
// debounced autosave, attachment handling, and warning lifecycle.
package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/opsdesk/registerdesk/internal/store"
	"github.com/opsdesk/registerdesk/pkg/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// testDelay keeps debounce tests fast while leaving room to observe
// coalescing.
const testDelay = 30 * time.Millisecond

func openTestSession(t *testing.T, schema types.Schema) (*Session, *store.Store) {
	t.Helper()
	dir := t.TempDir()
	st, err := store.Open(dir)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	cfg := types.Config{DataDir: dir, AutosaveDelay: testDelay}
	s, err := Open(schema, st, cfg, nil)
	if err != nil {
		t.Fatalf("session.Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, st
}

func reopen(t *testing.T, s *Session, st *store.Store) *Session {
	t.Helper()
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	cfg := types.Config{DataDir: "unused", AutosaveDelay: testDelay}
	s2, err := Open(s.Schema(), st, cfg, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { s2.Close() })
	return s2
}

func TestAddRow_Numbering(t *testing.T) {
	s, _ := openTestSession(t, types.ContractorsSchema)

	a := s.AddRow()
	b := s.AddRow()
	if a.Seq() != "1" || b.Seq() != "2" {
		t.Errorf("seqs = %s, %s; want 1, 2", a.Seq(), b.Seq())
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}

	// Deleting does not reuse numbers.
	if err := s.DeleteRow(2); err != nil {
		t.Fatalf("DeleteRow: %v", err)
	}
	c := s.AddRow()
	if c.Seq() != "3" {
		t.Errorf("seq after delete = %s, want 3", c.Seq())
	}
}

func TestEditField_PersistRoundTrip(t *testing.T) {
	s, st := openTestSession(t, types.ContractorsSchema)

	s.AddRow()
	if err := s.EditField(1, "contractor", "Acme Ltd"); err != nil {
		t.Fatalf("EditField: %v", err)
	}
	if err := s.EditField(1, "startDate", "2026-01-01"); err != nil {
		t.Fatalf("EditField: %v", err)
	}
	if err := s.EditField(1, "endDate", "2026-02-15"); err != nil {
		t.Fatalf("EditField: %v", err)
	}
	if err := s.SaveNow(); err != nil {
		t.Fatalf("SaveNow: %v", err)
	}

	s2 := reopen(t, s, st)
	if s2.Len() != 1 {
		t.Fatalf("Len after reopen = %d, want 1", s2.Len())
	}
	rec := s2.Records()[0]
	if rec.Value("contractor") != "Acme Ltd" {
		t.Errorf("contractor = %q", rec.Value("contractor"))
	}
	if rec.Duration != "45 days left" {
		t.Errorf("Duration = %q, want %q", rec.Duration, "45 days left")
	}
	if !rec.Warning {
		t.Error("Warning should survive the round trip")
	}
	if s2.Alerts().Count() != 1 {
		t.Errorf("alert count after reopen = %d, want 1", s2.Alerts().Count())
	}
}

func TestEditField_Errors(t *testing.T) {
	s, _ := openTestSession(t, types.ContractorsSchema)
	s.AddRow()

	if err := s.EditField(5, "contractor", "x"); !errors.Is(err, types.ErrInvalidRow) {
		t.Errorf("out-of-range row: err = %v, want ErrInvalidRow", err)
	}
	if err := s.EditField(1, "duration", "x"); !errors.Is(err, types.ErrInvalidField) {
		t.Errorf("derived field: err = %v, want ErrInvalidField", err)
	}
}

func TestDateEdit_RetractsStaleWarning(t *testing.T) {
	s, _ := openTestSession(t, types.ContractorsSchema)
	s.AddRow()
	s.EditField(1, "startDate", "2026-01-01")
	s.EditField(1, "endDate", "2026-01-20")
	if s.Alerts().Count() != 1 {
		t.Fatalf("alert count = %d, want 1", s.Alerts().Count())
	}

	// Pushing the end date out clears the warning immediately.
	s.EditField(1, "endDate", "2027-06-01")
	if s.Alerts().Count() != 0 {
		t.Errorf("alert count after extension = %d, want 0", s.Alerts().Count())
	}
	if s.Records()[0].Warning {
		t.Error("record still flagged after extension")
	}
}

func TestAttachment_Lifecycle(t *testing.T) {
	s, st := openTestSession(t, types.ContractorsSchema)
	s.AddRow()
	s.EditField(1, "contractor", "Acme Ltd")

	content := []byte("agreement body")
	err := s.SetAttachment(1, "agreement.pdf", "application/pdf", bytes.NewReader(content), int64(len(content)))
	if err != nil {
		t.Fatalf("SetAttachment: %v", err)
	}

	rec := s.Records()[0]
	if rec.DisplayMode() != types.ModeLink {
		t.Errorf("mode = %q, want link", rec.DisplayMode())
	}

	path, err := s.ViewPath(1)
	if err != nil {
		t.Fatalf("ViewPath: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading view file: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("view content = %q", got)
	}

	if err := s.SaveNow(); err != nil {
		t.Fatalf("SaveNow: %v", err)
	}

	s2 := reopen(t, s, st)
	rec2 := s2.Records()[0]
	if rec2.AttachmentName() != "agreement.pdf" {
		t.Errorf("attachment name after reopen = %q", rec2.AttachmentName())
	}
	if !bytes.Equal(rec2.Attachment.Data, content) {
		t.Error("attachment bytes changed across the round trip")
	}
	if rec2.DisplayMode() != types.ModeLink {
		t.Errorf("mode after reopen = %q, want link", rec2.DisplayMode())
	}

	// The old session's view path is revoked; the new session has its own.
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("old view file survived session close")
	}
	if _, err := s2.ViewPath(1); err != nil {
		t.Errorf("ViewPath after reopen: %v", err)
	}
}

func TestSetAttachment_Oversized(t *testing.T) {
	s, _ := openTestSession(t, types.ContractorsSchema)
	s.AddRow()

	err := s.SetAttachment(1, "big.bin", "application/octet-stream",
		bytes.NewReader(nil), 12*1024*1024)
	if !errors.Is(err, types.ErrOversizedFile) {
		t.Fatalf("err = %v, want ErrOversizedFile", err)
	}
	if s.Records()[0].Attachment != nil {
		t.Error("record gained an attachment despite rejection")
	}
	if !strings.Contains(err.Error(), "12.00MB") {
		t.Errorf("error should name the size, got %q", err)
	}
}

func TestClearAttachment(t *testing.T) {
	s, _ := openTestSession(t, types.ContractorsSchema)
	s.AddRow()
	s.EditField(1, "contractor", "Acme Ltd")
	s.SetAttachment(1, "a.txt", "text/plain", strings.NewReader("x"), 1)

	path, _ := s.ViewPath(1)
	if err := s.ClearAttachment(1); err != nil {
		t.Fatalf("ClearAttachment: %v", err)
	}

	rec := s.Records()[0]
	if rec.Attachment != nil {
		t.Error("attachment survived clear")
	}
	if rec.DisplayMode() != types.ModeInput {
		t.Errorf("mode = %q, want input", rec.DisplayMode())
	}
	if rec.Value("contractor") != "Acme Ltd" {
		t.Error("link-field text lost on detach")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("view file survived detach")
	}
	if _, err := s.ViewPath(1); !errors.Is(err, types.ErrNoAttachment) {
		t.Errorf("ViewPath after clear: err = %v, want ErrNoAttachment", err)
	}
}

func TestAutosave_Debounce(t *testing.T) {
	s, st := openTestSession(t, types.ContractorsSchema)
	s.AddRow()

	// A burst of edits within the window coalesces into one save after it.
	for _, v := range []string{"A", "Ac", "Acm", "Acme"} {
		if err := s.EditField(1, "contractor", v); err != nil {
			t.Fatalf("EditField: %v", err)
		}
	}
	if !s.AutosavePending() {
		t.Fatal("no autosave scheduled after edits")
	}

	// Nothing is persisted before the window elapses.
	if _, ok, _ := st.Get(s.Schema().SlotKey); ok {
		t.Error("slot written before the debounce window elapsed")
	}

	deadline := time.Now().Add(2 * time.Second)
	for s.AutosavePending() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	payload, ok, err := st.Get(s.Schema().SlotKey)
	if err != nil || !ok {
		t.Fatalf("slot after debounce: ok=%v err=%v", ok, err)
	}
	var snaps []map[string]string
	if err := json.Unmarshal([]byte(payload), &snaps); err != nil {
		t.Fatalf("unmarshal slot: %v", err)
	}
	if len(snaps) != 1 || snaps[0]["contractor"] != "Acme" {
		t.Errorf("persisted snapshot = %v, want final value only", snaps)
	}
}

func TestClose_FlushesPendingAutosave(t *testing.T) {
	s, st := openTestSession(t, types.ContractorsSchema)
	s.AddRow()
	s.EditField(1, "contractor", "Acme Ltd")

	// Close before the debounce window elapses.
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	payload, ok, err := st.Get(s.Schema().SlotKey)
	if err != nil || !ok {
		t.Fatalf("slot after close: ok=%v err=%v", ok, err)
	}
	if !strings.Contains(payload, "Acme Ltd") {
		t.Error("pending edit lost on close")
	}
}

func TestLoad_CorruptSlotStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(dir)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer st.Close()

	st.Put(types.ContractorsSchema.SlotKey, "{not json")

	cfg := types.Config{DataDir: dir}
	s, err := Open(types.ContractorsSchema, st, cfg, nil)
	if err != nil {
		t.Fatalf("Open with corrupt slot: %v", err)
	}
	defer s.Close()
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}

func TestLoad_BadAttachmentSkipped(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(dir)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer st.Close()

	snaps := []map[string]string{{
		"sno":        "1",
		"contractor": "Acme Ltd",
		"fileName":   "broken.pdf",
		"fileType":   "application/pdf",
		"fileBase64": "data:application/pdf;base64,!!!",
	}}
	data, _ := json.Marshal(snaps)
	st.Put(types.ContractorsSchema.SlotKey, string(data))

	s, err := Open(types.ContractorsSchema, st, types.Config{DataDir: dir}, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	rec := s.Records()[0]
	if rec.Attachment != nil {
		t.Error("undecodable attachment should be skipped")
	}
	if rec.Value("contractor") != "Acme Ltd" {
		t.Error("record fields lost along with the bad attachment")
	}
	if rec.DisplayMode() != types.ModeInput {
		t.Errorf("mode = %q, want input without attachment", rec.DisplayMode())
	}
}

func TestLoad_SeqFloor(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(dir)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer st.Close()

	snaps := []map[string]string{
		{"sno": "3"},
		{"sno": "17"},
		{"sno": "mixed"},
	}
	data, _ := json.Marshal(snaps)
	st.Put(types.ContractorsSchema.SlotKey, string(data))

	s, err := Open(types.ContractorsSchema, st, types.Config{DataDir: dir}, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if got := s.NextSeq(); got != 17 {
		t.Errorf("NextSeq = %d, want 17", got)
	}
	rec := s.AddRow()
	if rec.Seq() != "18" {
		t.Errorf("new row seq = %s, want 18", rec.Seq())
	}
}

func TestSearch(t *testing.T) {
	s, _ := openTestSession(t, types.ContractorsSchema)
	s.AddRow()
	s.EditField(1, "contractor", "Acme Ltd")
	s.AddRow()
	s.EditField(2, "contractor", "Beta Corp")

	if got := len(s.Search("acme")); got != 1 {
		t.Errorf("Search(acme) = %d rows, want 1", got)
	}
	if got := len(s.Search("")); got != 2 {
		t.Errorf("Search(empty) = %d rows, want all", got)
	}
	if got := len(s.Search("zzz")); got != 0 {
		t.Errorf("Search(zzz) = %d rows, want 0", got)
	}
}

func TestSnapshot(t *testing.T) {
	s, _ := openTestSession(t, types.ContractorsSchema)
	s.AddRow()
	s.EditField(1, "contractor", "Acme Ltd")
	s.EditField(1, "startDate", "2026-01-01")
	s.EditField(1, "endDate", "2026-01-20")
	s.SetAttachment(1, "a.pdf", "application/pdf", strings.NewReader("x"), 1)

	header, rows, warnings := s.Snapshot()
	if len(header) != len(types.ContractorsSchema.Columns)+1 {
		t.Fatalf("header len = %d", len(header))
	}
	if len(rows) != 1 || len(rows[0]) != len(header) {
		t.Fatalf("rows shape = %dx%d", len(rows), len(rows[0]))
	}
	if rows[0][len(rows[0])-1] != "a.pdf" {
		t.Errorf("attachment cell = %q", rows[0][len(rows[0])-1])
	}
	if !warnings[0] {
		t.Error("warning flag missing from snapshot")
	}
}

func TestDeleteRow_PersistsImmediately(t *testing.T) {
	s, st := openTestSession(t, types.ContractorsSchema)
	s.AddRow()
	s.AddRow()
	s.SaveNow()

	if err := s.DeleteRow(1); err != nil {
		t.Fatalf("DeleteRow: %v", err)
	}

	payload, ok, err := st.Get(s.Schema().SlotKey)
	if err != nil || !ok {
		t.Fatalf("slot after delete: ok=%v err=%v", ok, err)
	}
	var snaps []map[string]string
	if err := json.Unmarshal([]byte(payload), &snaps); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(snaps) != 1 {
		t.Errorf("persisted rows = %d, want 1", len(snaps))
	}
}
