// Package session holds the live editing state of one register: its record
// slice in table order, the next-sequence counter, the debounced autosave
// timer, the attachment view handles, and the notification aggregator. The
// original registers kept this state in ambient page scope; here it is one
// explicit struct per register.
package session

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/opsdesk/registerdesk/internal/codec"
	"github.com/opsdesk/registerdesk/internal/handle"
	"github.com/opsdesk/registerdesk/internal/notify"
	"github.com/opsdesk/registerdesk/internal/store"
	"github.com/opsdesk/registerdesk/pkg/types"
)

// Session is the per-register editing state. All exported methods are safe
// for concurrent use; in practice the only concurrency is the autosave
// timer firing alongside the caller.
type Session struct {
	schema types.Schema
	store  *store.Store
	log    *zap.Logger
	warn   int
	delay  time.Duration

	mu        sync.Mutex
	records   []*types.Record
	views     map[string]*handle.Ref
	handles   *handle.Registry
	alerts    *notify.Aggregator
	nextSeq   int
	saveTimer *time.Timer
	closed    bool
}

// Open creates a session for the given register and loads its rows from
// the durable slot. A missing or corrupt slot yields an empty register.
func Open(schema types.Schema, st *store.Store, cfg types.Config, log *zap.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{
		schema:  schema,
		store:   st,
		log:     log.With(zap.String("register", schema.Name)),
		warn:    cfg.WarnThreshold,
		delay:   cfg.AutosaveDelay,
		views:   make(map[string]*handle.Ref),
		handles: handle.NewRegistry(),
		alerts:  notify.New(),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Schema returns the register schema this session edits.
func (s *Session) Schema() types.Schema {
	return s.schema
}

// Records returns the rows in table order.
func (s *Session) Records() []*types.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*types.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the row count, driving the total badge.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// NextSeq returns the current value of the new-row counter.
func (s *Session) NextSeq() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextSeq
}

// Alerts returns the register's notification aggregator.
func (s *Session) Alerts() *notify.Aggregator {
	return s.alerts
}

// recordAt returns the 1-based row. Caller holds s.mu.
func (s *Session) recordAt(row int) (*types.Record, error) {
	if row < 1 || row > len(s.records) {
		return nil, fmt.Errorf("%w: %d", types.ErrInvalidRow, row)
	}
	return s.records[row-1], nil
}

// AddRow appends a blank autonumbered record. The counter never resets
// below the floor established at load time, so new rows do not collide
// with loaded ones in the common case.
func (s *Session) AddRow() *types.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSeq++
	rec := types.NewBlank(s.schema, strconv.Itoa(s.nextSeq))
	s.records = append(s.records, rec)
	return rec
}

// DeleteRow removes the 1-based row, releases its view handle, rebuilds the
// warning state, and persists immediately.
func (s *Session) DeleteRow(row int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.recordAt(row)
	if err != nil {
		return err
	}
	s.releaseViewLocked(rec)
	s.records = append(s.records[:row-1], s.records[row:]...)
	s.alerts.RescanAll(s.records, s.schema, s.warn)
	return s.saveAllLocked()
}

// EditField sets one field of the 1-based row. A date edit recomputes the
// duration state and rebuilds the aggregator, so stale warnings retract
// immediately. Every edit schedules the debounced autosave.
func (s *Session) EditField(row int, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.recordAt(row)
	if err != nil {
		return err
	}
	if err := rec.SetValue(s.schema, key, value); err != nil {
		return err
	}
	if key == s.schema.LinkField {
		rec.UpdateMode(s.schema)
	}
	if s.schema.IsDateField(key) {
		types.Recompute(rec, s.schema, s.warn)
		s.alerts.RescanAll(s.records, s.schema, s.warn)
	}
	s.scheduleAutosaveLocked()
	return nil
}

// SetAttachment validates the file size, then replaces the row's attachment:
// the previous view handle is revoked, the display mode recomputed, and a
// handle acquired for the new content. On any failure the record is
// unchanged and the error surfaced to the caller.
func (s *Session) SetAttachment(row int, name, mime string, r io.Reader, sizeBytes int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.recordAt(row)
	if err != nil {
		return err
	}
	if !codec.ValidateSize(sizeBytes) {
		return fmt.Errorf("%w: %s is %.2fMB", types.ErrOversizedFile, name, float64(sizeBytes)/(1024*1024))
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", types.ErrEncoding, name, err)
	}

	s.releaseViewLocked(rec)
	rec.Attachment = &types.FileBlob{Name: name, MIME: mime, Data: data}
	rec.UpdateMode(s.schema)
	s.acquireViewLocked(rec)
	s.scheduleAutosaveLocked()
	return nil
}

// ClearAttachment revokes the view handle, drops the attachment, and flips
// the display mode back to InputMode, preserving any link-field text.
func (s *Session) ClearAttachment(row int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.recordAt(row)
	if err != nil {
		return err
	}
	s.releaseViewLocked(rec)
	rec.Attachment = nil
	rec.UpdateMode(s.schema)
	s.scheduleAutosaveLocked()
	return nil
}

// ViewPath returns the materialized path of the row's attachment for
// external viewing. Returns ErrNoAttachment when the row has none.
func (s *Session) ViewPath(row int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.recordAt(row)
	if err != nil {
		return "", err
	}
	if rec.Attachment == nil {
		return "", types.ErrNoAttachment
	}
	if ref, ok := s.views[rec.RecordID]; ok {
		return ref.Path(), nil
	}
	s.acquireViewLocked(rec)
	ref, ok := s.views[rec.RecordID]
	if !ok {
		return "", fmt.Errorf("acquiring view handle for %s", rec.AttachmentName())
	}
	return ref.Path(), nil
}

// Search returns the rows whose visible values contain the query,
// case-insensitively. An empty query returns all rows.
func (s *Session) Search(query string) []*types.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []*types.Record
	for _, rec := range s.records {
		if rec.Matches(s.schema, query) {
			matched = append(matched, rec)
		}
	}
	return matched
}

// Header returns the export/print header row.
func (s *Session) Header() []string {
	return s.schema.Header()
}

// RowValues returns the displayed values of one record, with the attachment
// file name appended, in header order.
func (s *Session) RowValues(rec *types.Record) []string {
	return append(rec.VisibleValues(s.schema), rec.AttachmentName())
}

// Snapshot returns the header plus every row's displayed values and warning
// flags, the shape the export and print collaborators consume.
func (s *Session) Snapshot() (header []string, rows [][]string, warnings []bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	header = s.schema.Header()
	for _, rec := range s.records {
		rows = append(rows, append(rec.VisibleValues(s.schema), rec.AttachmentName()))
		warnings = append(warnings, rec.Warning)
	}
	return header, rows, warnings
}

// Close flushes a pending autosave and revokes every view handle. The
// backing store is owned by the caller and stays open.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	var err error
	if s.saveTimer != nil {
		s.saveTimer.Stop()
		s.saveTimer = nil
		err = s.saveAllLocked()
	}
	s.handles.ReleaseAll()
	s.views = make(map[string]*handle.Ref)
	return err
}

// acquireViewLocked creates the view handle for a record's attachment.
// Handle acquisition failure is logged and the record keeps working without
// a view path. Caller holds s.mu.
func (s *Session) acquireViewLocked(rec *types.Record) {
	if rec.Attachment == nil {
		return
	}
	ref, err := s.handles.Acquire(rec.Attachment)
	if err != nil {
		s.log.Warn("view handle acquisition failed",
			zap.String("file", rec.AttachmentName()), zap.Error(err))
		return
	}
	s.views[rec.RecordID] = ref
}

// releaseViewLocked revokes the record's view handle if one is live.
// Caller holds s.mu.
func (s *Session) releaseViewLocked(rec *types.Record) {
	if ref, ok := s.views[rec.RecordID]; ok {
		ref.Release()
		delete(s.views, rec.RecordID)
	}
}

// seqFloor computes the new-row counter floor from loaded rows: the highest
// numeric sequence value seen, never below the row count.
func seqFloor(records []*types.Record) int {
	floor := len(records)
	for i, rec := range records {
		n, err := strconv.Atoi(strings.TrimSpace(rec.Seq()))
		if err != nil {
			n = i + 1
		}
		if n > floor {
			floor = n
		}
	}
	return floor
}
