// Serialization of the register's row collection to and from its durable
// slot. The stored shape is a JSON array of flat string maps, one per
// record in table order: every column key (duration as displayed) plus the
// fileName/fileBase64/fileType attachment triple, empty when absent.
package session

import (
	"encoding/json"
	"strconv"

	"go.uber.org/zap"

	"github.com/opsdesk/registerdesk/internal/codec"
	"github.com/opsdesk/registerdesk/pkg/types"
)

// Attachment keys in the stored snapshot.
const (
	snapFileName   = "fileName"
	snapFileType   = "fileType"
	snapFileBase64 = "fileBase64"
)

// saveAllLocked serializes every record, encoding attachments in table
// order, and writes the snapshot to the register's slot. Caller holds s.mu.
func (s *Session) saveAllLocked() error {
	snaps := make([]map[string]string, 0, len(s.records))
	for _, rec := range s.records {
		snap := make(map[string]string, len(s.schema.Columns)+3)
		for _, c := range s.schema.Columns {
			if c.Derived {
				snap[c.Key] = rec.Duration
				continue
			}
			snap[c.Key] = rec.Values[c.Key]
		}
		var p codec.Payload
		if rec.Attachment != nil {
			p = codec.EncodeBlob(rec.Attachment)
		}
		snap[snapFileName] = p.FileName
		snap[snapFileType] = p.FileType
		snap[snapFileBase64] = p.FileBase64
		snaps = append(snaps, snap)
	}

	data, err := json.Marshal(snaps)
	if err != nil {
		return err
	}
	return s.store.Put(s.schema.SlotKey, string(data))
}

// load rehydrates the record slice from the slot. A missing slot is a fresh
// register; a corrupt payload is logged and treated as empty, never
// surfaced as a failure. Attachment decode failures skip only that record's
// attachment. After reconstruction the aggregator rescan recomputes every
// record's derived state, which is authoritative over the parsed values.
func (s *Session) load() error {
	payload, ok, err := s.store.Get(s.schema.SlotKey)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	var snaps []map[string]string
	if err := json.Unmarshal([]byte(payload), &snaps); err != nil {
		s.log.Warn("slot payload unreadable, starting empty",
			zap.String("slot", s.schema.SlotKey),
			zap.NamedError("cause", types.ErrCorruptStorage),
			zap.Error(err))
		return nil
	}

	for i, snap := range snaps {
		rec := &types.Record{
			RecordID: types.NewRecordID(),
			Values:   make(map[string]string, len(s.schema.Columns)),
		}
		for _, c := range s.schema.Columns {
			if c.Derived {
				continue
			}
			rec.Values[c.Key] = snap[c.Key]
		}
		if rec.Values[types.SeqField] == "" {
			rec.Values[types.SeqField] = strconv.Itoa(i + 1)
		}
		if s.schema.HasDuration() {
			types.RestoreDerived(rec, s.schema, snap[s.schema.DurationField], s.warn)
		}

		p := codec.Payload{
			FileName:   snap[snapFileName],
			FileType:   snap[snapFileType],
			FileBase64: snap[snapFileBase64],
		}
		if !p.Empty() {
			blob, err := codec.Decode(p)
			if err != nil {
				s.log.Warn("attachment skipped on load",
					zap.String("file", p.FileName), zap.Error(err))
			} else {
				rec.Attachment = blob
				s.acquireViewLocked(rec)
			}
		}
		rec.RestoreMode()
		s.records = append(s.records, rec)
	}

	s.nextSeq = seqFloor(s.records)

	// Rebuild transient warning state from scratch.
	s.alerts.RescanAll(s.records, s.schema, s.warn)
	return nil
}
