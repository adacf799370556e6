package types

import (
	"strings"

	"github.com/google/uuid"
)

// Display modes for the hyperlink cell. LinkMode presents the link-field
// value as a clickable label bound to the attachment; InputMode presents it
// as plain editable text. The mode is a pure function of the record, never
// persisted.
const (
	ModeInput = "input"
	ModeLink  = "link"
)

// SeqField is the sequence-number column key shared by every register.
const SeqField = "sno"

// FileBlob is a decoded attachment: the original bytes plus the filename
// and MIME type they were stored with.
type FileBlob struct {
	Name string
	MIME string
	Data []byte
}

// Record is one row of a register. Values holds the editable field values
// keyed by column key; Duration and Warning are derived from the schema's
// date pair and recomputed, not edited.
type Record struct {
	RecordID   string // UUID v7, in-memory identity; never written to the slot
	Values     map[string]string
	Attachment *FileBlob
	Duration   string
	Warning    bool

	// mode is the current hyperlink cell presentation. Kept in memory only;
	// reconstruction from storage re-derives it via RestoreMode.
	mode string
}

// NewBlank creates an empty record numbered with the given sequence value.
func NewBlank(s Schema, seq string) *Record {
	r := &Record{
		RecordID: NewRecordID(),
		Values:   make(map[string]string, len(s.Columns)),
	}
	for _, c := range s.Columns {
		if c.Derived {
			continue
		}
		r.Values[c.Key] = ""
	}
	r.Values[SeqField] = seq
	if s.HasDuration() {
		r.Duration = DurationEmpty
	}
	return r
}

// NewRecordID generates a UUID v7 record identity, falling back to v4 if
// v7 generation fails.
func NewRecordID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// Value returns the current value of the given field, or "" if unset.
func (r *Record) Value(key string) string {
	return r.Values[key]
}

// SetValue sets an editable field value. Returns ErrInvalidField if the key
// is not a column of the schema or names the derived duration column.
func (r *Record) SetValue(s Schema, key, value string) error {
	c, ok := s.Column(key)
	if !ok || c.Derived {
		return ErrInvalidField
	}
	r.Values[key] = value
	return nil
}

// Seq returns the record's sequence-number display string.
func (r *Record) Seq() string {
	return r.Values[SeqField]
}

// DisplayMode returns the current hyperlink cell presentation.
func (r *Record) DisplayMode() string {
	if r.mode == "" {
		return ModeInput
	}
	return r.mode
}

// UpdateMode recomputes the presentation after an edit to the link field or
// the attachment. Entering LinkMode requires both an attachment and a
// non-empty link-field value; clearing the attachment always returns to
// InputMode. Clearing the name while an attachment remains keeps LinkMode
// with empty link text. The link-field text itself is untouched, so mode
// switches are lossless.
func (r *Record) UpdateMode(s Schema) {
	switch {
	case r.Attachment == nil:
		r.mode = ModeInput
	case strings.TrimSpace(r.Values[s.LinkField]) != "":
		r.mode = ModeLink
	}
	// Attachment present, name empty: no transition defined; keep mode.
}

// RestoreMode re-derives the presentation for a record rehydrated from
// storage: LinkMode iff the attachment survived the round trip.
func (r *Record) RestoreMode() {
	if r.Attachment != nil {
		r.mode = ModeLink
	} else {
		r.mode = ModeInput
	}
}

// AttachmentName returns the attached file's name, or "" when absent.
func (r *Record) AttachmentName() string {
	if r.Attachment == nil {
		return ""
	}
	return r.Attachment.Name
}

// VisibleValues returns the displayed value of every column in table order;
// the derived duration column yields the current Duration string.
func (r *Record) VisibleValues(s Schema) []string {
	values := make([]string, 0, len(s.Columns))
	for _, c := range s.Columns {
		if c.Derived {
			values = append(values, r.Duration)
			continue
		}
		values = append(values, r.Values[c.Key])
	}
	return values
}

// Matches reports whether any visible value of the record contains the
// query, case-insensitively. An empty query matches everything.
func (r *Record) Matches(s Schema, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, v := range r.VisibleValues(s) {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}
