package types

// Column describes one visible column of a register.
type Column struct {
	Key     string  // field key, also the JSON key in the stored snapshot
	Title   string  // display title used by export and print
	Width   float64 // spreadsheet column width in characters
	Date    bool    // value is a calendar date in DateLayout
	Derived bool    // value is computed (duration), never edited directly
}

// DateLayout is the wire format for date field values, matching the
// YYYY-MM-DD strings the registers have always stored.
const DateLayout = "2006-01-02"

// Schema describes one register: its ordered columns, which column carries
// the attachment hyperlink, and which date pair (if any) drives the derived
// duration column.
type Schema struct {
	Name         string   // register identifier used on the CLI
	Title        string   // display title used by the print view
	SlotKey      string   // durable storage slot key
	SheetName    string   // worksheet name for spreadsheet export
	ExportPrefix string   // filename prefix for exports
	Columns      []Column // visible columns in table order

	// LinkField is the column whose cell flips between plain text and an
	// attachment hyperlink. Presentation is derived, never stored.
	LinkField string

	// StartField and EndField name the date pair driving the duration
	// column; all three are empty for registers without one.
	StartField    string
	EndField      string
	DurationField string
}

// HasDuration reports whether this register carries a derived duration column.
func (s Schema) HasDuration() bool {
	return s.DurationField != ""
}

// Column returns the column with the given key.
func (s Schema) Column(key string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}

// IsDateField reports whether key names an editable date column.
func (s Schema) IsDateField(key string) bool {
	c, ok := s.Column(key)
	return ok && c.Date && !c.Derived
}

// Header returns the column titles in table order, with the attachment
// column appended, for export and print collaborators.
func (s Schema) Header() []string {
	header := make([]string, 0, len(s.Columns)+1)
	for _, c := range s.Columns {
		header = append(header, c.Title)
	}
	return append(header, "Attachment File Name")
}

// ColumnWidths returns the spreadsheet widths in table order, with the
// attachment column appended.
func (s Schema) ColumnWidths() []float64 {
	widths := make([]float64, 0, len(s.Columns)+1)
	for _, c := range s.Columns {
		widths = append(widths, c.Width)
	}
	return append(widths, attachmentColWidth)
}

const attachmentColWidth = 30

