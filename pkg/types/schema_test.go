// Tests for register schema lookups and export metadata.
package types

import "testing"

func TestSchemaByName(t *testing.T) {
	for _, name := range []string{ContractorsRegister, BillsRegister, EPBGRegister} {
		s, err := SchemaByName(name)
		if err != nil {
			t.Errorf("SchemaByName(%q): %v", name, err)
		}
		if s.Name != name {
			t.Errorf("SchemaByName(%q).Name = %q", name, s.Name)
		}
	}

	if _, err := SchemaByName("invoices"); err != ErrUnknownRegister {
		t.Errorf("unknown register: err = %v, want ErrUnknownRegister", err)
	}
}

func TestSchemaShape(t *testing.T) {
	if !ContractorsSchema.HasDuration() {
		t.Error("contractors register should carry a duration column")
	}
	if BillsSchema.HasDuration() || EPBGSchema.HasDuration() {
		t.Error("bills and epbg registers should carry no duration column")
	}

	for _, s := range Schemas {
		if _, ok := s.Column(SeqField); !ok {
			t.Errorf("%s: missing %s column", s.Name, SeqField)
		}
		if _, ok := s.Column(s.LinkField); !ok {
			t.Errorf("%s: link field %s is not a column", s.Name, s.LinkField)
		}
		if s.SlotKey == "" || s.SheetName == "" || s.ExportPrefix == "" {
			t.Errorf("%s: incomplete export metadata", s.Name)
		}
	}

	if ContractorsSchema.LinkField != "contractor" {
		t.Errorf("contractors link field = %q", ContractorsSchema.LinkField)
	}
	if EPBGSchema.LinkField != "bgNo" {
		t.Errorf("epbg link field = %q", EPBGSchema.LinkField)
	}
}

func TestSchemaHeader(t *testing.T) {
	header := ContractorsSchema.Header()
	wantLen := len(ContractorsSchema.Columns) + 1
	if len(header) != wantLen {
		t.Fatalf("header len = %d, want %d", len(header), wantLen)
	}
	if header[len(header)-1] != "Attachment File Name" {
		t.Errorf("last header = %q", header[len(header)-1])
	}
	if header[0] != "S.NO" {
		t.Errorf("first header = %q", header[0])
	}

	widths := ContractorsSchema.ColumnWidths()
	if len(widths) != wantLen {
		t.Errorf("widths len = %d, want %d", len(widths), wantLen)
	}
}

func TestIsDateField(t *testing.T) {
	s := ContractorsSchema
	if !s.IsDateField("startDate") || !s.IsDateField("endDate") {
		t.Error("date pair should be date fields")
	}
	if s.IsDateField("contractor") || s.IsDateField("duration") || s.IsDateField("missing") {
		t.Error("non-date keys reported as date fields")
	}
}
