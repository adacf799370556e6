package types

// Built-in register names for SchemaByName.
const (
	ContractorsRegister = "contractors"
	BillsRegister       = "bills"
	EPBGRegister        = "epbg"
)

// ContractorsSchema is the contractor list: the only register with a
// start/end date pair and the derived duration column.
var ContractorsSchema = Schema{
	Name:         ContractorsRegister,
	Title:        "Contractor List",
	SlotKey:      "dashboardData",
	SheetName:    "Data Table",
	ExportPrefix: "dashboard",
	Columns: []Column{
		{Key: "sno", Title: "S.NO", Width: 10},
		{Key: "efile", Title: "E-File", Width: 20},
		{Key: "contractor", Title: "Contractor", Width: 25},
		{Key: "description", Title: "Description", Width: 30},
		{Key: "value", Title: "Value", Width: 15},
		{Key: "startDate", Title: "Start Date", Width: 15, Date: true},
		{Key: "endDate", Title: "End Date", Width: 15, Date: true},
		{Key: "duration", Title: "Duration (Days)", Width: 20, Derived: true},
	},
	LinkField:     "contractor",
	StartField:    "startDate",
	EndField:      "endDate",
	DurationField: "duration",
}

// BillsSchema is the bill tracker register.
var BillsSchema = Schema{
	Name:         BillsRegister,
	Title:        "Bill Tracker",
	SlotKey:      "billTrackerData",
	SheetName:    "Bill Tracker",
	ExportPrefix: "bill_tracker",
	Columns: []Column{
		{Key: "sno", Title: "S.NO", Width: 10},
		{Key: "efile", Title: "E-File", Width: 20},
		{Key: "contractor", Title: "Contractor", Width: 25},
		{Key: "approvedDate", Title: "Approved Date", Width: 15, Date: true},
		{Key: "approvedAmount", Title: "Approved Amount", Width: 18},
		{Key: "billFrequency", Title: "Bill Frequency", Width: 15},
		{Key: "billDate", Title: "Bill Date", Width: 15, Date: true},
		{Key: "billDueDate", Title: "Bill Due Date", Width: 15, Date: true},
		{Key: "billPaidDate", Title: "Bill Paid Date", Width: 15, Date: true},
		{Key: "paidAmount", Title: "Paid Amount", Width: 15},
	},
	LinkField: "contractor",
}

// EPBGSchema is the earnest performance bank guarantee register. Its
// hyperlink cell is the BG number, not the contractor name.
var EPBGSchema = Schema{
	Name:         EPBGRegister,
	Title:        "EPBG's",
	SlotKey:      "epbgData",
	SheetName:    "EPBGs",
	ExportPrefix: "epbg",
	Columns: []Column{
		{Key: "sno", Title: "S.NO", Width: 10},
		{Key: "contractor", Title: "Contractor Name", Width: 25},
		{Key: "poNo", Title: "P.O No", Width: 18},
		{Key: "bgNo", Title: "BG No", Width: 18},
		{Key: "bgDate", Title: "BG Date", Width: 15, Date: true},
		{Key: "bgAmount", Title: "BG Amount", Width: 18},
		{Key: "bgValidity", Title: "BG Validity", Width: 18},
		{Key: "gemBid", Title: "GeM Bid No", Width: 18},
		{Key: "refEfile", Title: "Ref Efile No", Width: 18},
	},
	LinkField: "bgNo",
}

// Schemas lists the built-in registers in menu order.
var Schemas = []Schema{ContractorsSchema, BillsSchema, EPBGSchema}

// SchemaByName returns the built-in schema with the given register name.
// Returns ErrUnknownRegister if the name is not recognized.
func SchemaByName(name string) (Schema, error) {
	for _, s := range Schemas {
		if s.Name == name {
			return s, nil
		}
	}
	return Schema{}, ErrUnknownRegister
}
