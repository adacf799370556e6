package export

import (
	"fmt"
	"html/template"
	"io"

	"github.com/opsdesk/registerdesk/pkg/types"
)

// printTemplate renders the standalone printable document: a titled table
// with the duration cell highlighted on warning rows.
var printTemplate = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>{{.Title}} - Print</title>
    <style>
        body { font-family: Arial, sans-serif; padding: 20px; }
        h1 { text-align: center; color: #333; }
        table { width: 100%; border-collapse: collapse; margin-top: 20px; }
        th, td { border: 1px solid #333; padding: 10px; text-align: left; }
        th { background-color: #7b2cbf; color: white; font-weight: bold; }
        tr:nth-child(even) { background-color: #f2f2f2; }
        .warning { color: #ff0000; font-weight: bold; }
    </style>
</head>
<body>
    <h1>{{.Title}}</h1>
    <table>
        <thead>
            <tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr>
        </thead>
        <tbody>
{{- range .Rows}}
            <tr>{{range .Cells}}<td{{if .Warning}} class="warning"{{end}}>{{.Value}}</td>{{end}}</tr>
{{- end}}
        </tbody>
    </table>
</body>
</html>
`))

// printCell is one rendered table cell.
type printCell struct {
	Value   string
	Warning bool
}

// printRow is one rendered table row.
type printRow struct {
	Cells []printCell
}

// Print renders the register snapshot as a standalone HTML document.
// Warning flags highlight the derived duration cell of the matching row.
// Returns ErrNoRows for an empty register.
func Print(w io.Writer, s types.Schema, rows [][]string, warnings []bool) error {
	if len(rows) == 0 {
		return types.ErrNoRows
	}

	durationCol := -1
	for i, c := range s.Columns {
		if c.Derived {
			durationCol = i
		}
	}

	doc := struct {
		Title  string
		Header []string
		Rows   []printRow
	}{
		Title:  s.Title,
		Header: s.Header(),
	}
	for i, row := range rows {
		pr := printRow{Cells: make([]printCell, len(row))}
		for j, v := range row {
			pr.Cells[j] = printCell{
				Value:   v,
				Warning: j == durationCol && i < len(warnings) && warnings[i],
			}
		}
		doc.Rows = append(doc.Rows, pr)
	}

	if err := printTemplate.Execute(w, doc); err != nil {
		return fmt.Errorf("rendering print view: %w", err)
	}
	return nil
}
