// List command shows all rows of the selected register.
package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/opsdesk/registerdesk/internal/session"
	"github.com/opsdesk/registerdesk/pkg/types"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all rows in a register",
	Long: `List displays every row of the selected register, including derived
duration values and attachment file names.

Example:
  registerdesk list
  registerdesk list --register bills
  registerdesk list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// rowJSON is the JSON shape for a single row in list/search output.
type rowJSON struct {
	Row        int               `json:"row"`
	Mode       string            `json:"mode"`
	Values     map[string]string `json:"values"`
	Duration   string            `json:"duration,omitempty"`
	Warning    bool              `json:"warning"`
	Attachment string            `json:"attachment,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session.Session) error {
		if flagJSON {
			return printRowsJSON(s, s.Records())
		}
		header, rows, warnings := s.Snapshot()
		printRowTable(header, rows, warnings)
		return nil
	})
}

func printRowsJSON(s *session.Session, records []*types.Record) error {
	out := make([]rowJSON, len(records))
	schema := s.Schema()
	for i, rec := range records {
		values := make(map[string]string, len(schema.Columns))
		for _, col := range schema.Columns {
			if col.Derived {
				continue
			}
			values[col.Key] = rec.Value(col.Key)
		}
		out[i] = rowJSON{
			Row:        i + 1,
			Mode:       rec.DisplayMode(),
			Values:     values,
			Duration:   rec.Duration,
			Warning:    rec.Warning,
			Attachment: rec.AttachmentName(),
		}
	}
	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal rows: %w", err)
	}
	fmt.Println(string(encoded))
	return nil
}

// printRowTable prints rows in a human-readable table, marking warning rows
// with an exclamation point column.
func printRowTable(header []string, rows [][]string, warnings []bool) {
	if len(rows) == 0 {
		fmt.Println("No rows found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, " \t"+strings.Join(upperAll(header), "\t"))
	for i, row := range rows {
		mark := " "
		if i < len(warnings) && warnings[i] {
			mark = "!"
		}
		fmt.Fprintln(w, mark+"\t"+strings.Join(row, "\t"))
	}
	w.Flush()

	for _, line := range strings.Split(sb.String(), "\n") {
		if line == "" {
			continue
		}
		fmt.Println(strings.TrimRight(line, " "))
	}

	fmt.Printf("Total: %d row(s)\n", len(rows))
}

func upperAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToUpper(v)
	}
	return out
}
