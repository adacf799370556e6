// Set command edits a single field of a row.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opsdesk/registerdesk/internal/session"
)

var (
	setRow   int
	setField string
	setValue string
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Set a field value on a row",
	Long: `Set writes a value into one field of a row. Editing a date field
recomputes the duration and refreshes warnings for the whole register.

Example:
  registerdesk set --row 2 --field contractor --value "Acme Ltd"
  registerdesk set --row 2 --field endDate --value 2026-10-01`,
	Args: cobra.NoArgs,
	RunE: runSet,
}

func init() {
	setCmd.Flags().IntVar(&setRow, "row", 0, "row number (1-based)")
	setCmd.Flags().StringVar(&setField, "field", "", "field key")
	setCmd.Flags().StringVar(&setValue, "value", "", "value to set")
	setCmd.MarkFlagRequired("row")
	setCmd.MarkFlagRequired("field")
}

func runSet(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session.Session) error {
		if err := s.EditField(setRow, setField, setValue); err != nil {
			return err
		}
		fmt.Printf("Set %s on row %d\n", setField, setRow)
		return nil
	})
}
