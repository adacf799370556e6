// Add command appends a new row to the selected register.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opsdesk/registerdesk/internal/session"
)

var addFields []string

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new row to a register",
	Long: `Add appends a blank row with the next serial number. Use --field to
fill fields in the same invocation.

Example:
  registerdesk add
  registerdesk add --field contractor="Acme Ltd" --field startDate=2026-01-15`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringArrayVar(&addFields, "field", nil, "field assignment key=value (repeatable)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session.Session) error {
		rec := s.AddRow()
		row := s.Len()

		for _, assignment := range addFields {
			key, value, ok := strings.Cut(assignment, "=")
			if !ok {
				return fmt.Errorf("invalid --field %q: expected key=value", assignment)
			}
			if err := s.EditField(row, key, value); err != nil {
				return fmt.Errorf("set %s: %w", key, err)
			}
		}

		// A freshly added row schedules no autosave on its own; persist it
		// before the session closes.
		if err := s.SaveNow(); err != nil {
			return err
		}

		fmt.Printf("Added row %s (row %d)\n", rec.Seq(), row)
		return nil
	})
}
