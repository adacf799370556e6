// Save command persists the selected register immediately.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opsdesk/registerdesk/internal/session"
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Persist the register immediately",
	Long: `Save writes every row of the selected register to storage right
away, bypassing the autosave delay.

Example:
  registerdesk save --register epbg`,
	Args: cobra.NoArgs,
	RunE: runSave,
}

func runSave(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session.Session) error {
		if err := s.SaveNow(); err != nil {
			return err
		}
		fmt.Println("Data saved successfully!")
		return nil
	})
}
