// Detach command removes the inline attachment from a row.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opsdesk/registerdesk/internal/session"
)

var detachRow int

var detachCmd = &cobra.Command{
	Use:   "detach",
	Short: "Remove the attachment from a row",
	Long: `Detach removes the row's inline attachment and releases its view
handle. The row's link field reverts to input mode.

Example:
  registerdesk detach --row 2`,
	Args: cobra.NoArgs,
	RunE: runDetach,
}

func init() {
	detachCmd.Flags().IntVar(&detachRow, "row", 0, "row number (1-based)")
	detachCmd.MarkFlagRequired("row")
}

func runDetach(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session.Session) error {
		if err := s.ClearAttachment(detachRow); err != nil {
			return err
		}
		fmt.Printf("Detached file from row %d\n", detachRow)
		return nil
	})
}
