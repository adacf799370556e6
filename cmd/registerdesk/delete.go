// Delete command removes a row from the selected register.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opsdesk/registerdesk/internal/session"
)

var (
	deleteRow int
	deleteYes bool
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a row from a register",
	Long: `Delete removes a row, releases its attachment view, and persists the
remaining rows immediately. Prompts for confirmation unless --yes is given.

Example:
  registerdesk delete --row 3
  registerdesk delete --row 3 --yes`,
	Args: cobra.NoArgs,
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().IntVar(&deleteRow, "row", 0, "row number (1-based)")
	deleteCmd.Flags().BoolVar(&deleteYes, "yes", false, "skip confirmation prompt")
	deleteCmd.MarkFlagRequired("row")
}

func runDelete(cmd *cobra.Command, args []string) error {
	if !deleteYes {
		fmt.Printf("Delete row %d? [y/N]: ", deleteRow)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	return withSession(func(s *session.Session) error {
		if err := s.DeleteRow(deleteRow); err != nil {
			return err
		}
		fmt.Printf("Deleted row %d\n", deleteRow)
		return nil
	})
}
