// Print command renders the register as a printable HTML page.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opsdesk/registerdesk/internal/export"
	"github.com/opsdesk/registerdesk/internal/session"
)

var printOut string

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Render the register as printable HTML",
	Long: `Print renders a standalone HTML page of the register with warning
rows highlighted. Without --out the page is written to stdout.

Example:
  registerdesk print > contractors.html
  registerdesk print --register epbg --out epbg.html`,
	Args: cobra.NoArgs,
	RunE: runPrint,
}

func init() {
	printCmd.Flags().StringVar(&printOut, "out", "", "destination file (default: stdout)")
}

func runPrint(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session.Session) error {
		_, rows, warnings := s.Snapshot()

		if printOut == "" {
			return export.Print(os.Stdout, s.Schema(), rows, warnings)
		}

		f, err := os.Create(printOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", printOut, err)
		}
		if err := export.Print(f, s.Schema(), rows, warnings); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Wrote", printOut)
		return nil
	})
}
