// Open command materializes a row's attachment for viewing.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/opsdesk/registerdesk/internal/session"
)

var (
	openRow int
	openOut string
)

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Write a row's attachment to a file",
	Long: `Open decodes the row's inline attachment and writes it out for
viewing. Without --out the file is written to the current directory under
its stored name.

Example:
  registerdesk open --row 2
  registerdesk open --row 2 --out /tmp/contract.pdf`,
	Args: cobra.NoArgs,
	RunE: runOpen,
}

func init() {
	openCmd.Flags().IntVar(&openRow, "row", 0, "row number (1-based)")
	openCmd.Flags().StringVar(&openOut, "out", "", "destination path (default: attachment name)")
	openCmd.MarkFlagRequired("row")
}

func runOpen(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session.Session) error {
		viewPath, err := s.ViewPath(openRow)
		if err != nil {
			return err
		}

		dest := openOut
		if dest == "" {
			records := s.Records()
			dest = records[openRow-1].AttachmentName()
		}

		// The view file is revoked when the session closes; copy it out
		// while the handle is live.
		if err := copyFile(viewPath, dest); err != nil {
			return err
		}
		fmt.Println(dest)
		return nil
	})
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open view file: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", dest, err)
	}
	return out.Close()
}
