// Attach command stores a file inline on a row.
package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/opsdesk/registerdesk/internal/session"
)

var (
	attachRow  int
	attachFile string
)

var attachCmd = &cobra.Command{
	Use:   "attach",
	Short: "Attach a file to a row",
	Long: `Attach stores a file inline on a row. Files over 10MB are rejected.
Attaching switches the row's link field to link mode once that field has a
value.

Example:
  registerdesk attach --row 2 --file ./contract.pdf`,
	Args: cobra.NoArgs,
	RunE: runAttach,
}

func init() {
	attachCmd.Flags().IntVar(&attachRow, "row", 0, "row number (1-based)")
	attachCmd.Flags().StringVar(&attachFile, "file", "", "path of the file to attach")
	attachCmd.MarkFlagRequired("row")
	attachCmd.MarkFlagRequired("file")
}

func runAttach(cmd *cobra.Command, args []string) error {
	f, err := os.Open(attachFile)
	if err != nil {
		return fmt.Errorf("open attachment: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat attachment: %w", err)
	}

	name := filepath.Base(attachFile)
	mimeType := mime.TypeByExtension(filepath.Ext(name))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	return withSession(func(s *session.Session) error {
		if err := s.SetAttachment(attachRow, name, mimeType, f, info.Size()); err != nil {
			return err
		}
		fmt.Printf("Attached %s to row %d\n", name, attachRow)
		return nil
	})
}
