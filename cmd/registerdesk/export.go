// Export command writes the register to an xlsx workbook.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/opsdesk/registerdesk/internal/export"
	"github.com/opsdesk/registerdesk/internal/session"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the register to an xlsx file",
	Long: `Export writes every row, including derived durations and attachment
file names, to a dated xlsx workbook. Exporting an empty register is an
error.

Example:
  registerdesk export
  registerdesk export --register bills --out /tmp`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", ".", "directory to write the workbook into")
}

func runExport(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session.Session) error {
		_, rows, _ := s.Snapshot()
		path, err := export.Excel(s.Schema(), rows, exportOut, time.Now())
		if err != nil {
			return err
		}
		fmt.Println("Exported to", path)
		return nil
	})
}
