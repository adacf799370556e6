// Search command filters register rows by a text query.
package main

import (
	"github.com/spf13/cobra"

	"github.com/opsdesk/registerdesk/internal/session"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search rows by text",
	Long: `Search filters rows whose visible values contain the query,
case-insensitively. Derived duration text and attachment names match too.

Example:
  registerdesk search acme
  registerdesk search --register bills "pending"`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session.Session) error {
		matched := s.Search(args[0])
		if flagJSON {
			return printRowsJSON(s, matched)
		}

		header := s.Header()
		var rows [][]string
		var warnings []bool
		for _, rec := range matched {
			rows = append(rows, s.RowValues(rec))
			warnings = append(warnings, rec.Warning)
		}
		printRowTable(header, rows, warnings)
		return nil
	})
}
