// Alerts command shows the duration warnings for a register.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opsdesk/registerdesk/internal/notify"
	"github.com/opsdesk/registerdesk/internal/session"
)

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Show expiry warnings for a register",
	Long: `Alerts lists the rows whose remaining duration is at or below the
warning threshold, one entry per serial number.

Example:
  registerdesk alerts
  registerdesk alerts --register epbg --json`,
	Args: cobra.NoArgs,
	RunE: runAlerts,
}

func runAlerts(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session.Session) error {
		entries := s.Alerts().Entries()

		if flagJSON {
			return printAlertsJSON(entries)
		}

		if len(entries) == 0 {
			fmt.Println("No alerts.")
			return nil
		}

		fmt.Printf("%d alert(s)\n", len(entries))
		for _, e := range entries {
			if e.Invalid {
				fmt.Printf("  #%s: invalid dates\n", e.Seq)
			} else {
				fmt.Printf("  #%s: %d days left\n", e.Seq, e.Days)
			}
			for _, f := range e.Fields {
				fmt.Printf("      %s: %s\n", f.Title, f.Value)
			}
		}
		return nil
	})
}

type alertJSON struct {
	Seq     string            `json:"sno"`
	Days    int               `json:"days,omitempty"`
	Invalid bool              `json:"invalid,omitempty"`
	Fields  map[string]string `json:"fields"`
}

func printAlertsJSON(entries []notify.Entry) error {
	out := make([]alertJSON, len(entries))
	for i, e := range entries {
		fields := make(map[string]string, len(e.Fields))
		for _, f := range e.Fields {
			fields[f.Title] = f.Value
		}
		out[i] = alertJSON{Seq: e.Seq, Days: e.Days, Invalid: e.Invalid, Fields: fields}
	}
	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal alerts: %w", err)
	}
	fmt.Println(string(encoded))
	return nil
}
