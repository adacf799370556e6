// Init command for the registerdesk CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opsdesk/registerdesk/internal/store"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize registerdesk storage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}
		if err := ensureConfigDir(configDir); err != nil {
			return err
		}
		if err := ensureDefaultConfigFile(configDir); err != nil {
			return err
		}

		dataDir, err := resolveDataDir()
		if err != nil {
			return err
		}

		// Opening the store creates the data directory and the slot table.
		st, err := store.Open(dataDir)
		if err != nil {
			return err
		}
		if err := st.Close(); err != nil {
			return err
		}

		fmt.Println("Registerdesk initialized successfully")
		fmt.Println("  config:", configDir)
		fmt.Println("  data:  ", dataDir)
		return nil
	},
}
