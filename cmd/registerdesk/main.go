// Package main provides the registerdesk CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/opsdesk/registerdesk/pkg/types"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode distinguishes user errors (bad row, bad field, rejected file)
// from system errors (storage, filesystem).
func exitCode(err error) int {
	for _, userErr := range []error{
		types.ErrInvalidRow,
		types.ErrInvalidField,
		types.ErrUnknownRegister,
		types.ErrNoAttachment,
		types.ErrOversizedFile,
		types.ErrNoRows,
		types.ErrNotFound,
	} {
		if errors.Is(err, userErr) {
			return exitUserError
		}
	}
	return exitSysError
}
