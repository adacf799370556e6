// Shared helpers for register commands: session setup and teardown around a
// command body.
package main

import (
	"fmt"

	"github.com/opsdesk/registerdesk/internal/session"
	"github.com/opsdesk/registerdesk/internal/store"
	"github.com/opsdesk/registerdesk/pkg/types"
)

// withSession opens the selected register, runs the command body, and
// tears down: session close flushes any pending autosave before the store
// closes.
func withSession(fn func(s *session.Session) error) error {
	schema, err := types.SchemaByName(flagRegister)
	if err != nil {
		return fmt.Errorf("%w: %s", err, flagRegister)
	}

	dataDir, err := resolveDataDir()
	if err != nil {
		return err
	}

	st, err := store.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	cfg := types.Config{
		DataDir:       dataDir,
		WarnThreshold: configWarnDays,
	}
	sess, err := session.Open(schema, st, cfg, logger)
	if err != nil {
		return err
	}

	if err := fn(sess); err != nil {
		_ = sess.Close()
		return err
	}
	if err := sess.Close(); err != nil {
		return fmt.Errorf("flushing pending changes: %w", err)
	}
	return st.Close()
}
