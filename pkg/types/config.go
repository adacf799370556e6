package types

import "time"

// Config holds the engine parameters for a registerdesk session.
type Config struct {
	DataDir       string        `json:"data_dir" yaml:"data_dir"`
	AutosaveDelay time.Duration `json:"autosave_delay" yaml:"autosave_delay"`
	WarnThreshold int           `json:"warn_threshold_days" yaml:"warn_threshold_days"`
}

// Defaults applied by Validate when a field is zero.
const (
	DefaultAutosaveDelay = time.Second
	DefaultWarnThreshold = 60
)

// Validate checks that the Config is well-formed, filling defaults for the
// autosave delay and warning threshold when unset. It returns a sentinel
// error from this package on failure.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return ErrDataDirEmpty
	}
	if c.AutosaveDelay == 0 {
		c.AutosaveDelay = DefaultAutosaveDelay
	}
	if c.AutosaveDelay < 0 {
		return ErrAutosaveDelayInvalid
	}
	if c.WarnThreshold == 0 {
		c.WarnThreshold = DefaultWarnThreshold
	}
	if c.WarnThreshold < 0 {
		return ErrWarnThresholdInvalid
	}
	return nil
}
