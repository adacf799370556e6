// Tests for session configuration validation.
package types

import (
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	cfg := Config{DataDir: "/tmp/rd"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.AutosaveDelay != DefaultAutosaveDelay {
		t.Errorf("AutosaveDelay = %v, want %v", cfg.AutosaveDelay, DefaultAutosaveDelay)
	}
	if cfg.WarnThreshold != DefaultWarnThreshold {
		t.Errorf("WarnThreshold = %d, want %d", cfg.WarnThreshold, DefaultWarnThreshold)
	}
}

func TestConfigValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{"empty data dir", Config{}, ErrDataDirEmpty},
		{"negative delay", Config{DataDir: "/tmp/rd", AutosaveDelay: -time.Second}, ErrAutosaveDelayInvalid},
		{"negative threshold", Config{DataDir: "/tmp/rd", WarnThreshold: -1}, ErrWarnThresholdInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigValidate_KeepsExplicitValues(t *testing.T) {
	cfg := Config{DataDir: "/tmp/rd", AutosaveDelay: 50 * time.Millisecond, WarnThreshold: 10}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.AutosaveDelay != 50*time.Millisecond || cfg.WarnThreshold != 10 {
		t.Errorf("explicit values overwritten: %v %d", cfg.AutosaveDelay, cfg.WarnThreshold)
	}
}
