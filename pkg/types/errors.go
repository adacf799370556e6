package types

import "errors"

// Record and session operation errors.
var (
	ErrNotFound      = errors.New("record not found")
	ErrInvalidRow    = errors.New("invalid row number")
	ErrInvalidField  = errors.New("field not defined for this register")
	ErrNoAttachment  = errors.New("record has no attachment")
	ErrOversizedFile = errors.New("file size exceeds 10MB")
	ErrNoRows        = errors.New("register has no rows")
)

// Attachment codec errors. Both are recovered at the record boundary: the
// affected record keeps its fields and is treated as having no attachment.
var (
	ErrEncoding = errors.New("attachment encoding failed")
	ErrDecoding = errors.New("attachment payload malformed")
)

// Storage errors. A corrupt slot is recovered as an empty dataset; it is
// logged and never surfaced as a crash.
var (
	ErrCorruptStorage = errors.New("stored register data is corrupt")
	ErrStoreClosed    = errors.New("store is closed")
)

// Schema and config errors.
var (
	ErrUnknownRegister      = errors.New("unknown register")
	ErrDataDirEmpty         = errors.New("data directory must not be empty")
	ErrAutosaveDelayInvalid = errors.New("autosave delay must be positive")
	ErrWarnThresholdInvalid = errors.New("warning threshold must be positive")
)
