package flupp

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedVersion = errors.New("unsupported FluPP file version")
	ErrInvalidFile        = errors.New("invalid FluPP file")
	ErrMissingLicSettings = errors.New("missing [LicSettings] line")
	ErrInvalidLicSettings = errors.New("invalid [LicSettings] line")
	ErrInvalidDuration    = errors.New("invalid duration")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidTime        = errors.New("invalid time")
	ErrRead               = errors.New("read FluPP file")
)

// ValueError reports a malformed value together with the raw text that
// failed to decode. Kind is one of the exported sentinels.
type ValueError struct {
	Kind error
	Raw  string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%v: %s", e.Kind, e.Raw)
}

func (e *ValueError) Unwrap() error {
	return e.Kind
}

// UnsupportedVersionError carries the version line of a file that is not a
// version 4 export.
type UnsupportedVersionError struct {
	Version string
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("%v: %s", ErrUnsupportedVersion, e.Version)
}

func (e *UnsupportedVersionError) Unwrap() error {
	return ErrUnsupportedVersion
}

func valueError(kind error, raw string) error {
	return &ValueError{Kind: kind, Raw: raw}
}
