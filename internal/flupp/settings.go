package flupp

import (
	"strconv"
	"strings"
	"time"
)

const (
	genSettingsPrefix = "[GenSettings]"
	licSettingsPrefix = "[LicSettings]"
)

// GeneralSettings holds the club and pilot record attached to the whole file.
type GeneralSettings struct {
	Name      string `json:"name"`
	Road      string `json:"road"`
	Location  string `json:"location"`
	PilotName string `json:"pilot_name"`
}

// LicenseSettings holds the licensing record of one flight log.
type LicenseSettings struct {
	// Starts and Time are the launches and flight time logged before the
	// first row of the flight table.
	Starts       uint32        `json:"starts"`
	Time         time.Duration `json:"time"`
	LicenseSince *Date         `json:"license_since,omitempty"`
	IDPrefix     string        `json:"id_prefix"`
	DistanceUnit string        `json:"distance_unit"`
}

// License settings field positions. 2 and 5 to 7 are reserved by FluPP.
const (
	licFieldStarts       = 0
	licFieldTime         = 1
	licFieldSince        = 3
	licFieldIDPrefix     = 4
	licFieldDistanceUnit = 8
)

// fields splits a semicolon record. The result always has at least one
// element, so the first field of a record is never missing.
type fields []string

func splitFields(s string) fields {
	return strings.Split(s, ";")
}

func (f fields) at(i int) (string, bool) {
	if i < 0 || i >= len(f) {
		return "", false
	}
	return f[i], true
}

func (f fields) str(i int) string {
	v, _ := f.at(i)
	return v
}

// ParseGeneralSettings decodes the body of a [GenSettings] line. Missing
// trailing fields are empty; the record itself is never invalid.
func ParseGeneralSettings(s string) GeneralSettings {
	f := splitFields(s)
	return GeneralSettings{
		Name:      f[0],
		Road:      f.str(1),
		Location:  f.str(2),
		PilotName: f.str(3),
	}
}

// ParseLicenseSettings decodes the body of a [LicSettings] line. Only
// trailing fields may be left out; a time or date field that is present
// must be valid even when empty.
func ParseLicenseSettings(s string) (LicenseSettings, error) {
	f := splitFields(s)

	starts, err := strconv.ParseUint(f[licFieldStarts], 10, 32)
	if err != nil {
		return LicenseSettings{}, valueError(ErrInvalidLicSettings, s)
	}
	settings := LicenseSettings{
		Starts:       uint32(starts),
		IDPrefix:     f.str(licFieldIDPrefix),
		DistanceUnit: f.str(licFieldDistanceUnit),
	}

	if raw, ok := f.at(licFieldTime); ok {
		if settings.Time, err = ParseDuration(raw); err != nil {
			return LicenseSettings{}, err
		}
	}
	if raw, ok := f.at(licFieldSince); ok {
		since, err := ParseDate(raw)
		if err != nil {
			return LicenseSettings{}, err
		}
		settings.LicenseSince = &since
	}
	return settings, nil
}
