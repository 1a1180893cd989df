package flupp

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// SupportedVersion is the only FluPP file format version this package reads.
const SupportedVersion = "4"

const segmentSeparator = "\n:"

// Document is a decoded FluPP file.
type Document struct {
	GeneralSettings *GeneralSettings `json:"general_settings,omitempty"`
	FlightLogs      []FlightLog      `json:"flight_logs"`
}

// FlightCount returns the number of flights across all flight logs.
func (d *Document) FlightCount() int {
	total := 0
	for i := range d.FlightLogs {
		total += len(d.FlightLogs[i].Flights)
	}
	return total
}

// Decode reads r to the end and decodes its Windows-1252 content.
func Decode(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	return DecodeBytes(data)
}

// DecodeBytes decodes raw file content. FluPP writes Windows-1252; bytes
// without a mapping are substituted rather than rejected.
func DecodeBytes(data []byte) (*Document, error) {
	text, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: decode windows-1252: %w", ErrRead, err)
	}
	return Parse(string(text))
}

// Parse decodes FluPP content that is already UTF-8 text.
func Parse(content string) (*Document, error) {
	version, rest, ok := strings.Cut(content, "\n")
	if !ok {
		return nil, ErrInvalidFile
	}
	if strings.TrimSpace(version) != SupportedVersion {
		return nil, &UnsupportedVersionError{Version: version}
	}

	header, logs, ok := strings.Cut(rest, segmentSeparator)
	if !ok {
		return nil, ErrInvalidFile
	}

	doc := &Document{GeneralSettings: findGeneralSettings(header)}

	segments := strings.Split(logs, segmentSeparator)
	doc.FlightLogs = make([]FlightLog, 0, len(segments))
	for i, segment := range segments {
		flightLog, err := ParseFlightLog(segment)
		if err != nil {
			return nil, fmt.Errorf("flight log %d: %w", i+1, err)
		}
		doc.FlightLogs = append(doc.FlightLogs, flightLog)
	}
	return doc, nil
}

func findGeneralSettings(header string) *GeneralSettings {
	lines := splitLines(header)
	idx := lastIndexWithPrefix(lines, genSettingsPrefix)
	if idx < 0 {
		return nil
	}
	settings := ParseGeneralSettings(strings.TrimPrefix(lines[idx], genSettingsPrefix))
	return &settings
}
