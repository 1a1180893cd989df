package api

import (
	"errors"

	"flupp/internal/flupp"
)

var errorKinds = []struct {
	err  error
	kind string
}{
	{flupp.ErrUnsupportedVersion, "unsupported_version"},
	{flupp.ErrMissingLicSettings, "missing_lic_settings"},
	{flupp.ErrInvalidLicSettings, "invalid_lic_settings"},
	{flupp.ErrInvalidDuration, "invalid_duration"},
	{flupp.ErrInvalidDate, "invalid_date"},
	{flupp.ErrInvalidTime, "invalid_time"},
	{flupp.ErrRead, "read"},
	{flupp.ErrInvalidFile, "invalid_file"},
}

// decodeErrorResponse maps a decoder error onto its kind and raw payload.
func decodeErrorResponse(err error) ErrorResponse {
	resp := ErrorResponse{Error: err.Error()}
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			resp.Kind = k.kind
			break
		}
	}
	var valueErr *flupp.ValueError
	var versionErr *flupp.UnsupportedVersionError
	switch {
	case errors.As(err, &valueErr):
		resp.Raw = valueErr.Raw
	case errors.As(err, &versionErr):
		resp.Raw = versionErr.Version
	}
	return resp
}
