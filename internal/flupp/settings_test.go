package flupp_test

import (
	"errors"
	"testing"
	"time"

	"flupp/internal/flupp"
)

func TestParseGeneralSettings(t *testing.T) {
	cases := []struct {
		raw  string
		want flupp.GeneralSettings
	}{
		{"", flupp.GeneralSettings{}},
		{"Club", flupp.GeneralSettings{Name: "Club"}},
		{"Club;Road;Town;Pilot;extra", flupp.GeneralSettings{Name: "Club", Road: "Road", Location: "Town", PilotName: "Pilot"}},
		{";;Town", flupp.GeneralSettings{Location: "Town"}},
	}
	for _, tc := range cases {
		if got := flupp.ParseGeneralSettings(tc.raw); got != tc.want {
			t.Fatalf("ParseGeneralSettings(%q) = %+v, want %+v", tc.raw, got, tc.want)
		}
	}
}

func TestParseLicenseSettings(t *testing.T) {
	got, err := flupp.ParseLicenseSettings("250;120:15;r;15.03.99;D-;r;r;r;NM;ignored")
	if err != nil {
		t.Fatalf("ParseLicenseSettings returned error: %v", err)
	}
	if got.Starts != 250 || got.Time != 120*time.Hour+15*time.Minute {
		t.Fatalf("unexpected counters %+v", got)
	}
	if got.LicenseSince == nil || got.LicenseSince.Year != 1999 || got.LicenseSince.Month != time.March {
		t.Fatalf("unexpected license date %v", got.LicenseSince)
	}
	if got.IDPrefix != "D-" || got.DistanceUnit != "NM" {
		t.Fatalf("unexpected strings %+v", got)
	}
}

func TestParseLicenseSettingsDefaults(t *testing.T) {
	got, err := flupp.ParseLicenseSettings("7")
	if err != nil {
		t.Fatalf("ParseLicenseSettings returned error: %v", err)
	}
	want := flupp.LicenseSettings{Starts: 7}
	if got != want {
		t.Fatalf("unexpected defaults %+v", got)
	}
}

func TestParseLicenseSettingsErrors(t *testing.T) {
	cases := []struct {
		raw  string
		want error
	}{
		{"", flupp.ErrInvalidLicSettings},
		{"-1", flupp.ErrInvalidLicSettings},
		{"x;1:00", flupp.ErrInvalidLicSettings},
		{"1;x", flupp.ErrInvalidDuration},
		{"1;1:00;;31.02.20", flupp.ErrInvalidDate},
		{"5;;x;;P", flupp.ErrInvalidDuration},
		{"5;", flupp.ErrInvalidDuration},
		{"5;1:00;x;", flupp.ErrInvalidDate},
		{"5;1:00;x;;P", flupp.ErrInvalidDate},
	}
	for _, tc := range cases {
		if _, err := flupp.ParseLicenseSettings(tc.raw); !errors.Is(err, tc.want) {
			t.Fatalf("ParseLicenseSettings(%q): expected %v, got %v", tc.raw, tc.want, err)
		}
	}
}

func TestParseLicenseSettingsEmptyFieldCarriesRaw(t *testing.T) {
	_, err := flupp.ParseLicenseSettings("5;;x;;P")
	var valueErr *flupp.ValueError
	if !errors.As(err, &valueErr) {
		t.Fatalf("expected *ValueError, got %v", err)
	}
	if valueErr.Kind != flupp.ErrInvalidDuration || valueErr.Raw != "" {
		t.Fatalf("unexpected error %+v", valueErr)
	}
}

func TestParseLicenseSettingsTrailingFieldsOmitted(t *testing.T) {
	got, err := flupp.ParseLicenseSettings("5;2:00;x")
	if err != nil {
		t.Fatalf("ParseLicenseSettings returned error: %v", err)
	}
	if got.Time != 2*time.Hour || got.LicenseSince != nil {
		t.Fatalf("unexpected settings %+v", got)
	}
}
