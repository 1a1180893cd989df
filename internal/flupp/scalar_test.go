package flupp_test

import (
	"errors"
	"testing"
	"time"

	"flupp/internal/flupp"
)

func TestParseDuration(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Duration
	}{
		{"2:30", 150 * time.Minute},
		{"5", 300 * time.Minute},
		{"0:05", 5 * time.Minute},
		{"0", 0},
		{"120:00", 120 * time.Hour},
		{"2562047", 2562047 * time.Hour},
		{"-1:30", -30 * time.Minute},
	}
	for _, tc := range cases {
		got, err := flupp.ParseDuration(tc.raw)
		if err != nil {
			t.Fatalf("ParseDuration(%q) returned error: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("ParseDuration(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestParseDurationErrors(t *testing.T) {
	for _, raw := range []string{
		"", "x", "1:xx", "1:30:00", ":30",
		"3000000", "-3000000", "153722867280912931", "0:153722868", "2562047:999999999",
	} {
		_, err := flupp.ParseDuration(raw)
		if !errors.Is(err, flupp.ErrInvalidDuration) {
			t.Fatalf("ParseDuration(%q): expected ErrInvalidDuration, got %v", raw, err)
		}
		var valueErr *flupp.ValueError
		if !errors.As(err, &valueErr) || valueErr.Raw != raw {
			t.Fatalf("ParseDuration(%q): expected raw value in error, got %v", raw, err)
		}
	}
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		raw  string
		want flupp.Date
	}{
		{"01.02.23", flupp.Date{Year: 2023, Month: time.February, Day: 1}},
		{"29.02.24", flupp.Date{Year: 2024, Month: time.February, Day: 29}},
		{"31.12.98", flupp.Date{Year: 1998, Month: time.December, Day: 31}},
		{"1.1.0", flupp.Date{Year: 2000, Month: time.January, Day: 1}},
		{"15.07.1987", flupp.Date{Year: 1987, Month: time.July, Day: 15}},
		{"31.12.9999", flupp.Date{Year: 9999, Month: time.December, Day: 31}},
		{"01.01.0000", flupp.Date{Year: 0, Month: time.January, Day: 1}},
	}
	for _, tc := range cases {
		got, err := flupp.ParseDate(tc.raw)
		if err != nil {
			t.Fatalf("ParseDate(%q) returned error: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("ParseDate(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestParseDateErrors(t *testing.T) {
	for _, raw := range []string{"", "01.02", "01-02-23", "00.01.23", "29.02.23", "01.13.23", "01.00.23", "aa.01.23", "01.02.23.1", "01.01.10000", "01.01.-5", "01.01.-2000"} {
		_, err := flupp.ParseDate(raw)
		if !errors.Is(err, flupp.ErrInvalidDate) {
			t.Fatalf("ParseDate(%q): expected ErrInvalidDate, got %v", raw, err)
		}
		var valueErr *flupp.ValueError
		if !errors.As(err, &valueErr) || valueErr.Raw != raw {
			t.Fatalf("ParseDate(%q): expected raw value in error, got %v", raw, err)
		}
	}
}

func TestParseTime(t *testing.T) {
	got, err := flupp.ParseTime("08:45")
	if err != nil {
		t.Fatalf("ParseTime returned error: %v", err)
	}
	if got != (flupp.TimeOfDay{Hour: 8, Minute: 45, Second: 0}) {
		t.Fatalf("unexpected time %+v", got)
	}
	if got.String() != "08:45:00" {
		t.Fatalf("unexpected string form %q", got.String())
	}
}

func TestParseTimeErrors(t *testing.T) {
	for _, raw := range []string{"", "0845", "24:00", "12:60", "-1:00", "ab:cd", "12:00:00"} {
		_, err := flupp.ParseTime(raw)
		if !errors.Is(err, flupp.ErrInvalidTime) {
			t.Fatalf("ParseTime(%q): expected ErrInvalidTime, got %v", raw, err)
		}
	}
}

func TestDateTextRoundTrip(t *testing.T) {
	date, err := flupp.ParseDate("01.02.23")
	if err != nil {
		t.Fatalf("ParseDate returned error: %v", err)
	}
	text, err := date.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText returned error: %v", err)
	}
	if string(text) != "2023-02-01" {
		t.Fatalf("unexpected text %q", text)
	}
	var back flupp.Date
	if err := back.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText returned error: %v", err)
	}
	if back.Day != 1 || back.Month != time.February {
		t.Fatalf("expected day and month to survive, got %+v", back)
	}

	var clock flupp.TimeOfDay
	if err := clock.UnmarshalText([]byte("23:59:00")); err != nil {
		t.Fatalf("UnmarshalText returned error: %v", err)
	}
	if clock.On(back).Format(time.RFC3339) != "2023-02-01T23:59:00Z" {
		t.Fatalf("unexpected combined time %v", clock.On(back))
	}
}

func TestParsedDatesSurviveTextRoundTrip(t *testing.T) {
	for _, raw := range []string{"01.01.0000", "31.12.9999", "01.01.69", "29.02.2000"} {
		date, err := flupp.ParseDate(raw)
		if err != nil {
			t.Fatalf("ParseDate(%q) returned error: %v", raw, err)
		}
		text, err := date.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%q) returned error: %v", raw, err)
		}
		var back flupp.Date
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) returned error: %v", text, err)
		}
		if back != date {
			t.Fatalf("round trip of %q: got %+v want %+v", raw, back, date)
		}
	}
}
