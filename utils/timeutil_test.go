package utils

import (
	"errors"
	"testing"
)

func TestParseTimeToMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"14:30", 870},
		{"2:30 PM", 870},
		{"2:30PM", 870},
		{"2:30 pm", 870},
		{"9:00", 540},
		{"09:00", 540},
		{"12:00 AM", 0},
		{"12:00 PM", 720},
		{"11:59 PM", 1439},
		{"00:00", 0},
		{"23:59", 1439},
	}
	for _, tc := range cases {
		got, err := ParseTimeToMinutes(tc.in)
		if err != nil {
			t.Fatalf("ParseTimeToMinutes(%q) returned error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseTimeToMinutes(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseTimeToMinutesRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "half past nine", "25:00", "14:30 PM", "9:75"} {
		if _, err := ParseTimeToMinutes(in); !errors.Is(err, ErrInvalidTimeFormat) {
			t.Errorf("ParseTimeToMinutes(%q) error = %v, want ErrInvalidTimeFormat", in, err)
		}
	}
}

func TestConvert12To24Hour(t *testing.T) {
	got, err := Convert12To24Hour("2:30 PM")
	if err != nil {
		t.Fatalf("Convert12To24Hour returned error: %v", err)
	}
	if got != "14:30" {
		t.Errorf("Convert12To24Hour = %q, want %q", got, "14:30")
	}
}

func TestAddMinutesToTime(t *testing.T) {
	got, err := AddMinutesToTime("9:00 AM", 60)
	if err != nil {
		t.Fatalf("AddMinutesToTime returned error: %v", err)
	}
	if got != "10:00" {
		t.Errorf("AddMinutesToTime = %q, want %q", got, "10:00")
	}

	if _, err := AddMinutesToTime("23:30", 60); !errors.Is(err, ErrOutOfRangeTime) {
		t.Errorf("AddMinutesToTime past midnight error = %v, want ErrOutOfRangeTime", err)
	}
	if _, err := AddMinutesToTime("00:30", -60); !errors.Is(err, ErrOutOfRangeTime) {
		t.Errorf("AddMinutesToTime before midnight error = %v, want ErrOutOfRangeTime", err)
	}
}

func TestIsTimeWithinRange(t *testing.T) {
	cases := []struct {
		candidate string
		want      bool
	}{
		{"9:00 AM", true},  // inclusive start
		{"11:00", true},
		{"12:00", false},   // exclusive end
		{"8:59 AM", false},
		{"1:00 PM", false},
	}
	for _, tc := range cases {
		got, err := IsTimeWithinRange(tc.candidate, "09:00", "12:00")
		if err != nil {
			t.Fatalf("IsTimeWithinRange(%q) returned error: %v", tc.candidate, err)
		}
		if got != tc.want {
			t.Errorf("IsTimeWithinRange(%q) = %v, want %v", tc.candidate, got, tc.want)
		}
	}
}
