package appointment

import (
	"testing"

	"medibook/models"
)

func TestHasConflict(t *testing.T) {
	booked := []models.BookedInterval{
		{StartTime: "09:00", EndTime: "10:00", AppointmentID: "a1"},
		{StartTime: "11:00", EndTime: "12:00", AppointmentID: "a2"},
	}

	cases := []struct {
		name       string
		start, end int
		exclude    string
		want       bool
	}{
		{"start inside existing", 9*60 + 30, 10*60 + 30, "", true},
		{"end inside existing", 8*60 + 30, 9*60 + 30, "", true},
		{"fully contains existing", 8 * 60, 11 * 60, "", true},
		{"contained by existing", 9*60 + 15, 9*60 + 45, "", true},
		{"identical to existing", 9 * 60, 10 * 60, "", true},
		{"abuts existing end", 10 * 60, 11 * 60, "", false},
		{"abuts existing start", 8 * 60, 9 * 60, "", false},
		{"one minute overlap", 9*60 + 59, 10*60 + 59, "", true},
		{"gap between bookings", 10 * 60, 11 * 60, "", false},
		{"own interval excluded", 9 * 60, 10 * 60, "a1", false},
		{"exclusion ignores others", 11 * 60, 12 * 60, "a1", true},
	}
	for _, tc := range cases {
		got, err := hasConflict(tc.start, tc.end, booked, tc.exclude)
		if err != nil {
			t.Fatalf("%s: hasConflict returned error: %v", tc.name, err)
		}
		if got != tc.want {
			t.Errorf("%s: hasConflict = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestFindWindow(t *testing.T) {
	availability := []models.Window{
		{DayOfWeek: models.Monday, StartTime: "09:00", EndTime: "12:00"},
		{DayOfWeek: models.Monday, StartTime: "14:00", EndTime: "17:00"},
		{DayOfWeek: models.Wednesday, StartTime: "09:00", EndTime: "12:00"},
	}

	w, err := findWindow(availability, models.Monday, 14*60, 15*60)
	if err != nil {
		t.Fatalf("findWindow returned error: %v", err)
	}
	if w == nil || w.StartTime != "14:00" {
		t.Fatalf("findWindow picked window %+v, want the 14:00 Monday window", w)
	}

	// Candidate spilling past the window end does not match.
	w, err = findWindow(availability, models.Monday, 11*60+30, 12*60+30)
	if err != nil {
		t.Fatalf("findWindow returned error: %v", err)
	}
	if w != nil {
		t.Errorf("findWindow matched %+v for a candidate that overflows the window", w)
	}

	// No window for the day at all.
	w, err = findWindow(availability, models.Friday, 9*60, 10*60)
	if err != nil {
		t.Fatalf("findWindow returned error: %v", err)
	}
	if w != nil {
		t.Errorf("findWindow matched %+v for a day with no windows", w)
	}
}

func TestWindowOwningInterval(t *testing.T) {
	availability := []models.Window{
		{DayOfWeek: models.Monday, StartTime: "09:00", EndTime: "12:00",
			BookedIntervals: []models.BookedInterval{
				{StartTime: "09:00", EndTime: "10:00", AppointmentID: "a1"},
			}},
		{DayOfWeek: models.Monday, StartTime: "14:00", EndTime: "17:00",
			BookedIntervals: []models.BookedInterval{
				{StartTime: "15:00", EndTime: "16:00", AppointmentID: "a2"},
			}},
	}

	// The owner lookup must reach past the first same-day window.
	w := windowOwningInterval(availability, models.Monday, "a2")
	if w == nil || w.StartTime != "14:00" {
		t.Fatalf("windowOwningInterval picked %+v, want the 14:00 window", w)
	}
	w = windowOwningInterval(availability, models.Monday, "a1")
	if w == nil || w.StartTime != "09:00" {
		t.Fatalf("windowOwningInterval picked %+v, want the 09:00 window", w)
	}
	if w = windowOwningInterval(availability, models.Monday, "missing"); w != nil {
		t.Errorf("windowOwningInterval matched %+v for an unknown appointment", w)
	}
	if w = windowOwningInterval(availability, models.Friday, "a1"); w != nil {
		t.Errorf("windowOwningInterval matched %+v on the wrong day", w)
	}
}

func TestRemoveInterval(t *testing.T) {
	w := &models.Window{
		DayOfWeek: models.Monday,
		StartTime: "09:00",
		EndTime:   "12:00",
		BookedIntervals: []models.BookedInterval{
			{StartTime: "09:00", EndTime: "10:00", AppointmentID: "a1"},
			{StartTime: "10:00", EndTime: "11:00", AppointmentID: "a2"},
		},
	}

	if !removeInterval(w, "a1") {
		t.Fatal("removeInterval did not report a removal")
	}
	if len(w.BookedIntervals) != 1 || w.BookedIntervals[0].AppointmentID != "a2" {
		t.Errorf("unexpected intervals after removal: %+v", w.BookedIntervals)
	}
	if removeInterval(w, "missing") {
		t.Error("removeInterval reported a removal for an unknown appointment")
	}
}

func TestWeekdayOf(t *testing.T) {
	day, err := weekdayOf("2026-03-02")
	if err != nil {
		t.Fatalf("weekdayOf returned error: %v", err)
	}
	if day != models.Monday {
		t.Errorf("weekdayOf(2026-03-02) = %q, want MONDAY", day)
	}
	if _, err := weekdayOf("not-a-date"); err == nil {
		t.Error("weekdayOf accepted garbage")
	}
}
