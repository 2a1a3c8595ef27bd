package appointment

import (
	"strings"
	"time"

	"medibook/models"
	"medibook/utils"
)

// hasConflict reports whether the candidate interval [candStart, candEnd)
// overlaps any booked interval in the window. Two intervals conflict iff
// candStart < bookedEnd && candEnd > bookedStart; intervals that abut at a
// shared endpoint do not conflict. An interval whose appointmentId equals
// excludeAppointmentID is skipped, so a reschedule never collides with its
// own current slot.
func hasConflict(candStart, candEnd int, booked []models.BookedInterval, excludeAppointmentID string) (bool, error) {
	for _, b := range booked {
		if excludeAppointmentID != "" && b.AppointmentID == excludeAppointmentID {
			continue
		}
		bookedStart, err := utils.ParseTimeToMinutes(b.StartTime)
		if err != nil {
			return false, err
		}
		bookedEnd, err := utils.ParseTimeToMinutes(b.EndTime)
		if err != nil {
			return false, err
		}
		if candStart < bookedEnd && candEnd > bookedStart {
			return true, nil
		}
	}
	return false, nil
}

// findWindow locates the availability window for the given day that fully
// contains [candStart, candEnd). Returns nil when the provider has no such
// window; that outcome is distinct from a slot conflict.
func findWindow(availability []models.Window, day string, candStart, candEnd int) (*models.Window, error) {
	for i := range availability {
		w := &availability[i]
		if w.DayOfWeek != day {
			continue
		}
		winStart, err := utils.ParseTimeToMinutes(w.StartTime)
		if err != nil {
			return nil, err
		}
		winEnd, err := utils.ParseTimeToMinutes(w.EndTime)
		if err != nil {
			return nil, err
		}
		if candStart >= winStart && candEnd <= winEnd {
			return w, nil
		}
	}
	return nil, nil
}

// windowOwningInterval returns the window on the given day holding the
// appointment's booked interval. A day may carry several windows, so the
// lookup goes by owning appointmentId, never by first day match.
func windowOwningInterval(availability []models.Window, day, appointmentID string) *models.Window {
	for i := range availability {
		if availability[i].DayOfWeek != day {
			continue
		}
		for _, b := range availability[i].BookedIntervals {
			if b.AppointmentID == appointmentID {
				return &availability[i]
			}
		}
	}
	return nil
}

// removeInterval drops the booked interval owned by appointmentID from the
// window. Reports whether anything was removed.
func removeInterval(w *models.Window, appointmentID string) bool {
	kept := w.BookedIntervals[:0]
	removed := false
	for _, b := range w.BookedIntervals {
		if b.AppointmentID == appointmentID {
			removed = true
			continue
		}
		kept = append(kept, b)
	}
	w.BookedIntervals = kept
	return removed
}

// weekdayOf computes the symbolic day-of-week for a "2006-01-02" date.
func weekdayOf(date string) (string, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(d.Weekday().String()), nil
}

// combineDateTime joins a date and a canonical 24-hour time into one instant.
func combineDateTime(date, canonicalTime string) (time.Time, error) {
	return time.Parse("2006-01-02 15:04", date+" "+canonicalTime)
}
