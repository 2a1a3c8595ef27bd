package models

import "time"

// Day-of-week values used in availability windows.
const (
	Monday    = "MONDAY"
	Tuesday   = "TUESDAY"
	Wednesday = "WEDNESDAY"
	Thursday  = "THURSDAY"
	Friday    = "FRIDAY"
	Saturday  = "SATURDAY"
	Sunday    = "SUNDAY"
)

// BookedInterval is a concrete reserved span inside a Window. It is a
// denormalized projection of one appointment; the appointment record is the
// source of truth and carries the same times. The appointmentId back-reference
// lets the booking engine locate and remove the interval without a secondary
// index.
type BookedInterval struct {
	StartTime     string `bson:"startTime" json:"startTime"`         // 24-hour "15:04"
	EndTime       string `bson:"endTime" json:"endTime"`             // 24-hour "15:04"
	AppointmentID string `bson:"appointmentId" json:"appointmentId"` // owning appointment
}

// Window is one recurring weekly availability span for a provider.
// Invariant: booked intervals are pairwise non-overlapping and each lies
// within [StartTime, EndTime).
type Window struct {
	DayOfWeek       string           `bson:"dayOfWeek" json:"dayOfWeek"`
	StartTime       string           `bson:"startTime" json:"startTime"`
	EndTime         string           `bson:"endTime" json:"endTime"`
	BookedIntervals []BookedInterval `bson:"bookedIntervals,omitempty" json:"bookedIntervals,omitempty"`
}

// Provider is a bookable party with a weekly recurring calendar.
type Provider struct {
	ID             string    `bson:"id" json:"id"`
	Name           string    `bson:"name" json:"name"`
	Specialization string    `bson:"specialization" json:"specialization,omitempty"`
	Email          string    `bson:"email" json:"email,omitempty"`
	PhoneNumber    string    `bson:"phoneNumber" json:"phoneNumber,omitempty"`
	FCMToken       string    `bson:"fcmToken" json:"-"`
	Availability   []Window  `bson:"availability" json:"availability,omitempty"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// PublicProfile strips private fields for unauthenticated reads. Booked
// intervals stay out of the public shape; only the window outlines are shown.
func (p *Provider) PublicProfile() Provider {
	windows := make([]Window, len(p.Availability))
	for i, w := range p.Availability {
		windows[i] = Window{DayOfWeek: w.DayOfWeek, StartTime: w.StartTime, EndTime: w.EndTime}
	}
	return Provider{
		ID:             p.ID,
		Name:           p.Name,
		Specialization: p.Specialization,
		Availability:   windows,
	}
}

// SetupAvailabilityRequest defines the payload for replacing a provider's
// weekly windows.
type SetupAvailabilityRequest struct {
	Availability []Window `json:"availability" binding:"required"`
}
