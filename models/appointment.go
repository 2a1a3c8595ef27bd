package models

import "time"

// Appointment status values. UPCOMING is the initial state; COMPLETED and
// CANCELLED are terminal.
const (
	StatusUpcoming  = "UPCOMING"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

// Appointment is a confirmed booking between a provider and a patient.
// A non-cancelled appointment owns exactly one booked interval inside the
// provider's window for its weekday.
type Appointment struct {
	ID         string    `bson:"id" json:"id"`
	ProviderID string    `bson:"providerId" json:"providerId"`
	PatientID  string    `bson:"patientId" json:"patientId"`
	Date       string    `bson:"date" json:"date"` // "2006-01-02"
	Time       string    `bson:"time" json:"time"` // canonical 24-hour "15:04"
	Reason     string    `bson:"reason" json:"reason"`
	Notes      string    `bson:"notes,omitempty" json:"notes,omitempty"`
	Status     string    `bson:"status" json:"status"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// AppointmentUpdateRequest is a patch: nil means "not supplied", which is
// distinct from supplied-but-empty.
type AppointmentUpdateRequest struct {
	Status *string `json:"status,omitempty"`
	Date   *string `json:"date,omitempty"`
	Time   *string `json:"time,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

// Empty reports whether no field was supplied at all.
func (r AppointmentUpdateRequest) Empty() bool {
	return r.Status == nil && r.Date == nil && r.Time == nil && r.Notes == nil
}

// AppointmentBuckets partitions appointments by status, each bucket in
// ascending date order.
type AppointmentBuckets struct {
	Upcoming  []Appointment `json:"upcoming"`
	Completed []Appointment `json:"completed"`
	Cancelled []Appointment `json:"cancelled"`
}
