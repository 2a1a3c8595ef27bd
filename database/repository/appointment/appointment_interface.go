package appointmentRepo

import (
	"errors"

	"medibook/models"
)

// ErrNotFound is returned when no appointment matches the given ID.
var ErrNotFound = errors.New("appointment not found")

// Filter narrows a Find query. Empty fields are ignored.
type Filter struct {
	ProviderID string
	PatientID  string
}

// AppointmentRepository defines methods for appointment data access.
type AppointmentRepository interface {
	// GetByID retrieves an appointment by its unique ID.
	GetByID(id string) (*models.Appointment, error)
	// Create inserts a new appointment record.
	Create(appointment *models.Appointment) error
	// Update replaces an existing appointment record.
	Update(appointment *models.Appointment) error
	// Delete removes an appointment record. The booking engine uses this
	// only to compensate a failed ledger write; appointments are otherwise
	// never physically deleted.
	Delete(id string) error
	// Find returns appointments matching the filter in ascending date order.
	Find(filter Filter) ([]models.Appointment, error)
}
