package patientRepo

import (
	"errors"

	"medibook/models"
)

// ErrNotFound is returned when no patient matches the given ID.
var ErrNotFound = errors.New("patient not found")

// PatientRepository defines methods for patient data access.
type PatientRepository interface {
	// GetByID retrieves a patient by its unique ID.
	GetByID(id string) (*models.Patient, error)
	// Create inserts a new patient record.
	Create(patient *models.Patient) error
	// Update replaces an existing patient record.
	Update(patient *models.Patient) error
}
