package providerRepo

import (
	"errors"

	"medibook/models"
)

// ErrNotFound is returned when no provider matches the given ID.
var ErrNotFound = errors.New("provider not found")

// ProviderRepository defines methods for provider data access.
type ProviderRepository interface {
	// GetByID retrieves a provider by its unique ID.
	GetByID(id string) (*models.Provider, error)
	// Create inserts a new provider record.
	Create(provider *models.Provider) error
	// Update replaces an existing provider record, including the full
	// availability/bookedIntervals structure.
	Update(provider *models.Provider) error
	// Delete removes a provider record by its ID.
	Delete(id string) error
}
