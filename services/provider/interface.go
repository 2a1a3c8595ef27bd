package provider

import (
	"context"
	"errors"
	"time"

	providerRepo "medibook/database/repository/provider"
	"medibook/models"

	"github.com/go-redis/redis/v8"
)

// ErrInvalidAvailability marks a rejected weekly-calendar change.
var ErrInvalidAvailability = errors.New("invalid availability")

// ProviderService manages the provider's weekly calendar and public profile.
type ProviderService interface {
	// GetProfile returns the public view of a provider, served from cache
	// when possible.
	GetProfile(ctx context.Context, id string) (*models.Provider, error)
	// SetupAvailability replaces a provider's weekly windows. Booked
	// intervals of existing appointments are carried over; a change that
	// would orphan one is rejected.
	SetupAvailability(ctx context.Context, providerID string, windows []models.Window, now time.Time) (*models.Provider, error)
}

// DefaultProviderService implements ProviderService.
type DefaultProviderService struct {
	Repo  providerRepo.ProviderRepository
	Cache *redis.Client // optional
}
