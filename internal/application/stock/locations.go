package stock

import (
	"fmt"
	"strings"
	"time"

	"github.com/robshop/stock-engine/internal/domain"
	"github.com/robshop/stock-engine/internal/domain/entity"
	"github.com/robshop/stock-engine/internal/domain/repository"
)

// LocationService manages the registry of stores and the central warehouse.
type LocationService struct {
	locations repository.LocationRepository
	now       func() time.Time
}

// NewLocationService builds the service.
func NewLocationService(locations repository.LocationRepository) *LocationService {
	return &LocationService{locations: locations, now: time.Now}
}

// Create registers a location. IDs are caller-chosen, uppercased identifiers
// ("WAREHOUSE", "STORE-A").
func (s *LocationService) Create(loc *entity.Location) (*entity.Location, error) {
	loc.ID = strings.ToUpper(strings.TrimSpace(loc.ID))
	if loc.ID == "" || loc.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if loc.Kind != entity.LocationWarehouse && loc.Kind != entity.LocationStore {
		return nil, domain.ErrInvalidInput
	}
	loc.CreatedAt = s.now()
	if err := s.locations.Create(loc); err != nil {
		if err == domain.ErrDuplicate {
			return nil, domain.ErrDuplicate
		}
		return nil, fmt.Errorf("create location: %w", err)
	}
	return loc, nil
}

// List returns all registered locations.
func (s *LocationService) List() ([]*entity.Location, error) {
	list, err := s.locations.List()
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return list, nil
}

// GetByID returns one location or domain.ErrNotFound.
func (s *LocationService) GetByID(id string) (*entity.Location, error) {
	return s.locations.GetByID(strings.ToUpper(strings.TrimSpace(id)))
}
