package repository

import "github.com/robshop/stock-engine/internal/domain/entity"

// LocationRepository is the persistence port for stores and the central
// warehouse.
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	List() ([]*entity.Location, error)
}
