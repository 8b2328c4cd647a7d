package entity

import "time"

// LocationKind distinguishes the central warehouse from stores.
type LocationKind string

const (
	LocationWarehouse LocationKind = "WAREHOUSE"
	LocationStore     LocationKind = "STORE"
)

// Location is a store or the central warehouse, the unit at which stock is
// tracked and between which transfers move.
type Location struct {
	ID        string
	Name      string
	Kind      LocationKind
	Address   string
	CreatedAt time.Time
}
