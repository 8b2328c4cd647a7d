// Package itemkey derives the stable identity string of a stock item within
// a (location, category) pair. Two records with equal derived keys are the
// same logical item.
package itemkey

import (
	"strings"

	"github.com/robshop/stock-engine/internal/domain/entity"
)

// Derive maps a category plus identity fields to the item key. Pure and
// total: an item with no identity-bearing field derives the empty string,
// which keyed lookups must treat as unidentifiable.
//
// Priority per category:
//   - electric motorcycle: drivetrain serial, else product name
//   - handphone, accessory: IMEI/serial, else product name
func Derive(category entity.Category, id entity.Identity) string {
	switch category {
	case entity.CategoryElectricMotorcycle:
		if key := normalize(id.MotorSerial); key != "" {
			return key
		}
	default:
		if key := normalize(id.Serial); key != "" {
			return key
		}
	}
	return normalize(id.ProductName)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
