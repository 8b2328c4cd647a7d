package entity

// Category classifies stock items. The set is closed: each category carries
// its own identity rules (see the itemkey package).
type Category string

const (
	CategoryAccessory          Category = "ACCESSORY"
	CategoryHandphone          Category = "HANDPHONE"
	CategoryElectricMotorcycle Category = "ELECTRIC_MOTORCYCLE"
)

// Categories returns every recognized category, in display order.
func Categories() []Category {
	return []Category{CategoryAccessory, CategoryHandphone, CategoryElectricMotorcycle}
}

// Valid reports whether c is a recognized category.
func (c Category) Valid() bool {
	switch c {
	case CategoryAccessory, CategoryHandphone, CategoryElectricMotorcycle:
		return true
	}
	return false
}
