package domain

// PropertyType is the closed set of property categories.
type PropertyType string

const (
	PropertyTypeDetachedHouse     PropertyType = "DETACHEDHOUSE"
	PropertyTypeMaisonette        PropertyType = "MAISONETTE"
	PropertyTypeApartmentBuilding PropertyType = "APARTMENTBUILDING"
)

// Valid reports whether t is a member of the closed enumeration.
func (t PropertyType) Valid() bool {
	switch t {
	case PropertyTypeDetachedHouse, PropertyTypeMaisonette, PropertyTypeApartmentBuilding:
		return true
	}
	return false
}

// Property is a real-estate asset (corresponds to the properties table).
// The parcel id is a unique natural key; the owner binding is set once at
// creation and never changes.
type Property struct {
	ID               int64        `json:"id" db:"id"`
	ParcelID         string       `json:"parcel_id" db:"parcel_id"`     // CHAR(20), UNIQUE
	PropertyAddress  string       `json:"property_address,omitempty" db:"property_address"` // VARCHAR(50)
	ConstructionYear int          `json:"construction_year" db:"construction_year"`
	PropertyType     PropertyType `json:"property_type" db:"property_type"`
	Deleted          bool         `json:"deleted" db:"deleted"`
	OwnerID          int64        `json:"owner_id" db:"owner_id"` // FK to owners, ON DELETE CASCADE
	OwnerTaxID       string       `json:"owner_tax_id" db:"-"`    // resolved from the owner row
}
