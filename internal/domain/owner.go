package domain

// Owner is an account holder (corresponds to the owners table).
// The tax id and email are unique natural keys; name, surname and tax id are
// immutable after creation.
type Owner struct {
	ID          int64  `json:"id" db:"id"`
	TaxID       string `json:"tax_id" db:"tax_id"`                   // CHAR(9), UNIQUE
	Name        string `json:"name" db:"name"`                      // VARCHAR(50), NOT NULL
	Surname     string `json:"surname" db:"surname"`                // VARCHAR(50), NOT NULL
	Address     string `json:"address,omitempty" db:"address"`      // VARCHAR(50)
	PhoneNumber string `json:"phone_number,omitempty" db:"phone_number"` // VARCHAR(14), digits only
	Email       string `json:"email" db:"email"`                    // VARCHAR, UNIQUE
	Password    string `json:"password,omitempty" db:"password"`    // stored as given, hashing is out of scope
	Deleted     bool   `json:"deleted" db:"deleted"`
}
