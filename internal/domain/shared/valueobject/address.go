package valueobject

import (
	"strings"

	"github.com/jpashop/backend/internal/domain/shared"
)

// Address is an embeddable value object. Its fields map to the city, street and
// zipcode columns of the owning table.
type Address struct {
	City    string `gorm:"type:varchar(100)" json:"city"`
	Street  string `gorm:"type:varchar(200)" json:"street"`
	Zipcode string `gorm:"type:varchar(20)" json:"zipcode"`
}

// NewAddress trims and validates the parts. An all-empty address is allowed.
func NewAddress(city, street, zipcode string) (Address, error) {
	a := Address{
		City:    strings.TrimSpace(city),
		Street:  strings.TrimSpace(street),
		Zipcode: strings.TrimSpace(zipcode),
	}
	switch {
	case len(a.City) > 100:
		return Address{}, shared.NewDomainError("INVALID_INPUT", "city cannot exceed 100 characters")
	case len(a.Street) > 200:
		return Address{}, shared.NewDomainError("INVALID_INPUT", "street cannot exceed 200 characters")
	case len(a.Zipcode) > 20:
		return Address{}, shared.NewDomainError("INVALID_INPUT", "zipcode cannot exceed 20 characters")
	}
	return a, nil
}

// IsZero reports whether no part of the address is set.
func (a Address) IsZero() bool {
	return a.City == "" && a.Street == "" && a.Zipcode == ""
}

// Equals compares two addresses by value.
func (a Address) Equals(other Address) bool {
	return a == other
}

// String renders the address on one line.
func (a Address) String() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{a.City, a.Street, a.Zipcode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
