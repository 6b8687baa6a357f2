package checkout

import (
	"regexp"
	"strings"

	"github.com/rakesh3649/Fitness/models"
)

const defaultCountry = "India"

var (
	phonePattern = regexp.MustCompile(`^\d{10}$`)
	zipPattern   = regexp.MustCompile(`^\d{6}$`)
)

// Address is an address-book entry. The book lives on the device only;
// the server sees the embedded ShippingAddress copied into an order.
type Address struct {
	ID string `json:"id"`
	models.ShippingAddress
	IsDefault bool `json:"isDefault"`
}

// ValidateAddress trims a, fills the country and address type defaults and
// checks the form rules. It returns a *models.ValidationError keyed by the
// JSON field name.
func ValidateAddress(a models.ShippingAddress) (models.ShippingAddress, error) {
	a.FullName = strings.TrimSpace(a.FullName)
	a.Phone = strings.TrimSpace(a.Phone)
	a.Street = strings.TrimSpace(a.Street)
	a.City = strings.TrimSpace(a.City)
	a.State = strings.TrimSpace(a.State)
	a.ZipCode = strings.TrimSpace(a.ZipCode)
	a.Country = strings.TrimSpace(a.Country)
	if a.Country == "" {
		a.Country = defaultCountry
	}
	if a.AddressType == "" {
		a.AddressType = models.AddressHome
	}

	fields := make(map[string]string)
	if a.FullName == "" {
		fields["fullName"] = "Full name is required"
	}
	switch {
	case a.Phone == "":
		fields["phone"] = "Phone number is required"
	case !phonePattern.MatchString(a.Phone):
		fields["phone"] = "Enter a valid 10-digit phone number"
	}
	if a.Street == "" {
		fields["street"] = "Street address is required"
	}
	if a.City == "" {
		fields["city"] = "City is required"
	}
	if a.State == "" {
		fields["state"] = "State is required"
	}
	switch {
	case a.ZipCode == "":
		fields["zipCode"] = "ZIP code is required"
	case !zipPattern.MatchString(a.ZipCode):
		fields["zipCode"] = "Enter a valid 6-digit ZIP code"
	}
	switch a.AddressType {
	case models.AddressHome, models.AddressWork, models.AddressOther:
	default:
		fields["addressType"] = "Address type must be home, work or other"
	}

	if len(fields) > 0 {
		return a, &models.ValidationError{Fields: fields}
	}
	return a, nil
}
