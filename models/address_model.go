package models

type AddressType string

const (
	AddressHome  AddressType = "home"
	AddressWork  AddressType = "work"
	AddressOther AddressType = "other"
)

// ShippingAddress is copied into an order at submit time. The address book
// itself never reaches the server; the client checks phone and zip formats.
type ShippingAddress struct {
	FullName    string      `json:"fullName" bson:"fullName"`
	Phone       string      `json:"phone" bson:"phone"`
	Street      string      `json:"street" bson:"street"`
	City        string      `json:"city" bson:"city"`
	State       string      `json:"state" bson:"state"`
	Country     string      `json:"country" bson:"country"`
	ZipCode     string      `json:"zipCode" bson:"zipCode"`
	AddressType AddressType `json:"addressType" bson:"addressType" validate:"omitempty,oneof=home work other"`
}
