package model

// Address is a postal destination.
type Address struct {
	Zipcode string
}

// DefaultAddress is used for orders created without an explicit address.
var DefaultAddress = Address{Zipcode: "45678-979"}
