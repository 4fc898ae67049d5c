package model

// ProductType tags a product with the fulfillment it requires.
type ProductType string

const (
	ProductTypePhysical   ProductType = "physical"
	ProductTypeBook       ProductType = "book"
	ProductTypeDigital    ProductType = "digital"
	ProductTypeMembership ProductType = "membership"
)

// Known reports whether the tag belongs to the built-in fulfillment kinds.
func (t ProductType) Known() bool {
	switch t {
	case ProductTypePhysical, ProductTypeBook, ProductTypeDigital, ProductTypeMembership:
		return true
	default:
		return false
	}
}

// Product describes something a customer can order.
type Product struct {
	Name string
	Type ProductType
}

// NewProduct constructs Product.
func NewProduct(name string, productType ProductType) Product {
	return Product{Name: name, Type: productType}
}
