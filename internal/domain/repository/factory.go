package repository

// Factory describes access to domain repositories.
type Factory interface {
	Customers() CustomerRepository
	Orders() OrderRepository
	Payments() PaymentRepository
}

// DirectoryFactory describes access to durable collaborators.
type DirectoryFactory interface {
	PaymentMethods() PaymentMethodRepository
	Effects() EffectJournal
}
