package memory

import (
	"go.uber.org/fx"

	"github.com/polkiloo/orderflow/internal/domain/repository"
)

// Module wires the in-memory aggregate store.
var Module = fx.Options(
	fx.Provide(New),
	fx.Provide(
		func(s *Store) repository.CustomerRepository { return s.Customers() },
		func(s *Store) repository.OrderRepository { return s.Orders() },
		func(s *Store) repository.PaymentRepository { return s.Payments() },
	),
)
