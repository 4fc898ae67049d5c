package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/orderflow/internal/domain/errors"
	"github.com/polkiloo/orderflow/internal/domain/model"
	"github.com/polkiloo/orderflow/internal/domain/repository"
)

// Store keeps aggregates in process memory. Every read and write goes through a copy,
// so callers never share state with the store.
type Store struct {
	mu sync.RWMutex

	lastCustomerID  int64
	customers       map[int64]*model.Customer
	orders          map[uuid.UUID]*model.Order
	payments        map[uuid.UUID]*model.Payment
	paymentsByOrder map[uuid.UUID]uuid.UUID
	methods         map[string]model.PaymentMethod
	effects         map[uuid.UUID][]model.Effect
}

// New creates an empty store.
func New() *Store {
	return &Store{
		customers:       make(map[int64]*model.Customer),
		orders:          make(map[uuid.UUID]*model.Order),
		payments:        make(map[uuid.UUID]*model.Payment),
		paymentsByOrder: make(map[uuid.UUID]uuid.UUID),
		methods:         make(map[string]model.PaymentMethod),
		effects:         make(map[uuid.UUID][]model.Effect),
	}
}

var (
	_ repository.Factory          = (*Store)(nil)
	_ repository.DirectoryFactory = (*Store)(nil)
)

type customerRepository struct{ store *Store }
type orderRepository struct{ store *Store }
type paymentRepository struct{ store *Store }
type paymentMethodRepository struct{ store *Store }
type effectJournal struct{ store *Store }

func (s *Store) Customers() repository.CustomerRepository { return &customerRepository{store: s} }
func (s *Store) Orders() repository.OrderRepository       { return &orderRepository{store: s} }
func (s *Store) Payments() repository.PaymentRepository   { return &paymentRepository{store: s} }

func (s *Store) PaymentMethods() repository.PaymentMethodRepository {
	return &paymentMethodRepository{store: s}
}

func (s *Store) Effects() repository.EffectJournal { return &effectJournal{store: s} }

// --- CustomerRepository implementation ---

func (r *customerRepository) Create(ctx context.Context) (*model.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.lastCustomerID++
	customer := model.NewCustomer(r.store.lastCustomerID)
	r.store.customers[customer.ID] = customer
	return customer.Clone(), nil
}

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	customer, ok := r.store.customers[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return customer.Clone(), nil
}

func (r *customerRepository) Save(ctx context.Context, customer *model.Customer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.customers[customer.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	r.store.customers[customer.ID] = customer.Clone()
	return nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.orders[order.ID]; ok {
		return domainErrors.ErrAlreadyExists
	}
	if order.Customer == nil {
		return domainErrors.ErrNotFound
	}
	if _, ok := r.store.customers[order.Customer.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	r.store.orders[order.ID] = order.Clone()
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	order, ok := r.store.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return r.store.hydrate(order), nil
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID int64) ([]*model.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var result []*model.Order
	for _, order := range r.store.orders {
		if order.Customer != nil && order.Customer.ID == customerID {
			result = append(result, r.store.hydrate(order))
		}
	}
	sortOrders(result)
	return result, nil
}

func (r *orderRepository) Save(ctx context.Context, order *model.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.orders[order.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	r.store.orders[order.ID] = order.Clone()
	return nil
}

// hydrate returns an order copy carrying the latest customer snapshot. Caller holds the lock.
func (s *Store) hydrate(order *model.Order) *model.Order {
	clone := order.Clone()
	if clone.Customer != nil {
		if customer, ok := s.customers[clone.Customer.ID]; ok {
			clone.Customer = customer.Clone()
		}
	}
	return clone
}

// sortOrders orders by creation time, newest first.
func sortOrders(orders []*model.Order) {
	sort.Slice(orders, func(i, j int) bool {
		if orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].ID.String() < orders[j].ID.String()
		}
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

// --- PaymentRepository implementation ---

func (r *paymentRepository) Save(ctx context.Context, payment *model.Payment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if payment.Order == nil {
		return domainErrors.ErrNotFound
	}
	if existing, ok := r.store.paymentsByOrder[payment.Order.ID]; ok && existing != payment.ID {
		if stored := r.store.payments[existing]; stored.IsPaid() {
			return domainErrors.ErrAlreadyPaid
		}
	}
	r.store.payments[payment.ID] = payment.Clone()
	r.store.paymentsByOrder[payment.Order.ID] = payment.ID
	return nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	payment, ok := r.store.payments[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return payment.Clone(), nil
}

func (r *paymentRepository) GetByOrder(ctx context.Context, orderID uuid.UUID) (*model.Payment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	id, ok := r.store.paymentsByOrder[orderID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return r.store.payments[id].Clone(), nil
}

// --- PaymentMethodRepository implementation ---

func (r *paymentMethodRepository) Create(ctx context.Context, method model.PaymentMethod) (*model.PaymentMethod, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if existing, ok := r.store.methods[method.Code]; ok {
		return &existing, false, nil
	}
	if method.CreatedAt.IsZero() {
		method.CreatedAt = time.Now()
	}
	r.store.methods[method.Code] = method
	return &method, true, nil
}

func (r *paymentMethodRepository) FetchByHashed(ctx context.Context, code string) (*model.PaymentMethod, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	method, ok := r.store.methods[code]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &method, nil
}

// --- EffectJournal implementation ---

func (j *effectJournal) Append(ctx context.Context, effects []model.Effect) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	j.store.mu.Lock()
	defer j.store.mu.Unlock()

	for _, e := range effects {
		j.store.effects[e.OrderID] = append(j.store.effects[e.OrderID], e)
	}
	return nil
}

func (j *effectJournal) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.Effect, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	j.store.mu.RLock()
	defer j.store.mu.RUnlock()

	return append([]model.Effect(nil), j.store.effects[orderID]...), nil
}
