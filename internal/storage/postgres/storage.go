package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polkiloo/orderflow/internal/domain/errors"
	"github.com/polkiloo/orderflow/internal/domain/model"
	"github.com/polkiloo/orderflow/internal/domain/repository"
)

// pgxPool is the subset of *pgxpool.Pool used by Storage.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage backs the card directory and the effect journal with PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type paymentMethodRepository struct {
	storage *Storage
}

type effectJournal struct {
	storage *Storage
}

var _ repository.DirectoryFactory = (*Storage)(nil)

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Storage) PaymentMethods() repository.PaymentMethodRepository {
	return &paymentMethodRepository{storage: s}
}

func (s *Storage) Effects() repository.EffectJournal {
	return &effectJournal{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS payment_methods (
            code TEXT PRIMARY KEY,
            brand TEXT NOT NULL,
            last4 TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS fulfillment_effects (
            id BIGSERIAL PRIMARY KEY,
            order_id UUID NOT NULL,
            kind TEXT NOT NULL,
            title TEXT NOT NULL DEFAULT '',
            body TEXT NOT NULL DEFAULT '',
            percent INTEGER NOT NULL DEFAULT 0,
            active BOOLEAN NOT NULL DEFAULT FALSE,
            emitted_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_fulfillment_effects_order ON fulfillment_effects(order_id, id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- PaymentMethodRepository implementation ---

func (r *paymentMethodRepository) Create(ctx context.Context, method model.PaymentMethod) (*model.PaymentMethod, bool, error) {
	const query = `INSERT INTO payment_methods (code, brand, last4) VALUES ($1, $2, $3)
                   ON CONFLICT (code) DO NOTHING
                   RETURNING created_at`
	err := r.storage.pool.QueryRow(ctx, query, method.Code, method.Brand, method.Last4).Scan(&method.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			existing, err := r.FetchByHashed(ctx, method.Code)
			if err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	return &method, true, nil
}

func (r *paymentMethodRepository) FetchByHashed(ctx context.Context, code string) (*model.PaymentMethod, error) {
	const query = `SELECT code, brand, last4, created_at FROM payment_methods WHERE code=$1`
	var m model.PaymentMethod
	err := r.storage.pool.QueryRow(ctx, query, code).Scan(&m.Code, &m.Brand, &m.Last4, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// --- EffectJournal implementation ---

func (j *effectJournal) Append(ctx context.Context, effects []model.Effect) error {
	if len(effects) == 0 {
		return nil
	}
	const insert = `INSERT INTO fulfillment_effects (order_id, kind, title, body, percent, active, emitted_at)
                    VALUES ($1, $2, $3, $4, $5, $6, $7)`
	return j.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		for _, e := range effects {
			if _, err := tx.Exec(ctx, insert, e.OrderID, string(e.Kind), e.Title, e.Body, e.Percent, e.Active, e.EmittedAt); err != nil {
				return fmt.Errorf("append effect: %w", err)
			}
		}
		return nil
	})
}

func (j *effectJournal) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.Effect, error) {
	const query = `SELECT order_id, kind, title, body, percent, active, emitted_at
                   FROM fulfillment_effects WHERE order_id=$1 ORDER BY id`
	rows, err := j.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Effect
	for rows.Next() {
		var (
			e    model.Effect
			kind string
		)
		if err := rows.Scan(&e.OrderID, &kind, &e.Title, &e.Body, &e.Percent, &e.Active, &e.EmittedAt); err != nil {
			return nil, err
		}
		e.Kind = model.EffectKind(kind)
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
