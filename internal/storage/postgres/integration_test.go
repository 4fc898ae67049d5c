//go:build integration

package postgres

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/polkiloo/orderflow/internal/domain/model"
)

func setupContainerStorage(t *testing.T) *Storage {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "orderflow",
			"POSTGRES_PASSWORD": "orderflow",
			"POSTGRES_DB":       "orderflow",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://orderflow:orderflow@%s:%s/orderflow?sslmode=disable", host, port.Port())
	storage, err := New(ctx, dsn, slog.New(slog.NewJSONHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(storage.Close)

	return storage
}

func TestIntegrationPaymentMethods(t *testing.T) {
	storage := setupContainerStorage(t)
	ctx := context.Background()
	repo := storage.PaymentMethods()

	method := model.PaymentMethod{Code: "hash-1", Brand: "visa", Last4: "1111"}
	stored, created, err := repo.Create(ctx, method)
	require.NoError(t, err)
	assert.True(t, created)
	assert.False(t, stored.CreatedAt.IsZero())

	again, created, err := repo.Create(ctx, method)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, stored.Code, again.Code)

	fetched, err := repo.FetchByHashed(ctx, "hash-1")
	require.NoError(t, err)
	assert.Equal(t, "1111", fetched.Last4)
}

func TestIntegrationEffectJournal(t *testing.T) {
	storage := setupContainerStorage(t)
	ctx := context.Background()
	journal := storage.Effects()
	orderID := uuid.New()
	at := time.Now().UTC().Truncate(time.Microsecond)

	effects := []model.Effect{
		{OrderID: orderID, Kind: model.EffectShippingLabel, EmittedAt: at},
		{OrderID: orderID, Kind: model.EffectNotification, Title: "Book", Body: "Buy Book Notification", EmittedAt: at},
		{OrderID: orderID, Kind: model.EffectVoucher, Percent: 10, EmittedAt: at},
	}
	require.NoError(t, journal.Append(ctx, effects))

	listed, err := journal.ListByOrder(ctx, orderID)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	for i := range effects {
		assert.Equal(t, effects[i].Kind, listed[i].Kind)
		assert.Equal(t, effects[i].Title, listed[i].Title)
		assert.True(t, effects[i].EmittedAt.Equal(listed[i].EmittedAt))
	}

	other, err := journal.ListByOrder(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, other)
}
