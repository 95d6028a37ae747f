package orders

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/orderdesk/internal/customers"
	"github.com/angelmondragon/orderdesk/internal/products"
	"github.com/angelmondragon/orderdesk/pkg/db"
	"github.com/angelmondragon/orderdesk/pkg/db/dbtest"
	"github.com/angelmondragon/orderdesk/pkg/db/models"
	"github.com/angelmondragon/orderdesk/pkg/logger"
)

type recordedWrite struct {
	op    string
	items int
}

type recordingMetrics struct {
	mu     sync.Mutex
	writes []recordedWrite
}

func (m *recordingMetrics) OrderWritten(op string, items int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes = append(m.writes, recordedWrite{op: op, items: items})
}

type fixture struct {
	client    *db.Client
	repo      Repository
	customers *customers.Repository
	products  *products.Repository
	svc       Service
	items     ItemService
	metrics   *recordingMetrics
	seq       int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	client := dbtest.NewSQLite(t)
	repo := NewRepository(client.DB())
	customerRepo := customers.NewRepository(client.DB())
	productRepo := products.NewRepository(client.DB())
	metrics := &recordingMetrics{}

	composer, err := NewComposer(productRepo, repo)
	require.NoError(t, err)
	svc, err := NewService(repo, client, customerRepo, composer, metrics, logger.Nop())
	require.NoError(t, err)
	itemSvc, err := NewItemService(repo, client, productRepo, composer, metrics, logger.Nop())
	require.NoError(t, err)

	return &fixture{
		client:    client,
		repo:      repo,
		customers: customerRepo,
		products:  productRepo,
		svc:       svc,
		items:     itemSvc,
		metrics:   metrics,
	}
}

func (f *fixture) seedCustomer(t *testing.T, name string) *models.Customer {
	t.Helper()
	f.seq++
	c := &models.Customer{
		Name:        name,
		Email:       fmt.Sprintf("%s@example.com", name),
		PhoneNumber: fmt.Sprintf("+1555%07d", f.seq),
	}
	require.NoError(t, f.customers.Save(context.Background(), c))
	return c
}

func (f *fixture) seedProduct(t *testing.T, name, price string) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, UnitPrice: decimal.RequireFromString(price)}
	require.NoError(t, f.products.Save(context.Background(), p))
	return p
}

func (f *fixture) countRows(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.client.DB().Model(model).Count(&n).Error)
	return n
}

func itoa(v int64) string {
	return fmt.Sprintf("%d", v)
}
