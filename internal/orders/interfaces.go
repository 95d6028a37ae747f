package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/orderdesk/pkg/db/models"
)

// Repository defines persistence operations for orders and their items.
// Lookups return gorm.ErrRecordNotFound on a miss.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindOrder(ctx context.Context, id int64) (*models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID int64) ([]models.Order, error)
	SaveOrder(ctx context.Context, order *models.Order) error
	DeleteOrder(ctx context.Context, order *models.Order) error
	FindItem(ctx context.Context, id int64) (*models.OrderItem, error)
	ListItems(ctx context.Context) ([]models.OrderItem, error)
	CountItems(ctx context.Context, orderID int64) (int64, error)
	SaveItem(ctx context.Context, item *models.OrderItem) error
	DeleteItems(ctx context.Context, items []models.OrderItem) error
}

// CustomerLookup resolves the customer that owns an order.
type CustomerLookup interface {
	Lookup(ctx context.Context, id int64) (*models.Customer, error)
}

// ProductLookup resolves a product to its current record.
type ProductLookup interface {
	Lookup(ctx context.Context, id int64) (*models.Product, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type writeRecorder interface {
	OrderWritten(op string, items int)
}
