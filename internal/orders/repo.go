package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/orderdesk/internal/repo"
	"github.com/angelmondragon/orderdesk/pkg/db/models"
)

var orderPreloads = []string{"Customer", "Items", "Items.Product"}

type repository struct {
	orders *repo.Store[models.Order]
	items  *repo.Store[models.OrderItem]
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{
		orders: repo.NewStore[models.Order](db),
		items:  repo.NewStore[models.OrderItem](db),
	}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{
		orders: r.orders.WithTx(tx),
		items:  r.items.WithTx(tx),
	}
}

func (r *repository) FindOrder(ctx context.Context, id int64) (*models.Order, error) {
	return r.orders.FindByID(ctx, id, orderPreloads...)
}

func (r *repository) ListOrders(ctx context.Context) ([]models.Order, error) {
	return r.orders.FindAll(ctx, orderPreloads...)
}

func (r *repository) ListOrdersByCustomer(ctx context.Context, customerID int64) ([]models.Order, error) {
	return r.orders.FindBy(ctx, "customer_id", customerID, orderPreloads...)
}

func (r *repository) SaveOrder(ctx context.Context, order *models.Order) error {
	return r.orders.Save(ctx, order)
}

func (r *repository) DeleteOrder(ctx context.Context, order *models.Order) error {
	return r.orders.Delete(ctx, order)
}

func (r *repository) FindItem(ctx context.Context, id int64) (*models.OrderItem, error) {
	return r.items.FindByID(ctx, id, "Product")
}

func (r *repository) ListItems(ctx context.Context) ([]models.OrderItem, error) {
	return r.items.FindAll(ctx, "Product")
}

func (r *repository) CountItems(ctx context.Context, orderID int64) (int64, error) {
	var count int64
	err := r.items.DB(ctx).Model(&models.OrderItem{}).Where("order_id = ?", orderID).Count(&count).Error
	return count, err
}

func (r *repository) SaveItem(ctx context.Context, item *models.OrderItem) error {
	return r.items.Save(ctx, item)
}

func (r *repository) DeleteItems(ctx context.Context, items []models.OrderItem) error {
	return r.items.DeleteAll(ctx, items)
}
