package orders

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/angelmondragon/orderdesk/pkg/db/models"
	pkgerrors "github.com/angelmondragon/orderdesk/pkg/errors"
)

// Composer turns item requests into persisted order items, copying each
// product's current price onto the item.
type Composer struct {
	products ProductLookup
	repo     Repository
}

// NewComposer constructs a composer backed by the given lookups.
func NewComposer(products ProductLookup, repo Repository) (*Composer, error) {
	if products == nil {
		return nil, fmt.Errorf("product lookup required")
	}
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &Composer{products: products, repo: repo}, nil
}

// WithTx returns a composer that writes items through tx.
func (c *Composer) WithTx(tx *gorm.DB) *Composer {
	return &Composer{products: c.products, repo: c.repo.WithTx(tx)}
}

// Compose resolves and persists one item per input, in input order. The
// first failed lookup aborts; callers run Compose inside a transaction so
// items written before the failure are rolled back.
func (c *Composer) Compose(ctx context.Context, order *models.Order, inputs []ItemInput) ([]models.OrderItem, error) {
	items := make([]models.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		item, err := c.composeOne(ctx, order.ID, in)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

func (c *Composer) composeOne(ctx context.Context, orderID int64, in ItemInput) (*models.OrderItem, error) {
	if in.Quantity < 1 {
		return nil, pkgerrors.Invalid(ItemEntityName, "Quantity must be at least 1")
	}
	product, err := c.products.Lookup(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}

	item := &models.OrderItem{
		OrderID:   orderID,
		ProductID: product.ID,
		Product:   product,
		Quantity:  in.Quantity,
		UnitPrice: product.UnitPrice,
	}
	if err := c.repo.SaveItem(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert order item")
	}
	return item, nil
}
