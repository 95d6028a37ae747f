package orders

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/angelmondragon/orderdesk/pkg/db/models"
	pkgerrors "github.com/angelmondragon/orderdesk/pkg/errors"
	"github.com/angelmondragon/orderdesk/pkg/logger"
)

// ItemService manages single order lines outside a full order replace.
type ItemService interface {
	List(ctx context.Context) ([]OrderItemDTO, error)
	Get(ctx context.Context, id int64) (*OrderItemDTO, error)
	Add(ctx context.Context, orderID int64, input ItemInput) (*OrderItemDTO, error)
	Update(ctx context.Context, id int64, input ItemInput) (*OrderItemDTO, error)
	Delete(ctx context.Context, id int64) error
}

type itemService struct {
	repo     Repository
	tx       txRunner
	products ProductLookup
	composer *Composer
	metrics  writeRecorder
	logg     *logger.Logger
}

// NewItemService constructs the order line service. metrics may be nil.
func NewItemService(repo Repository, tx txRunner, products ProductLookup, composer *Composer, metrics writeRecorder, logg *logger.Logger) (ItemService, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if products == nil {
		return nil, fmt.Errorf("product lookup required")
	}
	if composer == nil {
		return nil, fmt.Errorf("item composer required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &itemService{
		repo:     repo,
		tx:       tx,
		products: products,
		composer: composer,
		metrics:  metrics,
		logg:     logg,
	}, nil
}

func (s *itemService) List(ctx context.Context) ([]OrderItemDTO, error) {
	rows, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list order items")
	}
	out := make([]OrderItemDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, ItemFromModel(row))
	}
	return out, nil
}

func (s *itemService) Get(ctx context.Context, id int64) (*OrderItemDTO, error) {
	item, err := findItem(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	dto := ItemFromModel(*item)
	return &dto, nil
}

// Add attaches a new line to an existing order at the product's current price.
func (s *itemService) Add(ctx context.Context, orderID int64, input ItemInput) (*OrderItemDTO, error) {
	var item models.OrderItem
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		order, err := findOrder(ctx, s.repo.WithTx(tx), orderID)
		if err != nil {
			return err
		}
		items, err := s.composer.WithTx(tx).Compose(ctx, order, []ItemInput{input})
		if err != nil {
			return err
		}
		item = items[0]
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, "add_item", item)
	dto := ItemFromModel(item)
	return &dto, nil
}

// Update changes the product and quantity of a line. The product is resolved
// again and its current price snapshotted; the owning order is unchanged.
func (s *itemService) Update(ctx context.Context, id int64, input ItemInput) (*OrderItemDTO, error) {
	if input.Quantity < 1 {
		return nil, pkgerrors.Invalid(ItemEntityName, "Quantity must be at least 1")
	}

	var item *models.OrderItem
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		var err error
		item, err = findItem(ctx, txRepo, id)
		if err != nil {
			return err
		}
		product, err := s.products.Lookup(ctx, input.ProductID)
		if err != nil {
			return err
		}

		item.ProductID = product.ID
		item.Product = product
		item.Quantity = input.Quantity
		item.UnitPrice = product.UnitPrice
		if err := txRepo.SaveItem(ctx, item); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update order item")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, "update_item", *item)
	dto := ItemFromModel(*item)
	return &dto, nil
}

// Delete removes a line. The last line of an order cannot be removed; the
// order itself must be deleted instead.
func (s *itemService) Delete(ctx context.Context, id int64) error {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		item, err := findItem(ctx, txRepo, id)
		if err != nil {
			return err
		}
		remaining, err := txRepo.CountItems(ctx, item.OrderID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count order items")
		}
		if remaining <= 1 {
			return pkgerrors.Invalid(EntityName, msgEmptyItems)
		}
		if err := txRepo.DeleteItems(ctx, []models.OrderItem{*item}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete order item")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.record(ctx, "delete_item", models.OrderItem{ID: id})
	return nil
}

func (s *itemService) record(ctx context.Context, op string, item models.OrderItem) {
	if s.metrics != nil {
		s.metrics.OrderWritten(op, 1)
	}
	ctx = s.logg.WithEntity(ctx, ItemEntityName, item.ID)
	s.logg.Info(ctx, "order_item."+op)
}

func findItem(ctx context.Context, repo Repository, id int64) (*models.OrderItem, error) {
	item, err := repo.FindItem(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound(ItemEntityName, id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find order item")
	}
	return item, nil
}
