package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/angelmondragon/orderdesk/pkg/db/models"
	pkgerrors "github.com/angelmondragon/orderdesk/pkg/errors"
	"github.com/angelmondragon/orderdesk/pkg/logger"
)

const (
	EntityName     = "Order"
	ItemEntityName = "OrderItem"

	msgEmptyItems = "Order must have at least one item"
)

var (
	ErrNotFound     = pkgerrors.Kind(pkgerrors.CodeNotFound, EntityName)
	ErrItemNotFound = pkgerrors.Kind(pkgerrors.CodeNotFound, ItemEntityName)
	ErrValidation   = pkgerrors.Kind(pkgerrors.CodeValidation, EntityName)
)

// Service manages an order and its items as one unit.
type Service interface {
	List(ctx context.Context) ([]OrderDTO, error)
	Get(ctx context.Context, id int64) (*OrderDTO, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]OrderDTO, error)
	Create(ctx context.Context, input OrderInput) (*OrderDTO, error)
	Update(ctx context.Context, id int64, input OrderInput) (*OrderDTO, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo      Repository
	tx        txRunner
	customers CustomerLookup
	composer  *Composer
	metrics   writeRecorder
	logg      *logger.Logger
	now       func() time.Time
}

// NewService wires the aggregate manager. metrics may be nil.
func NewService(repo Repository, tx txRunner, customers CustomerLookup, composer *Composer, metrics writeRecorder, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if customers == nil {
		return nil, fmt.Errorf("customer lookup required")
	}
	if composer == nil {
		return nil, fmt.Errorf("item composer required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:      repo,
		tx:        tx,
		customers: customers,
		composer:  composer,
		metrics:   metrics,
		logg:      logg,
		now:       time.Now,
	}, nil
}

func (s *service) List(ctx context.Context) ([]OrderDTO, error) {
	rows, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list orders")
	}
	return fromModels(rows), nil
}

func (s *service) Get(ctx context.Context, id int64) (*OrderDTO, error) {
	order, err := findOrder(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	dto := FromModel(*order)
	return &dto, nil
}

// ListByCustomer fails with the customer's not-found error when the
// customer does not exist; an existing customer without orders yields an
// empty list.
func (s *service) ListByCustomer(ctx context.Context, customerID int64) ([]OrderDTO, error) {
	if _, err := s.customers.Lookup(ctx, customerID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListOrdersByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list customer orders")
	}
	return fromModels(rows), nil
}

func (s *service) Create(ctx context.Context, input OrderInput) (*OrderDTO, error) {
	customer, err := s.customers.Lookup(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.Invalid(EntityName, msgEmptyItems)
	}

	order := &models.Order{
		CustomerID: customer.ID,
		OrderDate:  s.now().UTC(),
	}
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).SaveOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert order")
		}
		items, err := s.composer.WithTx(tx).Compose(ctx, order, input.Items)
		if err != nil {
			return err
		}
		for _, item := range items {
			order.AddItem(item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	order.Customer = customer

	s.record(ctx, "create", order)
	dto := FromModel(*order)
	return &dto, nil
}

// Update replaces the customer and the whole item set. Existing items are
// hard deleted and new ones composed at current product prices; the order
// date is kept.
func (s *service) Update(ctx context.Context, id int64, input OrderInput) (*OrderDTO, error) {
	var order *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		var err error
		order, err = findOrder(ctx, txRepo, id)
		if err != nil {
			return err
		}
		customer, err := s.customers.Lookup(ctx, input.CustomerID)
		if err != nil {
			return err
		}
		if len(input.Items) == 0 {
			return pkgerrors.Invalid(EntityName, msgEmptyItems)
		}

		if err := txRepo.DeleteItems(ctx, order.Items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete order items")
		}
		for _, old := range append([]models.OrderItem(nil), order.Items...) {
			order.RemoveItem(old.ID)
		}

		items, err := s.composer.WithTx(tx).Compose(ctx, order, input.Items)
		if err != nil {
			return err
		}
		for _, item := range items {
			order.AddItem(item)
		}

		order.CustomerID = customer.ID
		order.Customer = customer
		if err := txRepo.SaveOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, "update", order)
	dto := FromModel(*order)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		order, err := findOrder(ctx, txRepo, id)
		if err != nil {
			return err
		}
		if err := txRepo.DeleteItems(ctx, order.Items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete order items")
		}
		if err := txRepo.DeleteOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete order")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.record(ctx, "delete", &models.Order{ID: id})
	return nil
}

func (s *service) record(ctx context.Context, op string, order *models.Order) {
	if s.metrics != nil {
		s.metrics.OrderWritten(op, len(order.Items))
	}
	ctx = s.logg.WithEntity(ctx, EntityName, order.ID)
	ctx = s.logg.WithField(ctx, "items", len(order.Items))
	s.logg.Info(ctx, "order."+op+"d")
}

func findOrder(ctx context.Context, repo Repository, id int64) (*models.Order, error) {
	order, err := repo.FindOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound(EntityName, id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find order")
	}
	return order, nil
}
