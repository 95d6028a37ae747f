package products

import (
	"context"
	"fmt"

	"github.com/angelmondragon/orderdesk/pkg/db"
	"github.com/angelmondragon/orderdesk/pkg/db/models"
	pkgerrors "github.com/angelmondragon/orderdesk/pkg/errors"
	"github.com/angelmondragon/orderdesk/pkg/logger"
)

const EntityName = "Product"

var (
	ErrNotFound      = pkgerrors.Kind(pkgerrors.CodeNotFound, EntityName)
	ErrAlreadyExists = pkgerrors.Kind(pkgerrors.CodeConflict, EntityName)
)

// Service exposes product catalog operations.
type Service interface {
	List(ctx context.Context) ([]ProductDTO, error)
	Get(ctx context.Context, id int64) (*ProductDTO, error)
	Create(ctx context.Context, input Input) (*ProductDTO, error)
	Update(ctx context.Context, id int64, input Input) (*ProductDTO, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo *Repository
	logg *logger.Logger
}

// NewService constructs a product service instance.
func NewService(repo *Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) List(ctx context.Context) ([]ProductDTO, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}
	out := make([]ProductDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromModel(row))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id int64) (*ProductDTO, error) {
	p, err := s.repo.Lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := FromModel(*p)
	return &dto, nil
}

func (s *service) Create(ctx context.Context, input Input) (*ProductDTO, error) {
	if err := validatePrice(input); err != nil {
		return nil, err
	}
	if err := s.repo.EnsureUniqueName(ctx, input.Name, nil); err != nil {
		return nil, err
	}

	p := &models.Product{Name: input.Name, UnitPrice: input.UnitPrice.Round(2)}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, saveError(err, input)
	}

	s.logg.Info(s.logg.WithEntity(ctx, EntityName, p.ID), "product.created")
	dto := FromModel(*p)
	return &dto, nil
}

// Update changes name and price. Items already attached to orders keep the
// price they were created with.
func (s *service) Update(ctx context.Context, id int64, input Input) (*ProductDTO, error) {
	if err := validatePrice(input); err != nil {
		return nil, err
	}
	p, err := s.repo.Lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.EnsureUniqueName(ctx, input.Name, &p.Name); err != nil {
		return nil, err
	}

	p.Name = input.Name
	p.UnitPrice = input.UnitPrice.Round(2)
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, saveError(err, input)
	}

	dto := FromModel(*p)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	p, err := s.repo.Lookup(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, p); err != nil {
		if db.IsForeignKeyViolation(err) {
			return pkgerrors.InUse(EntityName, "order items", err)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
	}
	s.logg.Info(s.logg.WithEntity(ctx, EntityName, id), "product.deleted")
	return nil
}

func validatePrice(input Input) error {
	if !input.UnitPrice.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "Unit price must be greater than 0").
			WithDetails(map[string]string{"unitPrice": "must be greater than 0"})
	}
	return nil
}

func saveError(err error, input Input) error {
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.AlreadyExists(EntityName, "name", input.Name)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: save product")
}
