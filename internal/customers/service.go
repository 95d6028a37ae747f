package customers

import (
	"context"
	"fmt"

	"github.com/angelmondragon/orderdesk/pkg/db"
	"github.com/angelmondragon/orderdesk/pkg/db/models"
	pkgerrors "github.com/angelmondragon/orderdesk/pkg/errors"
	"github.com/angelmondragon/orderdesk/pkg/logger"
)

const EntityName = "Customer"

var (
	ErrNotFound      = pkgerrors.Kind(pkgerrors.CodeNotFound, EntityName)
	ErrAlreadyExists = pkgerrors.Kind(pkgerrors.CodeConflict, EntityName)
)

// Service exposes customer CRUD.
type Service interface {
	List(ctx context.Context) ([]CustomerDTO, error)
	Get(ctx context.Context, id int64) (*CustomerDTO, error)
	Create(ctx context.Context, input Input) (*CustomerDTO, error)
	Update(ctx context.Context, id int64, input Input) (*CustomerDTO, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo *Repository
	logg *logger.Logger
}

// NewService constructs a customer service instance.
func NewService(repo *Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) List(ctx context.Context) ([]CustomerDTO, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list customers")
	}
	out := make([]CustomerDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromModel(row))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id int64) (*CustomerDTO, error) {
	c, err := s.repo.Lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := FromModel(*c)
	return &dto, nil
}

func (s *service) Create(ctx context.Context, input Input) (*CustomerDTO, error) {
	if err := s.repo.EnsureUnique(ctx, input, nil); err != nil {
		return nil, err
	}

	c := &models.Customer{
		Name:        input.Name,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
	}
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, saveError(err, input)
	}

	s.logg.Info(s.logg.WithEntity(ctx, EntityName, c.ID), "customer.created")
	dto := FromModel(*c)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id int64, input Input) (*CustomerDTO, error) {
	c, err := s.repo.Lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.EnsureUnique(ctx, input, c); err != nil {
		return nil, err
	}

	c.Name = input.Name
	c.Email = input.Email
	c.PhoneNumber = input.PhoneNumber
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, saveError(err, input)
	}

	dto := FromModel(*c)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	c, err := s.repo.Lookup(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, c); err != nil {
		if db.IsForeignKeyViolation(err) {
			return pkgerrors.InUse(EntityName, "orders", err)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete customer")
	}
	s.logg.Info(s.logg.WithEntity(ctx, EntityName, id), "customer.deleted")
	return nil
}

// saveError maps a unique violation that raced past the existence checks.
func saveError(err error, input Input) error {
	switch {
	case db.IsUniqueViolation(err, "customers_email_key"), db.IsUniqueViolation(err, "customers.email"):
		return pkgerrors.AlreadyExists(EntityName, "email", input.Email)
	case db.IsUniqueViolation(err, "customers_phone_number_key"), db.IsUniqueViolation(err, "customers.phone_number"):
		return pkgerrors.AlreadyExists(EntityName, "phone number", input.PhoneNumber)
	case db.IsUniqueViolation(err, ""):
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "Customer already exists")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: save customer")
}
