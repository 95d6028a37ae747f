package suppliers

import (
	"context"
	"fmt"

	"github.com/angelmondragon/orderdesk/pkg/db"
	"github.com/angelmondragon/orderdesk/pkg/db/models"
	pkgerrors "github.com/angelmondragon/orderdesk/pkg/errors"
	"github.com/angelmondragon/orderdesk/pkg/logger"
)

const EntityName = "Supplier"

var (
	ErrNotFound      = pkgerrors.Kind(pkgerrors.CodeNotFound, EntityName)
	ErrAlreadyExists = pkgerrors.Kind(pkgerrors.CodeConflict, EntityName)
)

// Service exposes supplier CRUD.
type Service interface {
	List(ctx context.Context) ([]SupplierDTO, error)
	Get(ctx context.Context, id int64) (*SupplierDTO, error)
	Create(ctx context.Context, input Input) (*SupplierDTO, error)
	Update(ctx context.Context, id int64, input Input) (*SupplierDTO, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo *Repository
	logg *logger.Logger
}

// NewService constructs a supplier service instance.
func NewService(repo *Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("supplier repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) List(ctx context.Context) ([]SupplierDTO, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list suppliers")
	}
	out := make([]SupplierDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromModel(row))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id int64) (*SupplierDTO, error) {
	sup, err := s.repo.Lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := FromModel(*sup)
	return &dto, nil
}

func (s *service) Create(ctx context.Context, input Input) (*SupplierDTO, error) {
	if err := s.repo.EnsureUnique(ctx, input, nil); err != nil {
		return nil, err
	}

	sup := &models.Supplier{
		Name:        input.Name,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
	}
	if err := s.repo.Save(ctx, sup); err != nil {
		return nil, saveError(err, input)
	}

	s.logg.Info(s.logg.WithEntity(ctx, EntityName, sup.ID), "supplier.created")
	dto := FromModel(*sup)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id int64, input Input) (*SupplierDTO, error) {
	sup, err := s.repo.Lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.EnsureUnique(ctx, input, sup); err != nil {
		return nil, err
	}

	sup.Name = input.Name
	sup.Email = input.Email
	sup.PhoneNumber = input.PhoneNumber
	if err := s.repo.Save(ctx, sup); err != nil {
		return nil, saveError(err, input)
	}

	dto := FromModel(*sup)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	sup, err := s.repo.Lookup(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, sup); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete supplier")
	}
	s.logg.Info(s.logg.WithEntity(ctx, EntityName, id), "supplier.deleted")
	return nil
}

// saveError maps a unique violation that raced past the existence checks.
func saveError(err error, input Input) error {
	switch {
	case db.IsUniqueViolation(err, "suppliers_email_key"), db.IsUniqueViolation(err, "suppliers.email"):
		return pkgerrors.AlreadyExists(EntityName, "email", input.Email)
	case db.IsUniqueViolation(err, "suppliers_phone_number_key"), db.IsUniqueViolation(err, "suppliers.phone_number"):
		return pkgerrors.AlreadyExists(EntityName, "phone number", input.PhoneNumber)
	case db.IsUniqueViolation(err, ""):
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "Supplier already exists")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: save supplier")
}
