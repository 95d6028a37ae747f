package users

import (
	"context"
	"fmt"

	"github.com/angelmondragon/orderdesk/pkg/db"
	"github.com/angelmondragon/orderdesk/pkg/db/models"
	pkgerrors "github.com/angelmondragon/orderdesk/pkg/errors"
	"github.com/angelmondragon/orderdesk/pkg/logger"
)

const EntityName = "User"

var (
	ErrNotFound      = pkgerrors.Kind(pkgerrors.CodeNotFound, EntityName)
	ErrAlreadyExists = pkgerrors.Kind(pkgerrors.CodeConflict, EntityName)
)

// Service exposes user management. Update replaces every field while Patch
// only touches the fields provided; both check uniqueness of changed values.
type Service interface {
	List(ctx context.Context) ([]UserDTO, error)
	Get(ctx context.Context, id int64) (*UserDTO, error)
	Create(ctx context.Context, input Input) (*UserDTO, error)
	Update(ctx context.Context, id int64, input Input) (*UserDTO, error)
	Patch(ctx context.Context, id int64, input PatchInput) (*UserDTO, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo *Repository
	logg *logger.Logger
}

func NewService(repo *Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) List(ctx context.Context) ([]UserDTO, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list users")
	}
	out := make([]UserDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromModel(row))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id int64) (*UserDTO, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := FromModel(*u)
	return &dto, nil
}

func (s *service) Create(ctx context.Context, input Input) (*UserDTO, error) {
	if err := s.repo.EnsureUnique(ctx, input, nil); err != nil {
		return nil, err
	}
	u := &models.User{}
	return s.write(ctx, u, input)
}

func (s *service) Update(ctx context.Context, id int64, input Input) (*UserDTO, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.EnsureUnique(ctx, input, u); err != nil {
		return nil, err
	}
	return s.write(ctx, u, input)
}

func (s *service) Patch(ctx context.Context, id int64, input PatchInput) (*UserDTO, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	merged := input.apply(*u)
	if err := s.repo.EnsureUnique(ctx, merged, u); err != nil {
		return nil, err
	}
	return s.write(ctx, u, merged)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, u); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete user")
	}
	s.logg.Info(s.logg.WithEntity(ctx, EntityName, id), "user.deleted")
	return nil
}

func (s *service) write(ctx context.Context, u *models.User, input Input) (*UserDTO, error) {
	u.FirstName = input.FirstName
	u.LastName = input.LastName
	u.Email = input.Email
	u.PhoneNumber = input.PhoneNumber

	if err := s.repo.Save(ctx, u); err != nil {
		switch {
		case db.IsUniqueViolation(err, "users_email_key"), db.IsUniqueViolation(err, "users.email"):
			return nil, pkgerrors.AlreadyExists(EntityName, "email", input.Email)
		case db.IsUniqueViolation(err, "users_phone_number_key"), db.IsUniqueViolation(err, "users.phone_number"):
			return nil, pkgerrors.AlreadyExists(EntityName, "phone number", input.PhoneNumber)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: save user")
	}

	dto := FromModel(*u)
	return &dto, nil
}
