package users

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/angelmondragon/orderdesk/internal/repo"
	"github.com/angelmondragon/orderdesk/pkg/db/models"
	pkgerrors "github.com/angelmondragon/orderdesk/pkg/errors"
)

// Repository persists users.
type Repository struct {
	store *repo.Store[models.User]
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{store: repo.NewStore[models.User](db)}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{store: r.store.WithTx(tx)}
}

func (r *Repository) FindAll(ctx context.Context) ([]models.User, error) {
	return r.store.FindAll(ctx)
}

// FindByID loads a user or fails with a User not-found error.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	u, err := r.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound(EntityName, id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find user")
	}
	return u, nil
}

func (r *Repository) Save(ctx context.Context, u *models.User) error {
	return r.store.Save(ctx, u)
}

func (r *Repository) Delete(ctx context.Context, u *models.User) error {
	return r.store.Delete(ctx, u)
}

// EnsureUnique checks email and phone number, skipping values equal to
// those stored on current.
func (r *Repository) EnsureUnique(ctx context.Context, in Input, current *models.User) error {
	email := repo.UniqueField{Column: "email", Label: "email", Value: in.Email}
	phone := repo.UniqueField{Column: "phone_number", Label: "phone number", Value: in.PhoneNumber}
	if current != nil {
		email.Previous = &current.Email
		phone.Previous = &current.PhoneNumber
	}
	return r.store.EnsureUnique(ctx, EntityName, email, phone)
}
