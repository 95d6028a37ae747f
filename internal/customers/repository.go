package customers

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/angelmondragon/orderdesk/internal/repo"
	"github.com/angelmondragon/orderdesk/pkg/db/models"
	pkgerrors "github.com/angelmondragon/orderdesk/pkg/errors"
)

// Repository persists customers.
type Repository struct {
	store *repo.Store[models.Customer]
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{store: repo.NewStore[models.Customer](db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{store: r.store.WithTx(tx)}
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Customer, error) {
	return r.store.FindByID(ctx, id)
}

func (r *Repository) FindAll(ctx context.Context) ([]models.Customer, error) {
	return r.store.FindAll(ctx)
}

func (r *Repository) Save(ctx context.Context, c *models.Customer) error {
	return r.store.Save(ctx, c)
}

func (r *Repository) Delete(ctx context.Context, c *models.Customer) error {
	return r.store.Delete(ctx, c)
}

// EnsureUnique checks email then phone number on create. On update the
// name joins the checks and only values that differ from current are looked up.
func (r *Repository) EnsureUnique(ctx context.Context, in Input, current *models.Customer) error {
	if current == nil {
		return r.store.EnsureUnique(ctx, EntityName,
			repo.UniqueField{Column: "email", Label: "email", Value: in.Email},
			repo.UniqueField{Column: "phone_number", Label: "phone number", Value: in.PhoneNumber},
		)
	}
	return r.store.EnsureUnique(ctx, EntityName,
		repo.UniqueField{Column: "name", Label: "name", Value: in.Name, Previous: &current.Name},
		repo.UniqueField{Column: "email", Label: "email", Value: in.Email, Previous: &current.Email},
		repo.UniqueField{Column: "phone_number", Label: "phone number", Value: in.PhoneNumber, Previous: &current.PhoneNumber},
	)
}

// Lookup resolves a customer id for other aggregates, failing with a
// Customer not-found error on a miss.
func (r *Repository) Lookup(ctx context.Context, id int64) (*models.Customer, error) {
	c, err := r.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound(EntityName, id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find customer")
	}
	return c, nil
}
