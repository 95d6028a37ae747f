package suppliers

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/angelmondragon/orderdesk/internal/repo"
	"github.com/angelmondragon/orderdesk/pkg/db/models"
	pkgerrors "github.com/angelmondragon/orderdesk/pkg/errors"
)

// Repository persists suppliers.
type Repository struct {
	store *repo.Store[models.Supplier]
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{store: repo.NewStore[models.Supplier](db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{store: r.store.WithTx(tx)}
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Supplier, error) {
	return r.store.FindByID(ctx, id)
}

func (r *Repository) FindAll(ctx context.Context) ([]models.Supplier, error) {
	return r.store.FindAll(ctx)
}

func (r *Repository) Save(ctx context.Context, sup *models.Supplier) error {
	return r.store.Save(ctx, sup)
}

func (r *Repository) Delete(ctx context.Context, sup *models.Supplier) error {
	return r.store.Delete(ctx, sup)
}

// EnsureUnique checks email then phone number on create. On update the
// name joins the checks and only values that differ from current are looked up.
func (r *Repository) EnsureUnique(ctx context.Context, in Input, current *models.Supplier) error {
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

// Lookup loads a supplier or fails with a Supplier not-found error.
func (r *Repository) Lookup(ctx context.Context, id int64) (*models.Supplier, error) {
	sup, err := r.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound(EntityName, id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find supplier")
	}
	return sup, nil
}
