package products

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/angelmondragon/orderdesk/internal/repo"
	"github.com/angelmondragon/orderdesk/pkg/db/models"
	pkgerrors "github.com/angelmondragon/orderdesk/pkg/errors"
)

// Repository persists products.
type Repository struct {
	store *repo.Store[models.Product]
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{store: repo.NewStore[models.Product](db)}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{store: r.store.WithTx(tx)}
}

func (r *Repository) FindAll(ctx context.Context) ([]models.Product, error) {
	return r.store.FindAll(ctx)
}

func (r *Repository) Save(ctx context.Context, p *models.Product) error {
	return r.store.Save(ctx, p)
}

func (r *Repository) Delete(ctx context.Context, p *models.Product) error {
	return r.store.Delete(ctx, p)
}

// EnsureUniqueName fails when another product already uses name. previous is
// the stored name on update, nil on create.
func (r *Repository) EnsureUniqueName(ctx context.Context, name string, previous *string) error {
	return r.store.EnsureUnique(ctx, EntityName,
		repo.UniqueField{Column: "name", Label: "name", Value: name, Previous: previous},
	)
}

// Lookup resolves a product id to its current record, failing with a
// Product not-found error on a miss.
func (r *Repository) Lookup(ctx context.Context, id int64) (*models.Product, error) {
	p, err := r.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound(EntityName, id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find product")
	}
	return p, nil
}
