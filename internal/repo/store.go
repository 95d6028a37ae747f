package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the generic entity store shared by the domain repositories.
// Lookups return gorm.ErrRecordNotFound on a miss; callers translate it into
// their own not-found error.
type Store[T any] struct {
	db *gorm.DB
}

// NewStore binds a store for T to db.
func NewStore[T any](db *gorm.DB) *Store[T] {
	return &Store[T]{db: db}
}

// DB returns the bound connection carrying ctx.
func (s *Store[T]) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return s.db
	}
	return s.db.WithContext(ctx)
}

// WithTx returns a store bound to the given transaction.
func (s *Store[T]) WithTx(tx *gorm.DB) *Store[T] {
	if tx == nil {
		return s
	}
	return NewStore[T](tx)
}

func (s *Store[T]) FindByID(ctx context.Context, id int64, preloads ...string) (*T, error) {
	var entity T
	if err := withPreloads(s.DB(ctx), preloads).First(&entity, id).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// FindAll returns every row ordered by primary key.
func (s *Store[T]) FindAll(ctx context.Context, preloads ...string) ([]T, error) {
	var entities []T
	if err := withPreloads(s.DB(ctx), preloads).Order("id ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// FindBy returns rows whose column equals value, ordered by primary key.
func (s *Store[T]) FindBy(ctx context.Context, column string, value any, preloads ...string) ([]T, error) {
	var entities []T
	err := withPreloads(s.DB(ctx), preloads).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).
		Order("id ASC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return entities, nil
}

// ExistsBy reports whether any row has column equal to value.
func (s *Store[T]) ExistsBy(ctx context.Context, column string, value any) (bool, error) {
	var count int64
	err := s.DB(ctx).
		Model(new(T)).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save inserts entity when its primary key is zero and updates it otherwise.
// Associations are never written through Save.
func (s *Store[T]) Save(ctx context.Context, entity *T) error {
	return s.DB(ctx).Omit(clause.Associations).Save(entity).Error
}

func (s *Store[T]) Delete(ctx context.Context, entity *T) error {
	return s.DB(ctx).Delete(entity).Error
}

// DeleteAll removes the given rows by primary key.
func (s *Store[T]) DeleteAll(ctx context.Context, entities []T) error {
	if len(entities) == 0 {
		return nil
	}
	return s.DB(ctx).Delete(&entities).Error
}

// withPreloads loads the named associations, each ordered by primary key so
// collections come back in insertion order.
func withPreloads(db *gorm.DB, preloads []string) *gorm.DB {
	for _, p := range preloads {
		db = db.Preload(p, byID)
	}
	return db
}

func byID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}
