package repo

import (
	"context"

	pkgerrors "github.com/angelmondragon/orderdesk/pkg/errors"
)

// UniqueField is a unique column checked before a write. On update Previous
// holds the stored value and the check is skipped when Value is unchanged.
type UniqueField struct {
	Column   string
	Label    string
	Value    string
	Previous *string
}

// Changed reports whether the field needs an existence check.
func (f UniqueField) Changed() bool {
	return f.Previous == nil || *f.Previous != f.Value
}

// EnsureUnique runs an existence check for every changed field in order and
// returns an AlreadyExists error for the first collision.
func (s *Store[T]) EnsureUnique(ctx context.Context, entity string, fields ...UniqueField) error {
	for _, f := range fields {
		if !f.Changed() {
			continue
		}
		exists, err := s.ExistsBy(ctx, f.Column, f.Value)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check "+f.Label)
		}
		if exists {
			return pkgerrors.AlreadyExists(entity, f.Label, f.Value)
		}
	}
	return nil
}
