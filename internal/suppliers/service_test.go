package suppliers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/orderdesk/pkg/db/dbtest"
	pkgerrors "github.com/angelmondragon/orderdesk/pkg/errors"
	"github.com/angelmondragon/orderdesk/pkg/logger"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	client := dbtest.NewSQLite(t)
	svc, err := NewService(NewRepository(client.DB()), logger.Nop())
	require.NoError(t, err)
	return svc
}

func TestNewServiceRequiresDeps(t *testing.T) {
	_, err := NewService(nil, logger.Nop())
	require.Error(t, err)
	_, err = NewService(&Repository{}, nil)
	require.Error(t, err)
}

func TestCreateAndGet(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, Input{Name: "Ada", Email: "ada@example.com", PhoneNumber: "+15550001"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *got)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCreateDuplicateEmailOrPhone(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, Input{Name: "Ada", Email: "ada@example.com", PhoneNumber: "+15550001"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, Input{Name: "Other", Email: "ada@example.com", PhoneNumber: "+15550002"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAlreadyExists))
	assert.Equal(t, "Supplier already exists with email: ada@example.com", pkgerrors.As(err).Message())

	_, err = svc.Create(ctx, Input{Name: "Other", Email: "other@example.com", PhoneNumber: "+15550001"})
	require.Error(t, err)
	assert.Equal(t, "Supplier already exists with phone number: +15550001", pkgerrors.As(err).Message())

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1, "no duplicate row may be written")
}

func TestUpdateWithUnchangedUniqueFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, Input{Name: "Ada", Email: "ada@example.com", PhoneNumber: "+15550001"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, Input{Name: "Ada", Email: "ada@example.com", PhoneNumber: "+15550001"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
}

func TestUpdateCollisions(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, Input{Name: "Ada", Email: "ada@example.com", PhoneNumber: "+15550001"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, Input{Name: "Grace", Email: "grace@example.com", PhoneNumber: "+15550002"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, second.ID, Input{Name: "Ada", Email: "grace@example.com", PhoneNumber: "+15550002"})
	require.Error(t, err)
	assert.Equal(t, "Supplier already exists with name: Ada", pkgerrors.As(err).Message())

	_, err = svc.Update(ctx, second.ID, Input{Name: "Grace", Email: first.Email, PhoneNumber: "+15550002"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAlreadyExists))

	updated, err := svc.Update(ctx, second.ID, Input{Name: "Grace H", Email: "gh@example.com", PhoneNumber: "+15550003"})
	require.NoError(t, err)
	assert.Equal(t, "gh@example.com", updated.Email)
}

func TestNotFound(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, 999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "Supplier not found with ID: 999", pkgerrors.As(err).Message())

	_, err = svc.Update(ctx, 999, Input{Name: "x", Email: "x@example.com", PhoneNumber: "+15550009"})
	assert.True(t, errors.Is(err, ErrNotFound))

	assert.True(t, errors.Is(svc.Delete(ctx, 999), ErrNotFound))
}

func TestDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, Input{Name: "Ada", Email: "ada@example.com", PhoneNumber: "+15550001"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}
