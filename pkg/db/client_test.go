package db

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/angelmondragon/orderdesk/pkg/config"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testModel struct {
	ID    int
	Name  string
	Email string `gorm:"uniqueIndex"`
}

type testParent struct {
	ID       int
	Children []testChild `gorm:"foreignKey:ParentID;constraint:OnDelete:RESTRICT"`
}

type testChild struct {
	ID       int
	ParentID int
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := Open(sqlite.Open(SQLiteDSN(dsn)))
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&testModel{}, &testParent{}, &testChild{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return conn
}

func TestWithTx_CommitsAndRollbacks(t *testing.T) {
	db := newTestDB(t)
	client := NewFromGorm(db)

	ctx := context.Background()
	if err := client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&testModel{Name: "committed", Email: "a@example.com"}).Error
	}); err != nil {
		t.Fatalf("WithTx commit failed: %v", err)
	}

	var count int64
	if err := db.Model(&testModel{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 record, got %d", count)
	}

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&testModel{Name: "rolled", Email: "b@example.com"}).Error; err != nil {
			return err
		}
		return errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected WithTx to return an error")
	}
	if err := db.Model(&testModel{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed after rollback: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected rollback to leave 1 record, got %d", count)
	}
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	db := newTestDB(t)
	client := NewFromGorm(db)

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic to propagate")
			}
		}()
		_ = client.WithTx(context.Background(), func(tx *gorm.DB) error {
			if err := tx.Create(&testModel{Name: "panicky", Email: "p@example.com"}).Error; err != nil {
				return err
			}
			panic("boom")
		})
	}()

	var count int64
	if err := db.Model(&testModel{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected panic rollback, got %d rows", count)
	}
}

func TestPing(t *testing.T) {
	client := NewFromGorm(newTestDB(t))
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}
	if client.Driver() != "sqlite" {
		t.Fatalf("expected sqlite driver, got %q", client.Driver())
	}
}

func TestNew_SQLiteDriver(t *testing.T) {
	cfg := config.DBConfig{
		Driver: "sqlite",
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	}
	client, err := New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer client.Close()

	if err := client.AutoMigrate(context.Background(), &testModel{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
}

func TestNew_RequiresDSN(t *testing.T) {
	if _, err := New(context.Background(), config.DBConfig{}, nil); err == nil {
		t.Fatal("expected missing dsn error")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	db := newTestDB(t)
	if err := db.Create(&testModel{Name: "one", Email: "dup@example.com"}).Error; err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	err := db.Create(&testModel{Name: "two", Email: "dup@example.com"}).Error
	if !IsUniqueViolation(err, "") {
		t.Fatalf("expected sqlite unique violation, got %v", err)
	}
	if !IsUniqueViolation(err, "test_models.email") {
		t.Fatalf("expected constraint match, got %v", err)
	}

	pgErr := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "customers_email_key"})
	if !IsUniqueViolation(pgErr, "customers_email_key") {
		t.Fatal("expected pgx unique violation")
	}
	if IsUniqueViolation(pgErr, "customers_phone_key") {
		t.Fatal("constraint name must match")
	}

	pqErr := &pq.Error{Code: "23505", Constraint: "products_name_key"}
	if !IsUniqueViolation(pqErr, "") {
		t.Fatal("expected pq unique violation")
	}

	if IsUniqueViolation(errors.New("connection refused"), "") {
		t.Fatal("unrelated errors are not unique violations")
	}
	if IsUniqueViolation(nil, "") {
		t.Fatal("nil is not a violation")
	}
}

func TestSQLiteDSN(t *testing.T) {
	tests := map[string]string{
		"file:od.db":                    "file:od.db?_foreign_keys=1",
		"file::memory:?cache=shared":    "file::memory:?cache=shared&_foreign_keys=1",
		"file:od.db?_foreign_keys=on":   "file:od.db?_foreign_keys=on",
		"file:od.db?cache=shared&_fk=1": "file:od.db?cache=shared&_fk=1",
	}
	for in, want := range tests {
		if got := SQLiteDSN(in); got != want {
			t.Fatalf("SQLiteDSN(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSQLiteEnforcesRestrictedDeletes(t *testing.T) {
	db := newTestDB(t)
	parent := testParent{Children: []testChild{{}}}
	if err := db.Create(&parent).Error; err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	err := db.Delete(&testParent{ID: parent.ID}).Error
	if !IsForeignKeyViolation(err) {
		t.Fatalf("expected foreign key violation, got %v", err)
	}

	if err := db.Create(&testChild{ParentID: 999}).Error; !IsForeignKeyViolation(err) {
		t.Fatalf("expected dangling reference to be rejected, got %v", err)
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	if !IsForeignKeyViolation(fmt.Errorf("delete: %w", &pgconn.PgError{Code: "23503"})) {
		t.Fatal("expected pgx foreign key violation")
	}
	if !IsForeignKeyViolation(&pq.Error{Code: "23503"}) {
		t.Fatal("expected pq foreign key violation")
	}
	if IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}) {
		t.Fatal("unique violation is not a foreign key violation")
	}
	if IsForeignKeyViolation(errors.New("connection refused")) || IsForeignKeyViolation(nil) {
		t.Fatal("unrelated errors are not foreign key violations")
	}
}
