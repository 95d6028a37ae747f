// Package dbtest opens throwaway databases for package tests.
package dbtest

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"

	"github.com/angelmondragon/orderdesk/pkg/db"
	"github.com/angelmondragon/orderdesk/pkg/db/models"
)

// NewSQLite returns a client over a private in-memory sqlite database with
// every model migrated. The database is closed when the test ends.
func NewSQLite(t testing.TB) *db.Client {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%s?mode=memory&cache=shared", name, uuid.NewString())
	conn, err := db.Open(sqlite.Open(db.SQLiteDSN(dsn)))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	client := db.NewFromGorm(conn)
	if err := client.AutoMigrate(context.Background(), models.All()...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}
