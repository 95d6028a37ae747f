package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pressly/goose/v3"
)

// ValidateDir loads every migration in dir through goose, which rejects
// unparsable or duplicate versions, then checks that versions are
// YYYYMMDDHHMMSS timestamps and that SQL files carry both goose sections.
func ValidateDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("dir is required")
	}

	migrations, err := goose.CollectMigrations(dir, 0, goose.MaxVersion)
	if err != nil {
		return fmt.Errorf("collect migrations in %q: %w", dir, err)
	}

	for _, m := range migrations {
		name := filepath.Base(m.Source)
		if _, err := ParseVersion(strconv.FormatInt(m.Version, 10)); err != nil {
			return fmt.Errorf("migration %q: %w", name, err)
		}
		if filepath.Ext(name) != ".sql" {
			continue
		}

		b, err := os.ReadFile(m.Source)
		if err != nil {
			return fmt.Errorf("read file %q: %w", m.Source, err)
		}
		txt := string(b)
		if !strings.Contains(txt, "-- +goose Up") {
			return fmt.Errorf("migration %q missing \"-- +goose Up\"", name)
		}
		if !strings.Contains(txt, "-- +goose Down") {
			return fmt.Errorf("migration %q missing \"-- +goose Down\"", name)
		}
	}
	return nil
}
