package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sreedhargoud/camrental-backend/pkg/migrate"
)

func migrationsDir() string {
	return filepath.Join("..", "..", "db", "migrations")
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join(migrationsDir(), pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q", pattern)
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func TestMigrationsValidate(t *testing.T) {
	if err := migrate.ValidateDir(migrationsDir()); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func TestOrdersMigrationContainsSchemas(t *testing.T) {
	content := readMigration(t, "*_create_orders.sql")

	checks := []string{
		"CREATE TABLE orders",
		"status TEXT NOT NULL DEFAULT 'pending'",
		"payment_status TEXT NOT NULL DEFAULT 'pending'",
		"CREATE TABLE order_line_items",
		"order_id UUID NOT NULL REFERENCES orders (id) ON DELETE CASCADE",
		"CREATE INDEX idx_orders_gateway_order_id",
		"DROP TABLE order_line_items",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestDateBlocksMigrationContainsRangeIndexes(t *testing.T) {
	content := readMigration(t, "*_create_date_blocks.sql")

	checks := []string{
		"CREATE TABLE blocked_dates",
		"CREATE TABLE reserved_dates",
		"CREATE INDEX idx_blocked_dates_range ON blocked_dates (camera_id, start_date, end_date)",
		"CREATE INDEX idx_reserved_dates_range ON reserved_dates (camera_id, start_date, end_date)",
		"order_id UUID NOT NULL REFERENCES orders (id) ON DELETE CASCADE",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
