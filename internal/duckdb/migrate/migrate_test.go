package migrate

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/duckdb/duckdb-go/v2"
)

const latestVersion = 3

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("duckdb", "")
	if err != nil {
		t.Fatalf("open duckdb: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunAppliesAllMigrations(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	if err := NewRunner(db, nil).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	tables := []string{
		"schema_migrations", "repair_orders", "technicians", "leads",
		"customers", "inventory", "activities", "quotes", "deals",
	}
	for _, table := range tables {
		var name string
		err := db.QueryRow("SELECT table_name FROM information_schema.tables WHERE table_name = ?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}
}

func TestRunIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := openTestDB(t)
	r := NewRunner(db, nil)

	if err := r.Run(ctx); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if err := r.Run(ctx); err != nil {
		t.Fatalf("second Run: %v", err)
	}

	cur, pending, err := r.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if cur != latestVersion || pending != 0 {
		t.Errorf("version=%d pending=%d, want version=%d pending=0", cur, pending, latestVersion)
	}
}

func TestStatusBeforeRun(t *testing.T) {
	t.Parallel()

	cur, pending, err := NewRunner(openTestDB(t), nil).Status(context.Background())
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if cur != 0 || pending != latestVersion {
		t.Errorf("version=%d pending=%d, want version=0 pending=%d", cur, pending, latestVersion)
	}
}
