package duckdb

import (
	"strings"
	"testing"
)

func TestValidateReadOnly(t *testing.T) {
	t.Parallel()

	allowed := []string{
		"SELECT * FROM deals",
		"  with t AS (SELECT 1) SELECT * FROM t;",
		"SELECT status, count(*) FROM repair_orders GROUP BY status -- by status",
	}
	for _, q := range allowed {
		if err := ValidateReadOnly(q); err != nil {
			t.Errorf("ValidateReadOnly(%q) = %v, want nil", q, err)
		}
	}

	rejected := []struct{ query, want string }{
		{"", "empty"},
		{"DELETE FROM deals", "only SELECT"},
		{"SELECT 1; DROP TABLE deals", "single statement"},
		{"SELECT * FROM deals /* note */ WHERE id IN (SELECT id FROM (UPDATE deals))", "UPDATE"},
		{"WITH x AS (SELECT 1) INSERT INTO deals SELECT * FROM x", "INSERT"},
	}
	for _, tc := range rejected {
		err := ValidateReadOnly(tc.query)
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Errorf("ValidateReadOnly(%q) = %v, want error containing %q", tc.query, err, tc.want)
		}
	}
}

func TestExecuteQuery(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	res, err := store.ExecuteQuery("SELECT status, count(*) AS n FROM repair_orders WHERE status = 'Working' GROUP BY status")
	if err != nil {
		t.Fatalf("ExecuteQuery: %v", err)
	}
	if len(res.Columns) != 2 || res.Columns[1] != "n" {
		t.Errorf("Columns = %v", res.Columns)
	}
	if len(res.Rows) != 1 {
		t.Fatalf("len(Rows) = %d, want 1", len(res.Rows))
	}
	if res.Rows[0][0] != "Working" {
		t.Errorf("status = %v, want Working", res.Rows[0][0])
	}
	if res.Truncated {
		t.Error("Truncated = true for a one-row result")
	}

	if _, err := store.ExecuteQuery("DROP TABLE deals"); err == nil {
		t.Error("ExecuteQuery accepted a DROP")
	}
}

func TestExecuteQueryTruncates(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	res, err := store.ExecuteQuery("SELECT * FROM range(1500)")
	if err != nil {
		t.Fatalf("ExecuteQuery: %v", err)
	}
	if len(res.Rows) != MaxQueryRows || !res.Truncated {
		t.Errorf("rows = %d truncated = %v, want %d true", len(res.Rows), res.Truncated, MaxQueryRows)
	}
}
