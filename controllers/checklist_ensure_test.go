package controllers

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// stubQuerier plays the checklist store: the EXISTS probe answers from a
// flag, and every insert is recorded and flips the flag the way a committed
// write would.
type stubQuerier struct {
	seeded  bool
	inserts []string
}

type stubRow struct{ exists bool }

func (r stubRow) Scan(dest ...any) error {
	if b, ok := dest[0].(*bool); ok {
		*b = r.exists
	}
	return nil
}

func (q *stubQuerier) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	q.inserts = append(q.inserts, sql)
	q.seeded = true
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (q *stubQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, pgx.ErrNoRows
}

func (q *stubQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	return stubRow{exists: q.seeded}
}

func TestEnsureChecklistSeedsFourSteps(t *testing.T) {
	q := &stubQuerier{}
	if err := EnsureChecklist(context.Background(), q, "user-1", "new", nil); err != nil {
		t.Fatal(err)
	}
	if len(q.inserts) != 4 {
		t.Fatalf("expected 4 inserts on first run, got %d", len(q.inserts))
	}
}

func TestEnsureChecklistIsIdempotent(t *testing.T) {
	q := &stubQuerier{}
	if err := EnsureChecklist(context.Background(), q, "user-1", "new", nil); err != nil {
		t.Fatal(err)
	}
	if err := EnsureChecklist(context.Background(), q, "user-1", "new", nil); err != nil {
		t.Fatal(err)
	}
	if len(q.inserts) != 4 {
		t.Fatalf("re-run wrote %d extra rows", len(q.inserts)-4)
	}
}

func TestEnsureChecklistSkipsWhenRowsExist(t *testing.T) {
	q := &stubQuerier{seeded: true}
	if err := EnsureChecklist(context.Background(), q, "user-1", "old", nil); err != nil {
		t.Fatal(err)
	}
	if len(q.inserts) != 0 {
		t.Fatalf("expected zero inserts when the probe reports rows, got %d", len(q.inserts))
	}
}

func TestEnsureChecklistScopedUsesConflictGuard(t *testing.T) {
	bid := "b-1"
	q := &stubQuerier{}
	if err := EnsureChecklist(context.Background(), q, "user-1", "old", &bid); err != nil {
		t.Fatal(err)
	}
	if len(q.inserts) != 4 {
		t.Fatalf("expected 4 scoped inserts, got %d", len(q.inserts))
	}
	for _, sql := range q.inserts {
		if !strings.Contains(sql, "ON CONFLICT") {
			t.Fatalf("scoped insert missing conflict guard: %s", sql)
		}
	}
	if err := EnsureChecklist(context.Background(), q, "user-1", "old", &bid); err != nil {
		t.Fatal(err)
	}
	if len(q.inserts) != 4 {
		t.Fatalf("scoped re-run wrote %d extra rows", len(q.inserts)-4)
	}
}
