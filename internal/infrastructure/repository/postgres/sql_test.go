package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/lib/pq"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatalf("expected true for sql.ErrNoRows")
	}
	if !isNotFound(fmt.Errorf("get league: %w", sql.ErrNoRows)) {
		t.Fatalf("expected true for wrapped sql.ErrNoRows")
	}
	if isNotFound(fakeErr("pq: relation scores does not exist")) {
		t.Fatalf("expected false for unrelated error")
	}
}

func TestWrapDB(t *testing.T) {
	t.Run("adds sqlstate and constraint for server errors", func(t *testing.T) {
		err := wrapDB(&pq.Error{Code: "23503", Constraint: "scores_league_id_fkey", Message: "violates foreign key"}, "upsert scores")
		msg := err.Error()
		if !strings.Contains(msg, "upsert scores") || !strings.Contains(msg, "23503") || !strings.Contains(msg, "scores_league_id_fkey") {
			t.Fatalf("unexpected message: %s", msg)
		}
		var pqErr *pq.Error
		if !errors.As(err, &pqErr) || pqErr.Code.Class() != "23" {
			t.Fatalf("expected pq error to survive wrapping")
		}
	})

	t.Run("wraps plain errors", func(t *testing.T) {
		err := wrapDB(fakeErr("connection refused"), "list games")
		if err.Error() != "list games: connection refused" {
			t.Fatalf("unexpected message: %s", err.Error())
		}
	})

	t.Run("nil stays nil", func(t *testing.T) {
		if wrapDB(nil, "noop") != nil {
			t.Fatalf("expected nil")
		}
	})
}

func TestDateColumn(t *testing.T) {
	got := dateColumn("s.date", "date")
	if got != "to_char(s.date, 'YYYY-MM-DD') AS date" {
		t.Fatalf("unexpected column: %s", got)
	}
}

func TestNullStringPtr(t *testing.T) {
	if got := nullStringPtr(sql.NullString{}); got != nil {
		t.Fatalf("expected nil for null, got %q", *got)
	}
	got := nullStringPtr(sql.NullString{String: "2026-10-16", Valid: true})
	if got == nil || *got != "2026-10-16" {
		t.Fatalf("unexpected value: %v", got)
	}

	empty := ""
	if stringPtrToNull(&empty).Valid {
		t.Fatalf("expected empty string to map to NULL")
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
