package httperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestBusinessCodeUnwraps(t *testing.T) {
	err := fmt.Errorf("create: %w", ErrBusiness("time_conflict"))

	if !IsBusiness(err, "time_conflict") {
		t.Error("expected wrapped business error to match")
	}
	code, ok := BusinessCode(err)
	if !ok || code != "time_conflict" {
		t.Errorf("unexpected code %q %v", code, ok)
	}
	if _, ok := BusinessCode(errors.New("boom")); ok {
		t.Error("plain errors carry no business code")
	}
}

func TestPgViolations(t *testing.T) {
	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	if !IsUniqueViolation(dup) {
		t.Error("unique violation not detected")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23P01"}) {
		t.Error("other constraint errors are not unique violations")
	}
}
