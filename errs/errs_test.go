package errs

import (
	"errors"
	"net/http"
	"testing"

	"gorm.io/gorm"
)

func TestApiErrUnwrap(t *testing.T) {
	err := Unauthorized
	if !errors.Is(err, ErrUnauthorized) {
		t.Error("Unauthorized does not unwrap to ErrUnauthorized")
	}
	if err.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d", err.StatusCode)
	}
}

func TestApiErrDetails(t *testing.T) {
	err := &ApiErr{StatusCode: 400, err: errors.New("bad input"), Details: "field x"}
	if got := err.Error(); got != "bad input: field x" {
		t.Errorf("Error() = %q", got)
	}
}

func TestGetFullErrorChainsCauses(t *testing.T) {
	inner := NewDatabaseError("find", "post", errors.New("connection refused"))
	if inner.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("connection error mapped to %d", inner.StatusCode)
	}
	full := inner.GetFullError()
	if full == "" || full == inner.Error() {
		t.Errorf("GetFullError did not include the cause: %q", full)
	}
}

func TestNewDatabaseErrorMapping(t *testing.T) {
	cases := []struct {
		cause error
		want  int
	}{
		{gorm.ErrRecordNotFound, http.StatusNotFound},
		{gorm.ErrDuplicatedKey, http.StatusConflict},
		{errors.New(`duplicate key value violates unique constraint "idx_posts_slug"`), http.StatusConflict},
		{errors.New(`insert or update on table "comments" violates foreign key constraint`), http.StatusBadRequest},
		{errors.New("something exploded"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		apiErr := NewDatabaseError("write", "post", tc.cause)
		if apiErr.StatusCode != tc.want {
			t.Errorf("NewDatabaseError(%v) status = %d, want %d", tc.cause, apiErr.StatusCode, tc.want)
		}
		if apiErr.Cause == nil {
			t.Errorf("NewDatabaseError(%v) lost its cause", tc.cause)
		}
	}
}

func TestNewValidationErrorCarriesField(t *testing.T) {
	apiErr := NewValidationError("content", "too short")
	if apiErr.Field != "content" {
		t.Errorf("Field = %q", apiErr.Field)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d", apiErr.StatusCode)
	}
}
