package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/catalogo-interno/internal/domain"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		code string
		want error
	}{
		{"unique", "23505", domain.ErrConflict},
		{"llave foránea", "23503", domain.ErrNotFound},
		{"check", "23514", domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapError("op", &pgconn.PgError{Code: tt.code})
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
	assert.NoError(t, mapError("op", nil))

	other := errors.New("boom")
	assert.ErrorIs(t, mapError("op", other), other)
}

func TestNullable(t *testing.T) {
	assert.Nil(t, nullable(""))
	v := nullable("x")
	if assert.NotNil(t, v) {
		assert.Equal(t, "x", *v)
	}
	assert.Equal(t, "", deref(nil))
	assert.Equal(t, "x", deref(v))
}

func TestNewID(t *testing.T) {
	assert.Equal(t, "fijo", newID("fijo"))
	assert.Len(t, newID(""), 36)
}
