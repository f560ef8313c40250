package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestRecordFilterWhereClause(t *testing.T) {
	won := false
	name := "shield"

	tests := []struct {
		name   string
		filter RecordFilter
		clause string
		args   pgx.NamedArgs
	}{
		{"empty", RecordFilter{}, "", pgx.NamedArgs{}},
		{"won", RecordFilter{Won: &won}, "won = @won", pgx.NamedArgs{"won": false}},
		{
			"won and layout",
			RecordFilter{Won: &won, Layout: &name, Limit: 5},
			"won = @won AND layout = @layout",
			pgx.NamedArgs{"won": false, "layout": "shield"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, args := tt.filter.WhereClause()
			assert.Equal(t, tt.clause, clause)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	assert.True(t, isUniqueViolation(unique))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", unique)))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: pgerrcode.NotNullViolation}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
	assert.False(t, isUniqueViolation(nil))
}
