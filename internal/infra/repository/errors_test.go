package repository

import (
	"errors"
	"fmt"
	"testing"

	repo "shopapi/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	other := errors.New("boom")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{name: "nil", in: nil, want: nil},
		{name: "not found", in: gorm.ErrRecordNotFound, want: repo.ErrNotFound},
		{name: "gorm duplicated", in: gorm.ErrDuplicatedKey, want: repo.ErrDuplicate},
		{name: "gorm fk", in: gorm.ErrForeignKeyViolated, want: repo.ErrForeignKey},
		{name: "raw unique", in: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), want: repo.ErrDuplicate},
		{name: "raw fk", in: &pgconn.PgError{Code: "23503"}, want: repo.ErrForeignKey},
		{name: "other pg", in: &pgconn.PgError{Code: "40001"}, want: nil},
		{name: "other", in: other, want: other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.in)
			if tt.want == nil && tt.in != nil {
				// 分類できないものはそのまま返る
				assert.Equal(t, tt.in, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}
