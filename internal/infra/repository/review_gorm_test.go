package repository

import (
	"context"
	"testing"
	"time"

	"shopapi/internal/domain/model"
	repo "shopapi/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reviewColumns = []string{"id", "product_id", "customer_id", "rating", "comment", "created_at", "updated_at"}

func TestReviewGorm_List_FiltersNewestFirst(t *testing.T) {
	gdb, mock := newMockDB(t)
	r := NewReviewGormRepository(gdb)

	now := time.Now()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "reviews" WHERE product_id = \$1 AND rating >= \$2`).
		WithArgs(int64(3), int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(12)))
	mock.ExpectQuery(`SELECT \* FROM "reviews" WHERE product_id = \$1 AND rating >= \$2 ORDER BY created_at desc,id desc LIMIT`).
		WillReturnRows(sqlmock.NewRows(reviewColumns).
			AddRow(int64(9), int64(3), int64(7), 5, "great", now, now).
			AddRow(int64(8), int64(3), int64(2), 4, nil, now.Add(-time.Hour), now))

	productID := int64(3)
	atLeast := 4
	reviews, total, err := r.List(context.Background(), repo.ReviewListQuery{
		Page: 2, PageSize: 10, ProductID: &productID, MinRating: &atLeast,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	require.Len(t, reviews, 2)
	assert.Equal(t, int64(9), reviews[0].ID)
	require.NotNil(t, reviews[0].Comment)
	assert.Equal(t, "great", *reviews[0].Comment)
	assert.Nil(t, reviews[1].Comment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewGorm_Create_UnknownProduct(t *testing.T) {
	gdb, mock := newMockDB(t)
	r := NewReviewGormRepository(gdb)

	mock.ExpectQuery(`INSERT INTO "reviews"`).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := r.Create(context.Background(), &model.Review{ProductID: 404, CustomerID: 7, Rating: 3})
	assert.ErrorIs(t, err, repo.ErrForeignKey)
}

func TestReviewGorm_FindByID_NotFound(t *testing.T) {
	gdb, mock := newMockDB(t)
	r := NewReviewGormRepository(gdb)

	mock.ExpectQuery(`SELECT \* FROM "reviews" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(reviewColumns))

	_, err := r.FindByID(context.Background(), 1)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestReviewGorm_Update_ClearCommentWritesNull(t *testing.T) {
	gdb, mock := newMockDB(t)
	r := NewReviewGormRepository(gdb)

	now := time.Now()
	mock.ExpectExec(`UPDATE "reviews" SET "comment"=\$1`).
		WithArgs(nil, sqlmock.AnyArg(), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "reviews" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(reviewColumns).AddRow(int64(1), int64(3), int64(7), 4, nil, now, now))

	rv, err := r.Update(context.Background(), 1, repo.ReviewUpdate{ClearComment: true})
	require.NoError(t, err)
	assert.Nil(t, rv.Comment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewGorm_Delete_Missing(t *testing.T) {
	gdb, mock := newMockDB(t)
	r := NewReviewGormRepository(gdb)

	mock.ExpectExec(`DELETE FROM "reviews" WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := r.Delete(context.Background(), 5)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}
