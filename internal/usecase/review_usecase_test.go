package usecase

import (
	"context"
	"strings"
	"testing"

	"shopapi/internal/domain/model"
	repo "shopapi/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// Mock: ReviewRepository
// =====================

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) List(ctx context.Context, q repo.ReviewListQuery) ([]model.Review, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Review)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) FindByID(ctx context.Context, id int64) (*model.Review, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*model.Review)
	return r, args.Error(1)
}

func (m *MockReviewRepository) Create(ctx context.Context, r *model.Review) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReviewRepository) Update(ctx context.Context, id int64, upd repo.ReviewUpdate) (*model.Review, error) {
	args := m.Called(ctx, id, upd)
	r, _ := args.Get(0).(*model.Review)
	return r, args.Error(1)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func intPtr(i int) *int { return &i }

// =====================
// list
// =====================

func TestReviewList_DefaultsAndPagination(t *testing.T) {
	reviews := new(MockReviewRepository)
	u := NewReviewUsecase(reviews)

	productID := int64(3)
	reviews.On("List", mock.Anything, repo.ReviewListQuery{Page: 1, PageSize: 10, ProductID: &productID}).
		Return([]model.Review{{ID: 1, ProductID: 3, Rating: 5}}, int64(11), nil)

	out, err := u.List(context.Background(), ListReviewsInput{ProductID: &productID})
	require.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, int64(2), out.Pagination.TotalPages)
	reviews.AssertExpectations(t)
}

func TestReviewList_Validation(t *testing.T) {
	u := NewReviewUsecase(new(MockReviewRepository))
	zero := int64(0)

	tests := []struct {
		name string
		in   ListReviewsInput
	}{
		{name: "negative page", in: ListReviewsInput{Page: -1}},
		{name: "page size too big", in: ListReviewsInput{PageSize: 101}},
		{name: "non-positive product", in: ListReviewsInput{ProductID: &zero}},
		{name: "rating below range", in: ListReviewsInput{MinRating: intPtr(0)}},
		{name: "rating above range", in: ListReviewsInput{MaxRating: intPtr(6)}},
		{name: "min > max", in: ListReviewsInput{MinRating: intPtr(4), MaxRating: intPtr(2)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := u.List(context.Background(), tt.in)
			assert.Equal(t, KindValidation, KindOf(err))
		})
	}
}

func TestReviewGet_NotFound(t *testing.T) {
	reviews := new(MockReviewRepository)
	u := NewReviewUsecase(reviews)

	reviews.On("FindByID", mock.Anything, int64(9)).Return(nil, repo.ErrNotFound)

	_, err := u.Get(context.Background(), 9)
	ae, ok := AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, ae.Kind)
	assert.Equal(t, "review not found", ae.Message)
}

// =====================
// create
// =====================

func TestReviewCreate_AuthorFromCaller(t *testing.T) {
	reviews := new(MockReviewRepository)
	u := NewReviewUsecase(reviews)

	reviews.On("Create", mock.Anything, mock.MatchedBy(func(r *model.Review) bool {
		return r.CustomerID == 7 && r.ProductID == 3 && r.Rating == 4 &&
			r.Comment != nil && *r.Comment == "nice"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Review).ID = 20
	}).Return(nil)

	comment := "  nice "
	r, err := u.Create(context.Background(), CreateReviewInput{CustomerID: 7, ProductID: 3, Rating: 4, Comment: &comment})
	require.NoError(t, err)
	assert.Equal(t, int64(20), r.ID)
	reviews.AssertExpectations(t)
}

func TestReviewCreate_BlankCommentStoredAsNull(t *testing.T) {
	reviews := new(MockReviewRepository)
	u := NewReviewUsecase(reviews)

	reviews.On("Create", mock.Anything, mock.MatchedBy(func(r *model.Review) bool {
		return r.Comment == nil
	})).Return(nil)

	blank := "   "
	_, err := u.Create(context.Background(), CreateReviewInput{CustomerID: 7, ProductID: 3, Rating: 2, Comment: &blank})
	require.NoError(t, err)
	reviews.AssertExpectations(t)
}

func TestReviewCreate_UnknownProductIsBadRequest(t *testing.T) {
	reviews := new(MockReviewRepository)
	u := NewReviewUsecase(reviews)

	reviews.On("Create", mock.Anything, mock.Anything).Return(repo.ErrForeignKey)

	_, err := u.Create(context.Background(), CreateReviewInput{CustomerID: 7, ProductID: 404, Rating: 3})
	ae, ok := AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, KindValidation, ae.Kind)
	assert.Equal(t, "product does not exist", ae.Message)
}

func TestReviewCreate_RejectsBadInput(t *testing.T) {
	u := NewReviewUsecase(new(MockReviewRepository))
	long := strings.Repeat("あ", 501)

	tests := []struct {
		name string
		in   CreateReviewInput
		kind Kind
	}{
		{name: "no caller", in: CreateReviewInput{ProductID: 1, Rating: 3}, kind: KindUnauthorized},
		{name: "no product", in: CreateReviewInput{CustomerID: 7, Rating: 3}, kind: KindValidation},
		{name: "rating zero", in: CreateReviewInput{CustomerID: 7, ProductID: 1}, kind: KindValidation},
		{name: "rating six", in: CreateReviewInput{CustomerID: 7, ProductID: 1, Rating: 6}, kind: KindValidation},
		{name: "comment too long", in: CreateReviewInput{CustomerID: 7, ProductID: 1, Rating: 3, Comment: &long}, kind: KindValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := u.Create(context.Background(), tt.in)
			assert.Equal(t, tt.kind, KindOf(err))
		})
	}
}

// =====================
// update / delete
// =====================

func TestReviewUpdate_ByAuthor(t *testing.T) {
	reviews := new(MockReviewRepository)
	u := NewReviewUsecase(reviews)

	reviews.On("FindByID", mock.Anything, int64(5)).Return(&model.Review{ID: 5, CustomerID: 7}, nil)
	reviews.On("Update", mock.Anything, int64(5), repo.ReviewUpdate{Rating: intPtr(2), ClearComment: true}).
		Return(&model.Review{ID: 5, CustomerID: 7, Rating: 2}, nil)

	empty := ""
	r, err := u.Update(context.Background(), 7, 5, UpdateReviewInput{Rating: intPtr(2), Comment: &empty})
	require.NoError(t, err)
	assert.Equal(t, 2, r.Rating)
	reviews.AssertExpectations(t)
}

func TestReviewUpdate_OtherCustomerIsForbidden(t *testing.T) {
	reviews := new(MockReviewRepository)
	u := NewReviewUsecase(reviews)

	reviews.On("FindByID", mock.Anything, int64(5)).Return(&model.Review{ID: 5, CustomerID: 8}, nil)

	_, err := u.Update(context.Background(), 7, 5, UpdateReviewInput{Rating: intPtr(1)})
	assert.Equal(t, KindForbidden, KindOf(err))
	reviews.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewUpdate_BadRatingSkipsLookup(t *testing.T) {
	reviews := new(MockReviewRepository)
	u := NewReviewUsecase(reviews)

	_, err := u.Update(context.Background(), 7, 5, UpdateReviewInput{Rating: intPtr(9)})
	assert.Equal(t, KindValidation, KindOf(err))
	reviews.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestReviewDelete(t *testing.T) {
	reviews := new(MockReviewRepository)
	u := NewReviewUsecase(reviews)

	reviews.On("FindByID", mock.Anything, int64(5)).Return(&model.Review{ID: 5, CustomerID: 7}, nil)
	reviews.On("Delete", mock.Anything, int64(5)).Return(nil)
	require.NoError(t, u.Delete(context.Background(), 7, 5))

	reviews.On("FindByID", mock.Anything, int64(6)).Return(nil, repo.ErrNotFound)
	assert.Equal(t, KindNotFound, KindOf(u.Delete(context.Background(), 7, 6)))

	reviews.On("FindByID", mock.Anything, int64(8)).Return(&model.Review{ID: 8, CustomerID: 1}, nil)
	assert.Equal(t, KindForbidden, KindOf(u.Delete(context.Background(), 7, 8)))
	reviews.AssertNotCalled(t, "Delete", mock.Anything, int64(8))
}
