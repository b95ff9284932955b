package reviews_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/meal-planner/internal/models"
	"github.com/magabrotheeeer/meal-planner/internal/services/reviews"
)

type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) CreateReview(ctx context.Context, review *models.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *RepoMock) GetReview(ctx context.Context, reviewID int) (*models.Review, error) {
	args := m.Called(ctx, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *RepoMock) ListReviews(ctx context.Context, externalID string, limit, offset int) ([]*models.Review, error) {
	args := m.Called(ctx, externalID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Review), args.Error(1)
}

func (m *RepoMock) DeleteReview(ctx context.Context, userUID string, reviewID int) error {
	return m.Called(ctx, userUID, reviewID).Error(0)
}

func TestService_Create(t *testing.T) {
	tests := []struct {
		name    string
		req     models.ReviewRequest
		wantErr error
	}{
		{name: "valid", req: models.ReviewRequest{RecipeID: "52772", Rating: 5, Comment: " tasty "}},
		{name: "rating too low", req: models.ReviewRequest{RecipeID: "52772", Rating: 0}, wantErr: models.ErrValidation},
		{name: "rating too high", req: models.ReviewRequest{RecipeID: "52772", Rating: 6}, wantErr: models.ErrValidation},
		{name: "no recipe", req: models.ReviewRequest{RecipeID: " ", Rating: 3}, wantErr: models.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			if tt.wantErr == nil {
				repo.On("CreateReview", mock.Anything, &models.Review{
					UserUID: "uid-1", ExternalID: "52772", Rating: 5, Comment: "tasty",
				}).Return(nil).Once()
			}
			got, err := reviews.New(repo).Create(context.Background(), "uid-1", tt.req)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "tasty", got.Comment)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_ListAndRemove(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListReviews", mock.Anything, "52772", 20, 0).Return([]*models.Review{{ID: 1}, {ID: 2}}, nil).Once()
	repo.On("DeleteReview", mock.Anything, "uid-2", 1).Return(models.ErrNotFound).Once()
	svc := reviews.New(repo)

	list, err := svc.ListForRecipe(context.Background(), " 52772 ", 0, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	assert.True(t, errors.Is(svc.Remove(context.Background(), "uid-2", 1), models.ErrNotFound))
	repo.AssertExpectations(t)
}

func TestService_ListForRecipe_Paging(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListReviews", mock.Anything, "52772", 100, 40).Return([]*models.Review{}, nil).Once()
	svc := reviews.New(repo)

	_, err := svc.ListForRecipe(context.Background(), "52772", 500, 40)
	require.NoError(t, err)

	_, err = svc.ListForRecipe(context.Background(), "52772", 10, -1)
	assert.True(t, errors.Is(err, models.ErrValidation))
	repo.AssertExpectations(t)
}

func TestService_Get(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetReview", mock.Anything, 7).Return(&models.Review{ID: 7, Rating: 4}, nil).Once()
	repo.On("GetReview", mock.Anything, 8).Return(nil, models.ErrNotFound).Once()
	svc := reviews.New(repo)

	got, err := svc.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Rating)

	_, err = svc.Get(context.Background(), 8)
	assert.True(t, errors.Is(err, models.ErrNotFound))
	repo.AssertExpectations(t)
}
