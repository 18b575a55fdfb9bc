package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/models"
	"storefront/internal/services"
)

// MockFeedbackRepo is a testify mock of repositories.FeedbackRepository.
type MockFeedbackRepo struct {
	mock.Mock
}

func (m *MockFeedbackRepo) GetAll(ctx context.Context) ([]models.Feedback, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Feedback), args.Error(1)
}

func (m *MockFeedbackRepo) GetByID(ctx context.Context, id string) (*models.Feedback, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Feedback), args.Error(1)
}

func (m *MockFeedbackRepo) Create(ctx context.Context, feedback *models.Feedback) error {
	args := m.Called(ctx, feedback)
	return args.Error(0)
}

func (m *MockFeedbackRepo) Update(ctx context.Context, feedback *models.Feedback) error {
	args := m.Called(ctx, feedback)
	return args.Error(0)
}

func (m *MockFeedbackRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFeedbackRepo) FindByCustomer(ctx context.Context, customer string) ([]models.Feedback, error) {
	args := m.Called(ctx, customer)
	return args.Get(0).([]models.Feedback), args.Error(1)
}

func (m *MockFeedbackRepo) FindByDate(ctx context.Context, day time.Time) ([]models.Feedback, error) {
	args := m.Called(ctx, day)
	return args.Get(0).([]models.Feedback), args.Error(1)
}

func (m *MockFeedbackRepo) FindWithMinRating(ctx context.Context, minRating int) ([]models.Feedback, error) {
	args := m.Called(ctx, minRating)
	return args.Get(0).([]models.Feedback), args.Error(1)
}

func (m *MockFeedbackRepo) FindByCity(ctx context.Context, city string) ([]models.Feedback, error) {
	args := m.Called(ctx, city)
	return args.Get(0).([]models.Feedback), args.Error(1)
}

func (m *MockFeedbackRepo) AverageRatingPerCustomer(ctx context.Context) ([]models.CustomerRating, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.CustomerRating), args.Error(1)
}

func (m *MockFeedbackRepo) CountByCity(ctx context.Context) ([]models.CityFeedbackCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.CityFeedbackCount), args.Error(1)
}

func TestFeedbackService_CreateFeedback_DefaultsDate(t *testing.T) {
	repo := new(MockFeedbackRepo)
	service := services.NewFeedbackService(repo)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Feedback")).Return(nil).Once()

	feedback := &models.Feedback{Customer: "Alice", Rating: 5, Comment: "Great service"}
	require.NoError(t, service.CreateFeedback(context.Background(), feedback))

	assert.False(t, feedback.Date.IsZero())
	repo.AssertExpectations(t)
}

func TestFeedbackService_CreateFeedback_KeepsExplicitDate(t *testing.T) {
	repo := new(MockFeedbackRepo)
	service := services.NewFeedbackService(repo)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Feedback")).Return(nil).Once()

	given := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	feedback := &models.Feedback{Customer: "Bob", Rating: 3, Date: given}
	require.NoError(t, service.CreateFeedback(context.Background(), feedback))

	assert.True(t, feedback.Date.Equal(given))
}

func TestFeedbackService_Filters(t *testing.T) {
	repo := new(MockFeedbackRepo)
	service := services.NewFeedbackService(repo)

	byCustomer := []models.Feedback{{ID: "a", Customer: "Alice", Rating: 5}}
	repo.On("FindByCustomer", mock.Anything, "Alice").Return(byCustomer, nil).Once()
	got, err := service.FeedbackByCustomer(context.Background(), "Alice")
	require.NoError(t, err)
	assert.Equal(t, byCustomer, got)

	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	repo.On("FindByDate", mock.Anything, day).Return([]models.Feedback{}, nil).Once()
	_, err = service.FeedbackByDate(context.Background(), day)
	require.NoError(t, err)

	byCity := []models.Feedback{{ID: "b", Customer: "Bob", Rating: 2}}
	repo.On("FindByCity", mock.Anything, "Berlin").Return(byCity, nil).Once()
	got, err = service.FeedbackFromCity(context.Background(), "Berlin")
	require.NoError(t, err)
	assert.Equal(t, byCity, got)

	repo.AssertExpectations(t)
}

func TestFeedbackService_TopRatedFeedback_UsesFourAsFloor(t *testing.T) {
	repo := new(MockFeedbackRepo)
	service := services.NewFeedbackService(repo)

	top := []models.Feedback{{ID: "a", Customer: "Alice", Rating: 4}}
	repo.On("FindWithMinRating", mock.Anything, 4).Return(top, nil).Once()

	got, err := service.TopRatedFeedback(context.Background())
	require.NoError(t, err)
	assert.Equal(t, top, got)
	repo.AssertExpectations(t)
}

func TestFeedbackService_Reports(t *testing.T) {
	repo := new(MockFeedbackRepo)
	service := services.NewFeedbackService(repo)

	ratings := []models.CustomerRating{{Customer: "Alice", AvgRating: 4.5, Count: 2}}
	counts := []models.CityFeedbackCount{{City: "Berlin", Count: 3}}
	repo.On("AverageRatingPerCustomer", mock.Anything).Return(ratings, nil).Once()
	repo.On("CountByCity", mock.Anything).Return(counts, nil).Once()

	gotRatings, err := service.AverageRatingPerCustomer(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ratings, gotRatings)

	gotCounts, err := service.CountByCity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, counts, gotCounts)

	repo.AssertExpectations(t)
}
