package services

import (
	"context"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// FeedbackService handles customer feedback documents and the aggregation
// reports built over them.
type FeedbackService struct {
	repo repositories.FeedbackRepository
}

// NewFeedbackService creates a new FeedbackService.
func NewFeedbackService(repo repositories.FeedbackRepository) *FeedbackService {
	return &FeedbackService{repo: repo}
}

// GetAllFeedback retrieves all feedback documents.
func (s *FeedbackService) GetAllFeedback(ctx context.Context) ([]models.Feedback, error) {
	return s.repo.GetAll(ctx)
}

// GetFeedbackByID retrieves a single feedback document by its ID.
func (s *FeedbackService) GetFeedbackByID(ctx context.Context, id string) (*models.Feedback, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateFeedback stores a new feedback document, defaulting the date to
// today when unset.
func (s *FeedbackService) CreateFeedback(ctx context.Context, feedback *models.Feedback) error {
	if feedback.Date.IsZero() {
		feedback.Date = time.Now()
	}
	return s.repo.Create(ctx, feedback)
}

// UpdateFeedback updates an existing feedback document.
func (s *FeedbackService) UpdateFeedback(ctx context.Context, feedback *models.Feedback) error {
	return s.repo.Update(ctx, feedback)
}

// DeleteFeedback deletes a feedback document by its ID.
func (s *FeedbackService) DeleteFeedback(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// FeedbackByCustomer retrieves all feedback left by the given customer.
func (s *FeedbackService) FeedbackByCustomer(ctx context.Context, customer string) ([]models.Feedback, error) {
	return s.repo.FindByCustomer(ctx, customer)
}

// FeedbackByDate retrieves all feedback dated within the given calendar day.
func (s *FeedbackService) FeedbackByDate(ctx context.Context, day time.Time) ([]models.Feedback, error) {
	return s.repo.FindByDate(ctx, day)
}

// TopRatedFeedback retrieves all feedback rated 4 or higher.
func (s *FeedbackService) TopRatedFeedback(ctx context.Context) ([]models.Feedback, error) {
	return s.repo.FindWithMinRating(ctx, 4)
}

// FeedbackFromCity retrieves feedback left by customers in the given city.
func (s *FeedbackService) FeedbackFromCity(ctx context.Context, city string) ([]models.Feedback, error) {
	return s.repo.FindByCity(ctx, city)
}

// AverageRatingPerCustomer reports the average rating each customer has given.
func (s *FeedbackService) AverageRatingPerCustomer(ctx context.Context) ([]models.CustomerRating, error) {
	return s.repo.AverageRatingPerCustomer(ctx)
}

// CountByCity reports how many feedback entries came from each customer city.
func (s *FeedbackService) CountByCity(ctx context.Context) ([]models.CityFeedbackCount, error) {
	return s.repo.CountByCity(ctx)
}
