package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/models"
)

// FeedbackRepository defines the interface for feedback documents and the
// aggregation reports built over them.
type FeedbackRepository interface {
	GetAll(ctx context.Context) ([]models.Feedback, error)
	GetByID(ctx context.Context, id string) (*models.Feedback, error)
	Create(ctx context.Context, feedback *models.Feedback) error
	Update(ctx context.Context, feedback *models.Feedback) error
	Delete(ctx context.Context, id string) error
	FindByCustomer(ctx context.Context, customer string) ([]models.Feedback, error)
	// FindByDate matches every entry dated within the given calendar day (UTC).
	FindByDate(ctx context.Context, day time.Time) ([]models.Feedback, error)
	FindWithMinRating(ctx context.Context, minRating int) ([]models.Feedback, error)
	// FindByCity returns feedback left by customers living in the given city.
	FindByCity(ctx context.Context, city string) ([]models.Feedback, error)
	AverageRatingPerCustomer(ctx context.Context) ([]models.CustomerRating, error)
	CountByCity(ctx context.Context) ([]models.CityFeedbackCount, error)
}

type mongoFeedbackRepository struct {
	collection          *mongo.Collection
	customersCollection string
}

// NewMongoFeedbackRepository creates a feedback repository over the given
// collection. customersCollection names the sibling customer collection used
// by the per-city report's lookup stage.
func NewMongoFeedbackRepository(collection *mongo.Collection, customersCollection string) FeedbackRepository {
	return &mongoFeedbackRepository{
		collection:          collection,
		customersCollection: customersCollection,
	}
}

func (r *mongoFeedbackRepository) GetAll(ctx context.Context) ([]models.Feedback, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer cursor.Close(ctx)

	var feedbacks []models.Feedback
	if err := cursor.All(ctx, &feedbacks); err != nil {
		return nil, fmt.Errorf("failed to decode feedback: %w", err)
	}
	return feedbacks, nil
}

func (r *mongoFeedbackRepository) GetByID(ctx context.Context, id string) (*models.Feedback, error) {
	var feedback models.Feedback
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&feedback)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{Entity: EntityFeedback, ID: id}
		}
		return nil, fmt.Errorf("failed to get feedback %s: %w", id, err)
	}
	return &feedback, nil
}

func (r *mongoFeedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	if feedback.ID == "" {
		feedback.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.collection.InsertOne(ctx, feedback); err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

func (r *mongoFeedbackRepository) Update(ctx context.Context, feedback *models.Feedback) error {
	filter := bson.M{"_id": feedback.ID}
	update := bson.M{"$set": bson.M{
		"customer": feedback.Customer,
		"rating":   feedback.Rating,
		"comment":  feedback.Comment,
		"date":     feedback.Date,
	}}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update feedback %s: %w", feedback.ID, err)
	}
	if res.MatchedCount == 0 {
		return &NotFoundError{Entity: EntityFeedback, ID: feedback.ID}
	}
	return nil
}

func (r *mongoFeedbackRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete feedback %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return &NotFoundError{Entity: EntityFeedback, ID: id}
	}
	return nil
}

func (r *mongoFeedbackRepository) findFiltered(ctx context.Context, filter bson.M, what string) ([]models.Feedback, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find feedback %s: %w", what, err)
	}
	defer cursor.Close(ctx)

	var feedbacks []models.Feedback
	if err := cursor.All(ctx, &feedbacks); err != nil {
		return nil, fmt.Errorf("failed to decode feedback %s: %w", what, err)
	}
	return feedbacks, nil
}

func (r *mongoFeedbackRepository) FindByCustomer(ctx context.Context, customer string) ([]models.Feedback, error) {
	return r.findFiltered(ctx, bson.M{"customer": customer}, "by customer")
}

// FindByDate matches entries from the given calendar day in UTC.
func (r *mongoFeedbackRepository) FindByDate(ctx context.Context, day time.Time) ([]models.Feedback, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)
	return r.findFiltered(ctx, bson.M{"date": bson.M{"$gte": start, "$lt": end}}, "by date")
}

func (r *mongoFeedbackRepository) FindWithMinRating(ctx context.Context, minRating int) ([]models.Feedback, error) {
	return r.findFiltered(ctx, bson.M{"rating": bson.M{"$gte": minRating}}, "by rating")
}

// FindByCity joins feedback to the customer collection on the customer name
// and keeps the entries whose customer lives in the given city.
func (r *mongoFeedbackRepository) FindByCity(ctx context.Context, city string) ([]models.Feedback, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         r.customersCollection,
			"localField":   "customer",
			"foreignField": "name",
			"as":           "customer_doc",
		}}},
		{{Key: "$unwind", Value: "$customer_doc"}},
		{{Key: "$match", Value: bson.M{"customer_doc.city": city}}},
		{{Key: "$project", Value: bson.M{"customer_doc": 0}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to find feedback by city: %w", err)
	}
	defer cursor.Close(ctx)

	var feedbacks []models.Feedback
	if err := cursor.All(ctx, &feedbacks); err != nil {
		return nil, fmt.Errorf("failed to decode feedback by city: %w", err)
	}
	return feedbacks, nil
}

// AverageRatingPerCustomer groups feedback by customer name and averages the
// ratings.
func (r *mongoFeedbackRepository) AverageRatingPerCustomer(ctx context.Context) ([]models.CustomerRating, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":        "$customer",
			"avg_rating": bson.M{"$avg": "$rating"},
			"count":      bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"avg_rating": -1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var ratings []models.CustomerRating
	if err := cursor.All(ctx, &ratings); err != nil {
		return nil, fmt.Errorf("failed to decode rating report: %w", err)
	}
	return ratings, nil
}

// CountByCity joins feedback to the customer collection on the customer name
// and counts entries per city.
func (r *mongoFeedbackRepository) CountByCity(ctx context.Context) ([]models.CityFeedbackCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         r.customersCollection,
			"localField":   "customer",
			"foreignField": "name",
			"as":           "customer_doc",
		}}},
		{{Key: "$unwind", Value: "$customer_doc"}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$customer_doc.city",
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate feedback by city: %w", err)
	}
	defer cursor.Close(ctx)

	var counts []models.CityFeedbackCount
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("failed to decode city report: %w", err)
	}
	return counts, nil
}
