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

// MongoCustomerRepository defines the interface for document-store customers.
type MongoCustomerRepository interface {
	GetAll(ctx context.Context) ([]models.MongoCustomer, error)
	GetByID(ctx context.Context, id string) (*models.MongoCustomer, error)
	Create(ctx context.Context, customer *models.MongoCustomer) error
	Update(ctx context.Context, customer *models.MongoCustomer) error
	Delete(ctx context.Context, id string) error
}

type mongoCustomerRepository struct {
	collection *mongo.Collection
}

// NewMongoCustomerRepository creates a customer repository over the given
// collection.
func NewMongoCustomerRepository(collection *mongo.Collection) MongoCustomerRepository {
	return &mongoCustomerRepository{collection: collection}
}

func (r *mongoCustomerRepository) GetAll(ctx context.Context) ([]models.MongoCustomer, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer cursor.Close(ctx)

	var customers []models.MongoCustomer
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, fmt.Errorf("failed to decode customers: %w", err)
	}
	return customers, nil
}

func (r *mongoCustomerRepository) GetByID(ctx context.Context, id string) (*models.MongoCustomer, error) {
	var customer models.MongoCustomer
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&customer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{Entity: EntityCustomer, ID: id}
		}
		return nil, fmt.Errorf("failed to get customer %s: %w", id, err)
	}
	return &customer, nil
}

func (r *mongoCustomerRepository) Create(ctx context.Context, customer *models.MongoCustomer) error {
	now := time.Now()
	if customer.ID == "" {
		customer.ID = primitive.NewObjectID().Hex()
	}
	customer.CreatedAt = now
	customer.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, customer); err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (r *mongoCustomerRepository) Update(ctx context.Context, customer *models.MongoCustomer) error {
	customer.UpdatedAt = time.Now()

	filter := bson.M{"_id": customer.ID}
	update := bson.M{"$set": bson.M{
		"name":       customer.Name,
		"email":      customer.Email,
		"city":       customer.City,
		"updated_at": customer.UpdatedAt,
	}}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update customer %s: %w", customer.ID, err)
	}
	if res.MatchedCount == 0 {
		return &NotFoundError{Entity: EntityCustomer, ID: customer.ID}
	}
	return nil
}

func (r *mongoCustomerRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete customer %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return &NotFoundError{Entity: EntityCustomer, ID: id}
	}
	return nil
}
