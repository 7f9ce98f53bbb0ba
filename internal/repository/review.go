package repository

import (
	"context"
	"errors"
	"time"

	"civicpulse-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReviewRepository struct {
	collection *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{
		collection: db.Collection("reviews"),
	}
}

func (r *ReviewRepository) Create(review *models.Review) (*models.Review, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	review.CreatedAt = time.Now()
	review.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, review)
	if err != nil {
		return nil, err
	}

	review.ID = result.InsertedID.(primitive.ObjectID)
	return review, nil
}

// FindByUserAndToilet checks whether the user already reviewed the toilet.
func (r *ReviewRepository) FindByUserAndToilet(userID, toiletID primitive.ObjectID) (*models.Review, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var review models.Review
	err := r.collection.FindOne(ctx, bson.M{
		"user_id":   userID,
		"toilet_id": toiletID,
	}).Decode(&review)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("review not found")
		}
		return nil, err
	}

	return &review, nil
}

func (r *ReviewRepository) FindByToilet(toiletID string) ([]*models.Review, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(toiletID)
	if err != nil {
		return nil, errors.New("invalid toilet ID")
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"toilet_id": objectID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []*models.Review
	for cursor.Next(ctx) {
		var review models.Review
		if err := cursor.Decode(&review); err != nil {
			return nil, err
		}
		reviews = append(reviews, &review)
	}

	return reviews, nil
}

// RatingAggregate recomputes the average rating and review count for a
// toilet from its review documents.
func (r *ReviewRepository) RatingAggregate(toiletID primitive.ObjectID) (float64, int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pipeline := []bson.M{
		{"$match": bson.M{"toilet_id": toiletID}},
		{"$group": bson.M{
			"_id":     "$toilet_id",
			"average": bson.M{"$avg": "$rating"},
			"count":   bson.M{"$sum": 1},
		}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, err
	}
	defer cursor.Close(ctx)

	var result struct {
		Average float64 `bson:"average"`
		Count   int     `bson:"count"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&result); err != nil {
			return 0, 0, err
		}
	}

	return result.Average, result.Count, nil
}
