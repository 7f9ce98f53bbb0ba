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

type ToiletRepository struct {
	collection *mongo.Collection
}

func NewToiletRepository(db *mongo.Database) *ToiletRepository {
	return &ToiletRepository{
		collection: db.Collection("toilets"),
	}
}

func (r *ToiletRepository) Create(toilet *models.Toilet) (*models.Toilet, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	toilet.CreatedAt = time.Now()
	toilet.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, toilet)
	if err != nil {
		return nil, err
	}

	toilet.ID = result.InsertedID.(primitive.ObjectID)
	return toilet, nil
}

func (r *ToiletRepository) FindByID(id string) (*models.Toilet, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New("invalid toilet ID")
	}

	var toilet models.Toilet
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&toilet)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("toilet not found")
		}
		return nil, err
	}

	return &toilet, nil
}

func (r *ToiletRepository) FindAll(limit int64) ([]*models.Toilet, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeToilets(ctx, cursor)
}

// FindInRadius performs a bounding-box lookup around a point. Degrees per km
// approximation; precise geo queries would need a 2dsphere index.
func (r *ToiletRepository) FindInRadius(lat, lng, radiusKm float64) ([]*models.Toilet, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	latRange := radiusKm / 111.0
	lngRange := radiusKm / (111.0 * 0.7)

	filter := bson.M{
		"location.lat": bson.M{
			"$gte": lat - latRange,
			"$lte": lat + latRange,
		},
		"location.lng": bson.M{
			"$gte": lng - lngRange,
			"$lte": lng + lngRange,
		},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeToilets(ctx, cursor)
}

func decodeToilets(ctx context.Context, cursor *mongo.Cursor) ([]*models.Toilet, error) {
	var toilets []*models.Toilet
	for cursor.Next(ctx) {
		var toilet models.Toilet
		if err := cursor.Decode(&toilet); err != nil {
			return nil, err
		}
		toilets = append(toilets, &toilet)
	}
	return toilets, nil
}

// UpdateRating stores the recomputed review aggregate on the toilet document.
func (r *ToiletRepository) UpdateRating(id string, average float64, numReviews int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.New("invalid toilet ID")
	}

	update := bson.M{
		"$set": bson.M{
			"average_rating": average,
			"num_reviews":    numReviews,
			"updated_at":     time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return errors.New("toilet not found")
	}

	return nil
}

func (r *ToiletRepository) Count() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return r.collection.CountDocuments(ctx, bson.M{})
}

// AverageRatingAcrossAll reports the mean of the per-toilet average ratings.
func (r *ToiletRepository) AverageRatingAcrossAll() (float64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pipeline := []bson.M{
		{"$group": bson.M{
			"_id": nil,
			"avg": bson.M{"$avg": "$average_rating"},
		}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var result struct {
		Avg float64 `bson:"avg"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&result); err != nil {
			return 0, err
		}
	}

	return result.Avg, nil
}
