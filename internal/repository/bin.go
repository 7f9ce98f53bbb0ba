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

type BinRepository struct {
	collection *mongo.Collection
}

func NewBinRepository(db *mongo.Database) *BinRepository {
	return &BinRepository{
		collection: db.Collection("bins"),
	}
}

func (r *BinRepository) Create(bin *models.Bin) (*models.Bin, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	bin.CreatedAt = time.Now()
	bin.UpdatedAt = time.Now()
	if bin.LastEmptied.IsZero() {
		bin.LastEmptied = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, bin)
	if err != nil {
		return nil, err
	}

	bin.ID = result.InsertedID.(primitive.ObjectID)
	return bin, nil
}

func (r *BinRepository) FindByID(id string) (*models.Bin, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New("invalid bin ID")
	}

	var bin models.Bin
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&bin)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("bin not found")
		}
		return nil, err
	}

	return &bin, nil
}

func (r *BinRepository) FindByCode(code string) (*models.Bin, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var bin models.Bin
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&bin)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("bin not found")
		}
		return nil, err
	}

	return &bin, nil
}

func (r *BinRepository) FindAll() ([]*models.Bin, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "code", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bins []*models.Bin
	for cursor.Next(ctx) {
		var bin models.Bin
		if err := cursor.Decode(&bin); err != nil {
			return nil, err
		}
		bins = append(bins, &bin)
	}

	return bins, nil
}

// UpdateFill persists a new fill level and status for a bin.
func (r *BinRepository) UpdateFill(id string, fillLevel int, status string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.New("invalid bin ID")
	}

	update := bson.M{
		"$set": bson.M{
			"fill_level": fillLevel,
			"status":     status,
			"updated_at": time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return errors.New("bin not found")
	}

	return nil
}

// Empty resets a bin after collection: level zero, Normal status, fresh
// lastEmptied stamp. This is the only transition out of Critical.
func (r *BinRepository) Empty(id string) (*models.Bin, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New("invalid bin ID")
	}

	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"fill_level":   0,
			"status":       models.BinStatusNormal,
			"last_emptied": now,
			"updated_at":   now,
		},
	}

	result := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var bin models.Bin
	if err := result.Decode(&bin); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("bin not found")
		}
		return nil, err
	}

	return &bin, nil
}

func (r *BinRepository) Count() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return r.collection.CountDocuments(ctx, bson.M{})
}
