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

type ComplaintRepository struct {
	collection *mongo.Collection
}

func NewComplaintRepository(db *mongo.Database) *ComplaintRepository {
	return &ComplaintRepository{
		collection: db.Collection("complaints"),
	}
}

func (r *ComplaintRepository) Create(complaint *models.Complaint) (*models.Complaint, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	complaint.CreatedAt = time.Now()
	complaint.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, complaint)
	if err != nil {
		return nil, err
	}

	complaint.ID = result.InsertedID.(primitive.ObjectID)
	return complaint, nil
}

func (r *ComplaintRepository) FindByID(id string) (*models.Complaint, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New("invalid complaint ID")
	}

	var complaint models.Complaint
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&complaint)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("complaint not found")
		}
		return nil, err
	}

	return &complaint, nil
}

func (r *ComplaintRepository) FindAll() ([]*models.Complaint, error) {
	return r.find(bson.M{})
}

func (r *ComplaintRepository) FindByCreator(userID string) ([]*models.Complaint, error) {
	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, errors.New("invalid user ID")
	}
	return r.find(bson.M{"created_by": objectID})
}

// FindByCategories returns complaints whose category is in the given set,
// most recent first. An empty set returns no documents.
func (r *ComplaintRepository) FindByCategories(categories []string) ([]*models.Complaint, error) {
	if len(categories) == 0 {
		return nil, nil
	}
	return r.find(bson.M{"category": bson.M{"$in": categories}})
}

func (r *ComplaintRepository) find(filter bson.M) ([]*models.Complaint, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Most recently created first.
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var complaints []*models.Complaint
	for cursor.Next(ctx) {
		var complaint models.Complaint
		if err := cursor.Decode(&complaint); err != nil {
			return nil, err
		}
		complaints = append(complaints, &complaint)
	}

	return complaints, nil
}

func (r *ComplaintRepository) Update(id string, complaint *models.Complaint) (*models.Complaint, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New("invalid complaint ID")
	}

	complaint.UpdatedAt = time.Now()

	result := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": complaint},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.Complaint
	if err := result.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("complaint not found")
		}
		return nil, err
	}

	return &updated, nil
}

func (r *ComplaintRepository) Count() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *ComplaintRepository) CountByStatus(status string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return r.collection.CountDocuments(ctx, bson.M{"status": status})
}

func (r *ComplaintRepository) CountNotStatus(status string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return r.collection.CountDocuments(ctx, bson.M{"status": bson.M{"$ne": status}})
}

// CategoryCount is one row of the category breakdown aggregation.
type CategoryCount struct {
	Name  string `bson:"_id" json:"name"`
	Count int    `bson:"count" json:"value"`
}

func (r *ComplaintRepository) CountByCategory() ([]CategoryCount, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pipeline := []bson.M{
		{"$group": bson.M{
			"_id":   "$category",
			"count": bson.M{"$sum": 1},
		}},
		{"$sort": bson.M{"count": -1}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var breakdown []CategoryCount
	for cursor.Next(ctx) {
		var row CategoryCount
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		breakdown = append(breakdown, row)
	}

	return breakdown, nil
}

// DayCount is one row of the daily trend aggregation, keyed by YYYY-MM-DD.
type DayCount struct {
	Date  string `bson:"_id"`
	Count int    `bson:"count"`
}

func (r *ComplaintRepository) CountByDaySince(since time.Time) ([]DayCount, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pipeline := []bson.M{
		{"$match": bson.M{"created_at": bson.M{"$gte": since}}},
		{"$group": bson.M{
			"_id":   bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$created_at"}},
			"count": bson.M{"$sum": 1},
		}},
		{"$sort": bson.M{"_id": 1}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var days []DayCount
	for cursor.Next(ctx) {
		var row DayCount
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		days = append(days, row)
	}

	return days, nil
}
