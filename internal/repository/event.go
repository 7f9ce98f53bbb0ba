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

type EventRepository struct {
	collection *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{
		collection: db.Collection("events"),
	}
}

func (r *EventRepository) Create(event *models.Event) (*models.Event, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, event)
	if err != nil {
		return nil, err
	}

	event.ID = result.InsertedID.(primitive.ObjectID)
	return event, nil
}

func (r *EventRepository) FindByID(id string) (*models.Event, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New("invalid event ID")
	}

	var event models.Event
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&event)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("event not found")
		}
		return nil, err
	}

	return &event, nil
}

// FindAll returns events soonest first.
func (r *EventRepository) FindAll() ([]*models.Event, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []*models.Event
	for cursor.Next(ctx) {
		var event models.Event
		if err := cursor.Decode(&event); err != nil {
			return nil, err
		}
		events = append(events, &event)
	}

	return events, nil
}

// AddAttendee registers a user for an event exactly once.
func (r *EventRepository) AddAttendee(eventID string, userID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(eventID)
	if err != nil {
		return errors.New("invalid event ID")
	}

	// No updated_at bump here: ModifiedCount must reflect only the
	// attendee insert so duplicate joins are detectable.
	update := bson.M{
		"$addToSet": bson.M{"attendees": userID},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return errors.New("event not found")
	}
	if result.ModifiedCount == 0 {
		return errors.New("already joined this event")
	}

	return nil
}
