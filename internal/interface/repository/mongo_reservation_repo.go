package repository

import (
	"context"
	"errors"
	"time"

	"booking-service/internal/domain/entity"
	"booking-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultListLimit = 100

// MongoReservationRepository implements the ReservationRepository interface
type MongoReservationRepository struct {
	collection *mongo.Collection
}

// NewMongoReservationRepository creates a new MongoDB reservation repository
func NewMongoReservationRepository(db *mongo.Database) repository.ReservationRepository {
	collection := db.Collection("reservations")

	ctx := context.Background()

	// Reservation id is the lookup key for operators
	idIndex := mongo.IndexModel{
		Keys:    bson.M{"id": 1},
		Options: options.Index().SetUnique(true),
	}

	// Hotel reservation list, newest first
	propertyIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "propertyId", Value: 1},
			{Key: "createdAt", Value: -1},
		},
	}

	// Guests look bookings up by confirmation number
	confirmationIndex := mongo.IndexModel{
		Keys: bson.M{"details.confirmationNumber": 1},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		idIndex,
		propertyIndex,
		confirmationIndex,
	})

	return &MongoReservationRepository{
		collection: collection,
	}
}

// AddBooking inserts a reservation
func (r *MongoReservationRepository) AddBooking(ctx context.Context, reservation *entity.Reservation) error {
	_, err := r.collection.InsertOne(ctx, reservation)
	return err
}

// FindByID finds a reservation by its id
func (r *MongoReservationRepository) FindByID(ctx context.Context, id string) (*entity.Reservation, error) {
	var reservation entity.Reservation
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&reservation)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// UpdateStatus sets only the status and updatedAt fields
func (r *MongoReservationRepository) UpdateStatus(ctx context.Context, id string, status entity.ReservationStatus) error {
	update := bson.M{
		"$set": bson.M{
			"status":    status,
			"updatedAt": time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return entity.ErrReservationNotFound
	}
	return nil
}

// ListByProperty returns a hotel's reservations, newest first
func (r *MongoReservationRepository) ListByProperty(ctx context.Context, propertyID string, limit int) ([]*entity.Reservation, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"propertyId": propertyID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reservations := []*entity.Reservation{}
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}
