package dentistRepo

import (
	"context"
	"fmt"
	"time"

	"clinio/database"
	"clinio/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDentistRepo implements DentistRepository using MongoDB.
type MongoDentistRepo struct {
	coll *mongo.Collection
}

// NewMongoDentistRepo constructs a new instance of MongoDentistRepo.
func NewMongoDentistRepo(conn *database.Conn) DentistRepository {
	coll := conn.Database().Collection("dentists")
	repo := &MongoDentistRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create dentist indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoDentistRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a dentist by its unique ID.
func (r *MongoDentistRepo) GetByID(id string) (*models.Dentist, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var dentist models.Dentist
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&dentist); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch dentist with id %s: %w", id, err)
	}
	return &dentist, nil
}

// GetByEmail retrieves a dentist by its email address.
func (r *MongoDentistRepo) GetByEmail(email string) (*models.Dentist, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var dentist models.Dentist
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&dentist); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch dentist with email %s: %w", email, err)
	}
	return &dentist, nil
}

// GetAll retrieves all dentists.
func (r *MongoDentistRepo) GetAll() ([]models.Dentist, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve dentists: %w", err)
	}
	defer cursor.Close(ctx)

	var dentists []models.Dentist
	if err := cursor.All(ctx, &dentists); err != nil {
		return nil, fmt.Errorf("failed to decode dentists: %w", err)
	}
	return dentists, nil
}

// Create inserts a new dentist document.
func (r *MongoDentistRepo) Create(dentist *models.Dentist) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	dentist.CreatedAt = now
	dentist.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, dentist)
	if err != nil {
		return fmt.Errorf("failed to create dentist: %w", err)
	}
	return nil
}

// SetWorkingHours replaces the weekly working-hours template.
func (r *MongoDentistRepo) SetWorkingHours(id string, hours models.WeeklyHours) (*models.Dentist, error) {
	return r.patch(id, bson.M{"working_hours": hours})
}

// SetActive flips the bookable flag.
func (r *MongoDentistRepo) SetActive(id string, active bool) (*models.Dentist, error) {
	return r.patch(id, bson.M{"active": active})
}

func (r *MongoDentistRepo) patch(id string, updateDoc bson.M) (*models.Dentist, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	updateDoc["updated_at"] = time.Now()
	update := bson.M{"$set": updateDoc}
	filter := bson.M{"id": id}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Dentist
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update dentist with id %s: %w", id, err)
	}
	return &updated, nil
}
