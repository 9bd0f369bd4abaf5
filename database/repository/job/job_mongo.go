package jobRepo

import (
	"context"
	"time"

	"fixly/database"
	"fixly/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoJobRepo struct {
	coll *mongo.Collection
}

// NewMongoJobRepo returns a new JobRepository instance using MongoDB.
func NewMongoJobRepo() JobRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoJobRepo{
		coll: db.Collection("jobs"),
	}
}

// EnsureJobIndexes creates lookup indexes for the jobs collection.
func EnsureJobIndexes(ctx context.Context) error {
	db := database.MongoClient.Database(database.DatabaseName)
	_, err := db.Collection("jobs").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "customerId", Value: 1}}},
		{Keys: bson.D{{Key: "professionalId", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	return err
}

// Create inserts a new job and returns its ID.
func (r *mongoJobRepo) Create(ctx context.Context, job models.Job) (string, error) {
	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	job.CreatedAt = time.Now()
	job.UpdatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, job)
	if err != nil {
		return "", err
	}
	return job.ID, nil
}

// GetByID returns a job by its ID.
func (r *mongoJobRepo) GetByID(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&job)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// UpdateStatus conditionally moves a job between statuses.
func (r *mongoJobRepo) UpdateStatus(ctx context.Context, id string, from, to models.JobStatus) error {
	filter := bson.M{"id": id, "status": from}
	update := bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Accept assigns the professional and flips a pending job to accepted atomically.
func (r *mongoJobRepo) Accept(ctx context.Context, id, professionalID string) error {
	filter := bson.M{"id": id, "status": models.JobPending}
	update := bson.M{"$set": bson.M{
		"status":         models.JobAccepted,
		"professionalId": professionalID,
		"updatedAt":      time.Now(),
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ListByCustomer fetches all jobs created by a customer.
func (r *mongoJobRepo) ListByCustomer(ctx context.Context, customerID string) ([]models.Job, error) {
	return r.list(ctx, bson.M{"customerId": customerID})
}

// ListByProfessional fetches all jobs assigned to a professional.
func (r *mongoJobRepo) ListByProfessional(ctx context.Context, professionalID string) ([]models.Job, error) {
	return r.list(ctx, bson.M{"professionalId": professionalID})
}

// ListByStatus fetches all jobs currently in the given status.
func (r *mongoJobRepo) ListByStatus(ctx context.Context, status models.JobStatus) ([]models.Job, error) {
	return r.list(ctx, bson.M{"status": status})
}

// ListAll fetches every job record.
func (r *mongoJobRepo) ListAll(ctx context.Context) ([]models.Job, error) {
	return r.list(ctx, bson.M{})
}

func (r *mongoJobRepo) list(ctx context.Context, filter bson.M) ([]models.Job, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var jobs []models.Job
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}
