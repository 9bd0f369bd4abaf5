package accountRepo

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

type mongoAccountRepo struct {
	coll *mongo.Collection
}

// NewMongoAccountRepo returns a new AccountRepository instance using MongoDB.
func NewMongoAccountRepo() AccountRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoAccountRepo{
		coll: db.Collection("accounts"),
	}
}

// EnsureAccountIndexes creates the unique email index.
func EnsureAccountIndexes(ctx context.Context) error {
	db := database.MongoClient.Database(database.DatabaseName)
	_, err := db.Collection("accounts").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Create inserts a new account and returns its ID.
func (r *mongoAccountRepo) Create(ctx context.Context, account models.Account) (string, error) {
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	account.CreatedAt = time.Now()
	account.UpdatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, account)
	if err != nil {
		return "", err
	}
	return account.ID, nil
}

// GetByID returns an account by its ID.
func (r *mongoAccountRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	var account models.Account
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&account)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// GetByEmail returns an account by its email.
func (r *mongoAccountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&account)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// SetTokenHash stores the hash of the account's current auth token. An empty
// hash revokes the token.
func (r *mongoAccountRepo) SetTokenHash(ctx context.Context, id, tokenHash string) error {
	update := bson.M{"$set": bson.M{"tokenHash": tokenHash, "updatedAt": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// IncrementCancellationCount bumps the lifetime cancellation counter.
func (r *mongoAccountRepo) IncrementCancellationCount(ctx context.Context, id string) (int, error) {
	update := bson.M{
		"$inc": bson.M{"cancellationCount": 1},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var account models.Account
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&account)
	if err != nil {
		return 0, err
	}
	return account.CancellationCount, nil
}

// ListByRole fetches all accounts with the given role.
func (r *mongoAccountRepo) ListByRole(ctx context.Context, role models.Role) ([]models.Account, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"role": role})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var accounts []models.Account
	if err := cursor.All(ctx, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// ListByMinCancellations fetches accounts at or above a cancellation-count threshold.
func (r *mongoAccountRepo) ListByMinCancellations(ctx context.Context, min int) ([]models.Account, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"cancellationCount": bson.M{"$gte": min}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var accounts []models.Account
	if err := cursor.All(ctx, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}
