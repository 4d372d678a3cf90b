package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/spec-kit/social-network/internal/domain"
)

// UserRepository defines persistence access for accounts. It is the
// credential store adapter the auth service depends on; wiring of the
// concrete implementation happens in main.
type UserRepository interface {
	Insert(ctx context.Context, user *domain.User) error
	// FindByIdentifier matches the lowercased email OR the username as
	// given. Username matching is case-sensitive on purpose: stored
	// usernames are lowercased at registration.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	SetActive(ctx context.Context, id string, active bool) error
	List(ctx context.Context) ([]domain.User, error)
}

type userRepository struct {
	coll *mongo.Collection
}

// NewUserRepository returns a Mongo-backed implementation.
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{coll: db.Collection("users")}
}

func (r *userRepository) Insert(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	if user.ID == "" {
		user.ID = bson.NewObjectID().Hex()
	}
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &DuplicateIdentifierError{Field: duplicateField(err)}
		}
		return err
	}
	return nil
}

func (r *userRepository) FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"email": strings.ToLower(identifier)},
		bson.M{"username": identifier},
	}}
	return r.findOne(ctx, filter)
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *userRepository) SetActive(ctx context.Context, id string, active bool) error {
	update := bson.M{"$set": bson.M{"active": active, "updated_at": time.Now().UTC()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []domain.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var user domain.User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// duplicateField recovers the colliding identifier from the unique-index
// name embedded in the driver's duplicate-key message.
func duplicateField(err error) string {
	msg := err.Error()
	if strings.Contains(msg, "username") {
		return "username"
	}
	if strings.Contains(msg, "email") {
		return "email"
	}
	return "identifier"
}
