package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lorrc/customer-service-backend/internal/core/domain"
	apperrors "github.com/lorrc/customer-service-backend/internal/core/errors"
	"github.com/lorrc/customer-service-backend/internal/core/ports"
)

// userDocument is the stored shape of a user account.
type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	IsActive     bool               `bson:"is_active"`
	CreatedAt    time.Time          `bson:"created_at"`
}

// UserRepository implements ports.UserRepository on a MongoDB collection.
type UserRepository struct {
	coll *mongo.Collection
}

// Ensure UserRepository implements the ports.UserRepository interface.
var _ ports.UserRepository = (*UserRepository)(nil)

// NewUserRepository creates a new user repository.
func NewUserRepository(db *mongo.Database) ports.UserRepository {
	return &UserRepository{coll: db.Collection(CollectionUser)}
}

// Create inserts the user and returns it with the assigned identifier.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := userDocument{
		ID:           primitive.NewObjectID(),
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		IsActive:     user.IsActive,
		CreatedAt:    user.CreatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return mapUserToDomain(doc), nil
}

// GetByEmail fetches a user by email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var doc userDocument
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return mapUserToDomain(doc), nil
}

// GetByID fetches a user by its hex identifier.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var doc userDocument
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return mapUserToDomain(doc), nil
}

func mapUserToDomain(doc userDocument) *domain.User {
	return &domain.User{
		ID:           doc.ID.Hex(),
		Name:         doc.Name,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		Role:         domain.UserRole(doc.Role),
		IsActive:     doc.IsActive,
		CreatedAt:    doc.CreatedAt,
	}
}
