package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lorrc/customer-service-backend/internal/core/domain"
	"github.com/lorrc/customer-service-backend/internal/core/ports"
)

// feedbackDocument is the stored shape of a feedback entry. Email and comment
// are optional and omitted when absent.
type feedbackDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     *string            `bson:"email,omitempty"`
	Rating    int                `bson:"rating"`
	Comment   *string            `bson:"comment,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
}

// FeedbackRepository implements ports.FeedbackRepository on a MongoDB collection.
type FeedbackRepository struct {
	coll *mongo.Collection
}

// Ensure FeedbackRepository implements the ports.FeedbackRepository interface.
var _ ports.FeedbackRepository = (*FeedbackRepository)(nil)

// NewFeedbackRepository creates a new feedback repository.
func NewFeedbackRepository(db *mongo.Database) ports.FeedbackRepository {
	return &FeedbackRepository{coll: db.Collection(CollectionFeedback)}
}

// Create inserts the feedback entry and returns it with the assigned identifier.
func (r *FeedbackRepository) Create(ctx context.Context, feedback *domain.Feedback) (*domain.Feedback, error) {
	doc := feedbackDocument{
		ID:        primitive.NewObjectID(),
		Email:     feedback.Email,
		Rating:    feedback.Rating,
		Comment:   feedback.Comment,
		CreatedAt: feedback.CreatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert feedback: %w", err)
	}

	return mapFeedbackToDomain(doc), nil
}

// List returns the most recent limit feedback entries, newest first.
func (r *FeedbackRepository) List(ctx context.Context, limit int) ([]*domain.Feedback, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}

	var docs []feedbackDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode feedback: %w", err)
	}

	entries := make([]*domain.Feedback, len(docs))
	for i, doc := range docs {
		entries[i] = mapFeedbackToDomain(doc)
	}
	return entries, nil
}

func mapFeedbackToDomain(doc feedbackDocument) *domain.Feedback {
	return &domain.Feedback{
		ID:        doc.ID.Hex(),
		Email:     doc.Email,
		Rating:    doc.Rating,
		Comment:   doc.Comment,
		CreatedAt: doc.CreatedAt,
	}
}
