package mongodb

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lorrc/customer-service-backend/internal/core/domain"
	"github.com/lorrc/customer-service-backend/internal/core/ports"
)

// faqDocument is the stored shape of a FAQ entry.
type faqDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Question  string             `bson:"question"`
	Answer    string             `bson:"answer"`
	Tags      []string           `bson:"tags"`
	Views     int                `bson:"views"`
	CreatedAt time.Time          `bson:"created_at"`
}

// FaqRepository implements ports.FaqRepository on a MongoDB collection.
type FaqRepository struct {
	coll *mongo.Collection
}

// Ensure FaqRepository implements the ports.FaqRepository interface.
var _ ports.FaqRepository = (*FaqRepository)(nil)

// NewFaqRepository creates a new FAQ repository.
func NewFaqRepository(db *mongo.Database) ports.FaqRepository {
	return &FaqRepository{coll: db.Collection(CollectionFaq)}
}

// Create inserts the FAQ entry and returns it with the assigned identifier.
func (r *FaqRepository) Create(ctx context.Context, faq *domain.Faq) (*domain.Faq, error) {
	doc := faqDocument{
		ID:        primitive.NewObjectID(),
		Question:  faq.Question,
		Answer:    faq.Answer,
		Tags:      faq.Tags,
		Views:     faq.Views,
		CreatedAt: faq.CreatedAt,
	}
	if doc.Tags == nil {
		doc.Tags = []string{}
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert faq: %w", err)
	}

	return mapFaqToDomain(doc), nil
}

// Search matches query as a case-insensitive substring of the question, the
// answer, or any tag. An empty query matches everything. The query text is
// escaped so regex metacharacters in user input are taken literally.
func (r *FaqRepository) Search(ctx context.Context, query string, limit int) ([]*domain.Faq, error) {
	filter := bson.M{}
	if query != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
		filter = bson.M{"$or": []bson.M{
			{"question": re},
			{"answer": re},
			{"tags": re},
		}}
	}

	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("search faqs: %w", err)
	}

	var docs []faqDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode faqs: %w", err)
	}

	faqs := make([]*domain.Faq, len(docs))
	for i, doc := range docs {
		faqs[i] = mapFaqToDomain(doc)
	}
	return faqs, nil
}

// Count returns the number of FAQ entries in the collection.
func (r *FaqRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count faqs: %w", err)
	}
	return count, nil
}

func mapFaqToDomain(doc faqDocument) *domain.Faq {
	tags := doc.Tags
	if tags == nil {
		tags = []string{}
	}
	return &domain.Faq{
		ID:        doc.ID.Hex(),
		Question:  doc.Question,
		Answer:    doc.Answer,
		Tags:      tags,
		Views:     doc.Views,
		CreatedAt: doc.CreatedAt,
	}
}
