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

// messageDocument is the stored shape of a ticket message. The ticket_id is a
// plain hex string; messages are never joined against the ticket collection.
type messageDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	TicketID    string             `bson:"ticket_id"`
	SenderEmail string             `bson:"sender_email"`
	Content     string             `bson:"content"`
	Type        string             `bson:"type"`
	CreatedAt   time.Time          `bson:"created_at"`
}

// MessageRepository implements ports.MessageRepository on a MongoDB collection.
type MessageRepository struct {
	coll *mongo.Collection
}

// Ensure MessageRepository implements the ports.MessageRepository interface.
var _ ports.MessageRepository = (*MessageRepository)(nil)

// NewMessageRepository creates a new message repository.
func NewMessageRepository(db *mongo.Database) ports.MessageRepository {
	return &MessageRepository{coll: db.Collection(CollectionMessage)}
}

// Create inserts the message and returns it with the assigned identifier.
func (r *MessageRepository) Create(ctx context.Context, message *domain.Message) (*domain.Message, error) {
	doc := messageDocument{
		ID:          primitive.NewObjectID(),
		TicketID:    message.TicketID,
		SenderEmail: message.SenderEmail,
		Content:     message.Content,
		Type:        string(message.Type),
		CreatedAt:   message.CreatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}

	return mapMessageToDomain(doc), nil
}

// ListByTicket returns the most recent limit messages of a ticket in
// chronological order. The query sorts newest first so the limit keeps the
// latest window, then the slice is reversed for reading order. The _id key
// breaks ties between messages stored in the same millisecond.
func (r *MessageRepository) ListByTicket(ctx context.Context, ticketID string, limit int) ([]*domain.Message, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.coll.Find(ctx, bson.M{"ticket_id": ticketID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	var docs []messageDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}

	messages := make([]*domain.Message, len(docs))
	for i, doc := range docs {
		messages[len(docs)-1-i] = mapMessageToDomain(doc)
	}
	return messages, nil
}

func mapMessageToDomain(doc messageDocument) *domain.Message {
	return &domain.Message{
		ID:          doc.ID.Hex(),
		TicketID:    doc.TicketID,
		SenderEmail: doc.SenderEmail,
		Content:     doc.Content,
		Type:        domain.MessageType(doc.Type),
		CreatedAt:   doc.CreatedAt,
	}
}
