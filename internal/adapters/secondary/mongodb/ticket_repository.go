package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lorrc/customer-service-backend/internal/core/domain"
	apperrors "github.com/lorrc/customer-service-backend/internal/core/errors"
	"github.com/lorrc/customer-service-backend/internal/core/ports"
)

// ticketDocument is the stored shape of a support ticket.
type ticketDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Description   string             `bson:"description"`
	Status        string             `bson:"status"`
	Priority      string             `bson:"priority"`
	CustomerEmail string             `bson:"customer_email"`
	AssignedTo    *string            `bson:"assigned_to,omitempty"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

// TicketRepository implements ports.TicketRepository on a MongoDB collection.
type TicketRepository struct {
	coll *mongo.Collection
}

// Ensure TicketRepository implements the ports.TicketRepository interface.
var _ ports.TicketRepository = (*TicketRepository)(nil)

// NewTicketRepository creates a new ticket repository.
func NewTicketRepository(db *mongo.Database) ports.TicketRepository {
	return &TicketRepository{coll: db.Collection(CollectionTicket)}
}

// Create inserts the ticket and returns it with the assigned identifier.
func (r *TicketRepository) Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	doc := ticketDocument{
		ID:            primitive.NewObjectID(),
		Title:         ticket.Title,
		Description:   ticket.Description,
		Status:        string(ticket.Status),
		Priority:      string(ticket.Priority),
		CustomerEmail: ticket.CustomerEmail,
		AssignedTo:    ticket.AssignedTo,
		CreatedAt:     ticket.CreatedAt,
		UpdatedAt:     ticket.UpdatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert ticket: %w", err)
	}

	return mapTicketToDomain(doc), nil
}

// GetByID fetches a ticket by its hex identifier.
func (r *TicketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var doc ticketDocument
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, fmt.Errorf("get ticket by id: %w", err)
	}

	return mapTicketToDomain(doc), nil
}

// List returns tickets matching the filter, newest first.
func (r *TicketRepository) List(ctx context.Context, filter ports.TicketFilter) ([]*domain.Ticket, error) {
	query := bson.M{}
	if filter.CustomerEmail != nil {
		query["customer_email"] = *filter.CustomerEmail
	}
	if filter.Status != nil {
		query["status"] = string(*filter.Status)
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}

	var docs []ticketDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode tickets: %w", err)
	}

	tickets := make([]*domain.Ticket, len(docs))
	for i, doc := range docs {
		tickets[i] = mapTicketToDomain(doc)
	}
	return tickets, nil
}

// Update applies the non-nil fields of update to the ticket and returns the
// resulting document. The updated_at stamp is always refreshed.
func (r *TicketRepository) Update(ctx context.Context, id string, update *domain.TicketUpdate) (*domain.Ticket, error) {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Status != nil {
		set["status"] = string(*update.Status)
	}
	if update.Priority != nil {
		set["priority"] = string(*update.Priority)
	}
	if update.AssignedTo != nil {
		set["assigned_to"] = *update.AssignedTo
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc ticketDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, fmt.Errorf("update ticket: %w", err)
	}

	return mapTicketToDomain(doc), nil
}

// Count returns the number of tickets in the collection.
func (r *TicketRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count tickets: %w", err)
	}
	return count, nil
}

func mapTicketToDomain(doc ticketDocument) *domain.Ticket {
	return &domain.Ticket{
		ID:            doc.ID.Hex(),
		Title:         doc.Title,
		Description:   doc.Description,
		Status:        domain.TicketStatus(doc.Status),
		Priority:      domain.TicketPriority(doc.Priority),
		CustomerEmail: doc.CustomerEmail,
		AssignedTo:    doc.AssignedTo,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
}
