package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/lorrc/customer-service-backend/internal/core/domain"
	"github.com/lorrc/customer-service-backend/internal/core/ports"
)

// MockUserRepository is a mock implementation of ports.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockTicketRepository is a mock implementation of ports.TicketRepository
type MockTicketRepository struct {
	mock.Mock
}

func NewMockTicketRepository() *MockTicketRepository {
	return &MockTicketRepository{}
}

func (m *MockTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	args := m.Called(ctx, ticket)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketRepository) List(ctx context.Context, filter ports.TicketFilter) ([]*domain.Ticket, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Ticket), args.Error(1)
}

func (m *MockTicketRepository) Update(ctx context.Context, id string, update *domain.TicketUpdate) (*domain.Ticket, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockMessageRepository is a mock implementation of ports.MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func NewMockMessageRepository() *MockMessageRepository {
	return &MockMessageRepository{}
}

func (m *MockMessageRepository) Create(ctx context.Context, message *domain.Message) (*domain.Message, error) {
	args := m.Called(ctx, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}

func (m *MockMessageRepository) ListByTicket(ctx context.Context, ticketID string, limit int) ([]*domain.Message, error) {
	args := m.Called(ctx, ticketID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Message), args.Error(1)
}

// MockFaqRepository is a mock implementation of ports.FaqRepository
type MockFaqRepository struct {
	mock.Mock
}

func NewMockFaqRepository() *MockFaqRepository {
	return &MockFaqRepository{}
}

func (m *MockFaqRepository) Create(ctx context.Context, faq *domain.Faq) (*domain.Faq, error) {
	args := m.Called(ctx, faq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Faq), args.Error(1)
}

func (m *MockFaqRepository) Search(ctx context.Context, query string, limit int) ([]*domain.Faq, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Faq), args.Error(1)
}

func (m *MockFaqRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockFeedbackRepository is a mock implementation of ports.FeedbackRepository
type MockFeedbackRepository struct {
	mock.Mock
}

func NewMockFeedbackRepository() *MockFeedbackRepository {
	return &MockFeedbackRepository{}
}

func (m *MockFeedbackRepository) Create(ctx context.Context, feedback *domain.Feedback) (*domain.Feedback, error) {
	args := m.Called(ctx, feedback)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Feedback), args.Error(1)
}

func (m *MockFeedbackRepository) List(ctx context.Context, limit int) ([]*domain.Feedback, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Feedback), args.Error(1)
}

// MockEventBroadcaster is a mock implementation of ports.EventBroadcaster
type MockEventBroadcaster struct {
	mock.Mock
}

func NewMockEventBroadcaster() *MockEventBroadcaster {
	return &MockEventBroadcaster{}
}

func (m *MockEventBroadcaster) Publish(ticketID string, event domain.MessageEvent) {
	m.Called(ticketID, event)
}

// MockTicketService is a mock implementation of ports.TicketService
type MockTicketService struct {
	mock.Mock
}

func NewMockTicketService() *MockTicketService {
	return &MockTicketService{}
}

func (m *MockTicketService) CreateTicket(ctx context.Context, params ports.CreateTicketParams) (*domain.Ticket, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketService) GetTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	args := m.Called(ctx, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketService) ListTickets(ctx context.Context, params ports.ListTicketsParams) ([]*domain.Ticket, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Ticket), args.Error(1)
}

func (m *MockTicketService) UpdateTicket(ctx context.Context, ticketID string, update domain.TicketUpdate) (*domain.Ticket, error) {
	args := m.Called(ctx, ticketID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

// MockMessageService is a mock implementation of ports.MessageService
type MockMessageService struct {
	mock.Mock
}

func NewMockMessageService() *MockMessageService {
	return &MockMessageService{}
}

func (m *MockMessageService) CreateMessage(ctx context.Context, params ports.CreateMessageParams) (*domain.Message, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}

func (m *MockMessageService) ListMessages(ctx context.Context, ticketID string, limit int) ([]*domain.Message, error) {
	args := m.Called(ctx, ticketID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Message), args.Error(1)
}
