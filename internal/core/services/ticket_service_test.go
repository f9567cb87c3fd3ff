package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lorrc/customer-service-backend/internal/core/domain"
	apperrors "github.com/lorrc/customer-service-backend/internal/core/errors"
	"github.com/lorrc/customer-service-backend/internal/core/mocks"
	"github.com/lorrc/customer-service-backend/internal/core/ports"
	"github.com/lorrc/customer-service-backend/internal/core/services"
)

const testTicketID = "68a1f0c2b7e4d9a3c5f01234"

func TestTicketService_CreateTicket(t *testing.T) {
	ctx := context.Background()

	t.Run("success with defaults", func(t *testing.T) {
		mockTicketRepo := mocks.NewMockTicketRepository()
		svc := services.NewTicketService(mockTicketRepo)

		var persisted *domain.Ticket
		mockTicketRepo.On("Create", ctx, mock.AnythingOfType("*domain.Ticket")).
			Run(func(args mock.Arguments) {
				persisted = args.Get(1).(*domain.Ticket)
			}).
			Return(&domain.Ticket{
				ID:            testTicketID,
				Title:         "App is broken",
				Status:        domain.StatusOpen,
				Priority:      domain.PriorityMedium,
				CustomerEmail: "customer@example.com",
				CreatedAt:     time.Now(),
			}, nil)

		ticket, err := svc.CreateTicket(ctx, ports.CreateTicketParams{
			Title:         "App is broken",
			Description:   "Nothing loads after login.",
			CustomerEmail: "customer@example.com",
		})

		require.NoError(t, err)
		assert.Equal(t, testTicketID, ticket.ID)

		// Defaults were applied before persisting
		require.NotNil(t, persisted)
		assert.Equal(t, domain.StatusOpen, persisted.Status)
		assert.Equal(t, domain.PriorityMedium, persisted.Priority)

		mockTicketRepo.AssertExpectations(t)
	})

	t.Run("missing title", func(t *testing.T) {
		mockTicketRepo := mocks.NewMockTicketRepository()
		svc := services.NewTicketService(mockTicketRepo)

		ticket, err := svc.CreateTicket(ctx, ports.CreateTicketParams{
			Description:   "No title given.",
			CustomerEmail: "customer@example.com",
		})

		assert.Nil(t, ticket)
		var validationErr *apperrors.ValidationErrors
		assert.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Errors, "title")

		mockTicketRepo.AssertNotCalled(t, "Create")
	})

	t.Run("invalid priority", func(t *testing.T) {
		mockTicketRepo := mocks.NewMockTicketRepository()
		svc := services.NewTicketService(mockTicketRepo)

		ticket, err := svc.CreateTicket(ctx, ports.CreateTicketParams{
			Title:         "App is broken",
			Description:   "Nothing loads.",
			Priority:      "urgent",
			CustomerEmail: "customer@example.com",
		})

		assert.Nil(t, ticket)
		assert.Error(t, err)
		mockTicketRepo.AssertNotCalled(t, "Create")
	})
}

func TestTicketService_GetTicket(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockTicketRepo := mocks.NewMockTicketRepository()
		svc := services.NewTicketService(mockTicketRepo)

		mockTicketRepo.On("GetByID", ctx, testTicketID).
			Return(&domain.Ticket{ID: testTicketID, Title: "App is broken"}, nil)

		ticket, err := svc.GetTicket(ctx, testTicketID)

		require.NoError(t, err)
		assert.Equal(t, "App is broken", ticket.Title)
	})

	t.Run("not found", func(t *testing.T) {
		mockTicketRepo := mocks.NewMockTicketRepository()
		svc := services.NewTicketService(mockTicketRepo)

		mockTicketRepo.On("GetByID", ctx, testTicketID).
			Return(nil, apperrors.ErrTicketNotFound)

		ticket, err := svc.GetTicket(ctx, testTicketID)

		assert.Nil(t, ticket)
		assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)
	})
}

func TestTicketService_ListTickets(t *testing.T) {
	ctx := context.Background()

	t.Run("passes filters to the repository", func(t *testing.T) {
		mockTicketRepo := mocks.NewMockTicketRepository()
		svc := services.NewTicketService(mockTicketRepo)

		email := "customer@example.com"
		status := "open"
		wantStatus := domain.StatusOpen

		mockTicketRepo.On("List", ctx, ports.TicketFilter{
			CustomerEmail: &email,
			Status:        &wantStatus,
			Limit:         25,
		}).Return([]*domain.Ticket{{ID: testTicketID}}, nil)

		list, err := svc.ListTickets(ctx, ports.ListTicketsParams{
			CustomerEmail: &email,
			Status:        &status,
			Limit:         25,
		})

		require.NoError(t, err)
		require.Len(t, list, 1)
		mockTicketRepo.AssertExpectations(t)
	})

	t.Run("no filters", func(t *testing.T) {
		mockTicketRepo := mocks.NewMockTicketRepository()
		svc := services.NewTicketService(mockTicketRepo)

		mockTicketRepo.On("List", ctx, ports.TicketFilter{Limit: 25}).
			Return([]*domain.Ticket{}, nil)

		list, err := svc.ListTickets(ctx, ports.ListTicketsParams{Limit: 25})

		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestTicketService_UpdateTicket(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockTicketRepo := mocks.NewMockTicketRepository()
		svc := services.NewTicketService(mockTicketRepo)

		resolved := domain.StatusResolved
		update := domain.TicketUpdate{Status: &resolved}

		mockTicketRepo.On("Update", ctx, testTicketID, &update).
			Return(&domain.Ticket{ID: testTicketID, Status: domain.StatusResolved}, nil)

		ticket, err := svc.UpdateTicket(ctx, testTicketID, update)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusResolved, ticket.Status)
		mockTicketRepo.AssertExpectations(t)
	})

	t.Run("empty update", func(t *testing.T) {
		mockTicketRepo := mocks.NewMockTicketRepository()
		svc := services.NewTicketService(mockTicketRepo)

		ticket, err := svc.UpdateTicket(ctx, testTicketID, domain.TicketUpdate{})

		assert.Nil(t, ticket)
		assert.ErrorIs(t, err, apperrors.ErrEmptyUpdate)
		mockTicketRepo.AssertNotCalled(t, "Update")
	})

	t.Run("invalid status", func(t *testing.T) {
		mockTicketRepo := mocks.NewMockTicketRepository()
		svc := services.NewTicketService(mockTicketRepo)

		bogus := domain.TicketStatus("reopened")
		ticket, err := svc.UpdateTicket(ctx, testTicketID, domain.TicketUpdate{Status: &bogus})

		assert.Nil(t, ticket)
		var validationErr *apperrors.ValidationErrors
		assert.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Errors, "status")

		mockTicketRepo.AssertNotCalled(t, "Update")
	})

	t.Run("ticket not found", func(t *testing.T) {
		mockTicketRepo := mocks.NewMockTicketRepository()
		svc := services.NewTicketService(mockTicketRepo)

		closed := domain.StatusClosed
		update := domain.TicketUpdate{Status: &closed}

		mockTicketRepo.On("Update", ctx, testTicketID, &update).
			Return(nil, apperrors.ErrTicketNotFound)

		ticket, err := svc.UpdateTicket(ctx, testTicketID, update)

		assert.Nil(t, ticket)
		assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)
	})
}
