package http

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"log/slog"
	stdhttp "net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcmongodb "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lorrc/customer-service-backend/internal/adapters/primary/websocket"
	"github.com/lorrc/customer-service-backend/internal/adapters/secondary/mongodb"
	"github.com/lorrc/customer-service-backend/internal/auth"
	"github.com/lorrc/customer-service-backend/internal/config"
	"github.com/lorrc/customer-service-backend/internal/core/services"
)

var (
	testClient *mongo.Client
	testDB     *mongo.Database
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	mongoContainer, err := tcmongodb.Run(ctx, "mongo:7",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Waiting for connections").
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		log.Fatalf("could not start mongodb container: %v", err)
	}

	uri, err := mongoContainer.ConnectionString(ctx)
	if err != nil {
		log.Fatalf("could not get connection string: %v", err)
	}

	cfg := config.MongoConfig{
		URI:            uri,
		Database:       "testdb",
		MaxPoolSize:    10,
		ConnectTimeout: 10 * time.Second,
		PingTimeout:    5 * time.Second,
	}
	testClient, err = mongodb.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("could not connect to mongodb: %v", err)
	}
	testDB = testClient.Database(cfg.Database)

	code := m.Run()

	if err := mongoContainer.Terminate(ctx); err != nil {
		log.Fatalf("could not terminate mongodb container: %v", err)
	}

	os.Exit(code)
}

// newTestRouter wires real repositories, services and handlers into the same
// route tree the server runs, minus rate limiting.
func newTestRouter() (*chi.Mux, *auth.TokenManager, *websocket.Registry) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	errorHandler := NewErrorHandler(logger)

	userRepo := mongodb.NewUserRepository(testDB)
	ticketRepo := mongodb.NewTicketRepository(testDB)
	messageRepo := mongodb.NewMessageRepository(testDB)
	faqRepo := mongodb.NewFaqRepository(testDB)
	feedbackRepo := mongodb.NewFeedbackRepository(testDB)

	registry := websocket.NewRegistry(logger)

	authService := services.NewAuthService(userRepo)
	ticketService := services.NewTicketService(ticketRepo)
	messageService := services.NewMessageService(messageRepo, registry)
	faqService := services.NewFaqService(faqRepo)
	feedbackService := services.NewFeedbackService(feedbackRepo)
	seedService := services.NewSeedService(faqRepo, ticketRepo)

	tokenManager := auth.NewTokenManager("test-secret", time.Hour, "customer-service-test")

	authHandler := NewAuthHandler(authService, tokenManager, errorHandler, logger)
	messageHandler := NewMessageHandler(messageService, errorHandler, logger)
	ticketHandler := NewTicketHandler(ticketService, messageHandler, errorHandler, logger)
	faqHandler := NewFaqHandler(faqService, errorHandler, logger)
	feedbackHandler := NewFeedbackHandler(feedbackService, errorHandler, logger)
	seedHandler := NewSeedHandler(seedService, errorHandler, logger)
	healthHandler := NewHealthHandler(mongodb.NewHealthStore(testClient, testDB), registry, "test")

	wsCfg := config.WebSocketConfig{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		PingInterval:    54 * time.Second,
		PongWait:        60 * time.Second,
		SendBufferSize:  256,
	}
	wsHandler := websocket.NewHandler(registry, wsCfg, false, logger)

	router := chi.NewRouter()
	router.Get("/", HandleRoot)
	healthHandler.RegisterRoutes(router)
	router.Route("/auth", authHandler.RegisterRoutes)
	router.Route("/tickets", ticketHandler.RegisterRoutes)
	router.Route("/faq", faqHandler.RegisterRoutes)
	router.Route("/feedback", feedbackHandler.RegisterRoutes)
	seedHandler.RegisterRoutes(router)
	router.Get("/ws/tickets/{ticket_id}", wsHandler.ServeTicketChannel)

	return router, tokenManager, registry
}

func TestRoot(t *testing.T) {
	router, _, _ := newTestRouter()

	req := httptest.NewRequest(stdhttp.MethodGet, "/", nil)
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	require.Equal(t, stdhttp.StatusOK, recorder.Code)

	var response map[string]string
	err := json.NewDecoder(recorder.Body).Decode(&response)
	require.NoError(t, err)
	assert.Equal(t, "Customer Service API running", response["message"])
}
