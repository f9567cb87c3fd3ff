package mongodb

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcmongodb "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lorrc/customer-service-backend/internal/config"
)

// testDB is a global database handle used by all tests in this package.
var (
	testClient *mongo.Client
	testDB     *mongo.Database
)

// TestMain sets up and tears down the test database container.
func TestMain(m *testing.M) {
	ctx := context.Background()

	// 1. Start a MongoDB container
	log.Println("Setting up MongoDB container...")
	mongoContainer, err := tcmongodb.Run(ctx, "mongo:7",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Waiting for connections").
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		log.Fatalf("could not start mongodb container: %v", err)
	}

	// 2. Set up a deferred function to terminate the container
	defer func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			log.Fatalf("could not terminate mongodb container: %v", err)
		}
	}()

	// 3. Get the dynamic connection string
	uri, err := mongoContainer.ConnectionString(ctx)
	if err != nil {
		log.Fatalf("could not get connection string: %v", err)
	}

	// 4. Connect through the adapter's own entry point
	cfg := config.MongoConfig{
		URI:            uri,
		Database:       "testdb",
		MaxPoolSize:    10,
		ConnectTimeout: 10 * time.Second,
		PingTimeout:    5 * time.Second,
	}
	testClient, err = Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("could not connect to mongodb: %v", err)
	}
	testDB = testClient.Database(cfg.Database)

	// 5. Run the tests
	code := m.Run()

	// 6. Exit
	os.Exit(code)
}
