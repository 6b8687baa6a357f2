package configs

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectDB creates the client and pings the server. A failed ping still
// returns the client, so the API can start and report the database as
// disconnected on /api/health.
func ConnectDB(ctx context.Context, uri string) (*mongo.Client, error) {
	// Create a context with a timeout for the connection
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return client, fmt.Errorf("ping mongodb: %w", err)
	}
	return client, nil
}
