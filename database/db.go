package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Conn owns the MongoDB client lifecycle. It is created once by Connect and
// passed by reference to every repository; there is no package-global client
// or connected flag.
type Conn struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect establishes the MongoDB connection and verifies it with a ping.
func Connect(uri, dbName string) (*Conn, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return &Conn{client: client, db: client.Database(dbName)}, nil
}

// Database returns the handle repositories operate on.
func (c *Conn) Database() *mongo.Database {
	return c.db
}

// Client exposes the underlying client for session/transaction use.
func (c *Conn) Client() *mongo.Client {
	return c.client
}

// Close disconnects the client.
func (c *Conn) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
