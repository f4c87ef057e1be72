package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collections groups the four bistro collections handlers operate on.
type Collections struct {
	Menu   *mongo.Collection
	Review *mongo.Collection
	Cart   *mongo.Collection
	Users  *mongo.Collection
}

// ConnectMongo opens a connection and returns the client. Caller should call client.Disconnect(ctx).
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	clientOpts := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// BistroCollections returns handles for the collections used by the service.
func BistroCollections(client *mongo.Client, db string) *Collections {
	d := client.Database(db)
	return &Collections{
		Menu:   d.Collection("menu"),
		Review: d.Collection("review"),
		Cart:   d.Collection("cart"),
		Users:  d.Collection("user"),
	}
}
