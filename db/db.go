package db

import (
	"context"
	"log"
	"time"

	"tabi/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection      *mongo.Collection
	ItineraryCollection *mongo.Collection
	WishlistCollection  *mongo.Collection
	ChatsCollection     *mongo.Collection
	MessagesCollection  *mongo.Collection
	PackingCollection   *mongo.Collection
	Client              *mongo.Client
)

// Init connects to MongoDB. In demo mode the collections stay nil and every
// caller must go through Available() before touching them.
func Init(cfg *config.App) error {
	if cfg.DemoMode {
		log.Println("db: demo mode, skipping MongoDB connection")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return err
	}
	Client = client

	database := client.Database(cfg.MongoDB)
	UserCollection = database.Collection("users")
	ItineraryCollection = database.Collection("itinerary")
	WishlistCollection = database.Collection("wishlist")
	ChatsCollection = database.Collection("chats")
	MessagesCollection = database.Collection("messages")
	PackingCollection = database.Collection("packing_lists")
	return nil
}

// Available reports whether a real store is connected.
func Available() bool {
	return Client != nil
}

// Close disconnects the client on shutdown.
func Close(ctx context.Context) {
	if Client != nil {
		if err := Client.Disconnect(ctx); err != nil {
			log.Printf("db: disconnect error: %v", err)
		}
	}
}
