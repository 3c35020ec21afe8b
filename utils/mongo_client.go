package utils

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoClient is the process-wide MongoDB client.
var MongoClient *mongo.Client

// InitMongoClient connects to MongoDB using the configured pool settings.
func InitMongoClient() {
	clientOptions := options.Client().
		ApplyURI(GetEnvAsString("MONGO_URI", "mongodb://localhost:27017")).
		SetMaxPoolSize(GetEnvAsUint64("MONGO_MAX_POOL_SIZE", 100)).
		SetMinPoolSize(GetEnvAsUint64("MONGO_MIN_POOL_SIZE", 10)).
		SetMaxConnIdleTime(GetEnvAsDuration("MONGO_MAX_CONN_IDLE_TIME", 60*time.Second)).
		SetRetryWrites(GetEnvAsBool("MONGO_RETRY_WRITES", true))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}

	MongoClient = client
}
