package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("orders").Indexes()

	customerIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "customerId", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("customerId_createdAt"),
	}

	log.Println("EnsureOrderIndexes: creating customerId_createdAt index")
	_, err := indexes.CreateOne(ctx, customerIndex)
	if err != nil {
		log.Println("EnsureOrderIndexes: customerId index error:", err)
		return err
	}
	log.Println("EnsureOrderIndexes: customerId_createdAt index created")
	return nil
}

func EnsureCartIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("carts").Indexes()

	// Abandoned anonymous carts expire after 30 days.
	updatedIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "updatedAt", Value: 1}},
		Options: options.Index().
			SetName("updatedAt_ttl").
			SetExpireAfterSeconds(30 * 24 * 3600),
	}

	log.Println("EnsureCartIndexes: creating updatedAt_ttl index")
	_, err := indexes.CreateOne(ctx, updatedIndex)
	if err != nil {
		log.Println("EnsureCartIndexes: updatedAt index error:", err)
		return err
	}
	log.Println("EnsureCartIndexes: updatedAt_ttl index created")
	return nil
}

func EnsureProductIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("products").Indexes()

	categoryIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "category", Value: 1}},
		Options: options.Index().SetName("category_index"),
	}

	log.Println("EnsureProductIndexes: creating category_index")
	_, err := indexes.CreateOne(ctx, categoryIndex)
	if err != nil {
		log.Println("EnsureProductIndexes: category index error:", err)
		return err
	}
	log.Println("EnsureProductIndexes: category_index created")
	return nil
}
