package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/models"
)

const productsCollection = "products"

type productDoc struct {
	ID        string               `bson:"_id"`
	Title     string               `bson:"title"`
	Price     primitive.Decimal128 `bson:"price"`
	Image     string               `bson:"image,omitempty"`
	Thumbnail string               `bson:"thumbnail,omitempty"`
	Category  string               `bson:"category,omitempty"`
	CreatedAt time.Time            `bson:"createdAt,omitempty"`
}

func fromProductDoc(d productDoc) models.Product {
	price, _ := decimal.NewFromString(d.Price.String())
	return models.Product{
		ID:        d.ID,
		Title:     d.Title,
		Price:     price,
		Image:     d.Image,
		Thumbnail: d.Thumbnail,
		Category:  d.Category,
	}
}

// Mongo reads the product catalog out of the service's own database.
type Mongo struct {
	db *mongo.Database
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{db: db}
}

func (m *Mongo) GetProduct(ctx context.Context, id string) (models.Product, error) {
	var doc productDoc
	err := m.db.Collection(productsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, err
	}
	return fromProductDoc(doc), nil
}

func (m *Mongo) ListProducts(ctx context.Context, f Filter) ([]models.Product, error) {
	filter := bson.M{}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Search != "" {
		filter["title"] = bson.M{"$regex": f.Search, "$options": "i"}
	}

	cursor, err := m.db.Collection(productsCollection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []productDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(docs))
	for _, doc := range docs {
		products = append(products, fromProductDoc(doc))
	}
	return products, nil
}
