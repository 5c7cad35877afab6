package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
	"backend/internal/views"
)

var (
	ErrOrderNotFound         = errors.New("order not found")
	ErrTrackingNotFound      = errors.New("tracking record not found")
	ErrRedemptionNotRecorded = errors.New("coupon redemption not recorded")
)

const (
	cartsCollection       = "carts"
	wishlistsCollection   = "wishlists"
	recentViewsCollection = "recent_views"
	ordersCollection      = "orders"
	trackingCollection    = "tracking"
	couponsCollection     = "coupons"
)

// Mongo is the persistence collaborator backing carts, orders, tracking and
// the coupon catalog.
type Mongo struct {
	db *mongo.Database
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{db: db}
}

/* =========================
   CARTS
========================= */

// LoadCart returns the owner's persisted cart. A cart that was never saved is
// an empty cart, not an error.
func (s *Mongo) LoadCart(ctx context.Context, ownerID string) (models.Cart, error) {
	var doc cartDoc
	err := s.db.Collection(cartsCollection).FindOne(ctx, bson.M{"_id": ownerID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Cart{OwnerID: ownerID}, nil
	}
	if err != nil {
		return models.Cart{}, err
	}
	return fromCartDoc(doc), nil
}

func (s *Mongo) SaveCart(ctx context.Context, c models.Cart) error {
	doc := toCartDoc(c)
	_, err := s.db.Collection(cartsCollection).ReplaceOne(
		ctx,
		bson.M{"_id": c.OwnerID},
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}

/* =========================
   WISHLISTS
========================= */

// LoadWishlist returns the owner's persisted wishlist. A wishlist that was
// never saved is an empty wishlist, not an error.
func (s *Mongo) LoadWishlist(ctx context.Context, ownerID string) (models.Wishlist, error) {
	var doc wishlistDoc
	err := s.db.Collection(wishlistsCollection).FindOne(ctx, bson.M{"_id": ownerID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Wishlist{OwnerID: ownerID}, nil
	}
	if err != nil {
		return models.Wishlist{}, err
	}
	return fromWishlistDoc(doc), nil
}

func (s *Mongo) SaveWishlist(ctx context.Context, w models.Wishlist) error {
	doc := toWishlistDoc(w)
	_, err := s.db.Collection(wishlistsCollection).ReplaceOne(
		ctx,
		bson.M{"_id": w.OwnerID},
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}

/* =========================
   RECENT VIEWS
========================= */

// LoadRecentViews returns the customer's recently-viewed products, newest
// first. No history yet means an empty list.
func (s *Mongo) LoadRecentViews(ctx context.Context, userID string) ([]models.Product, error) {
	var doc recentViewsDoc
	err := s.db.Collection(recentViewsCollection).FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return fromProductSnapshots(doc.Products), nil
}

// RecordRecentView pushes the product onto the customer's recently-viewed
// list: deduplicated, newest first, capped.
func (s *Mongo) RecordRecentView(ctx context.Context, userID string, p models.Product) error {
	current, err := s.LoadRecentViews(ctx, userID)
	if err != nil {
		return err
	}

	doc := recentViewsDoc{
		UserID:    userID,
		Products:  toProductSnapshots(views.Push(current, p)),
		UpdatedAt: time.Now(),
	}
	_, err = s.db.Collection(recentViewsCollection).ReplaceOne(
		ctx,
		bson.M{"_id": userID},
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}

/* =========================
   ORDERS
========================= */

func (s *Mongo) CreateOrder(ctx context.Context, o models.Order) error {
	_, err := s.db.Collection(ordersCollection).InsertOne(ctx, toOrderDoc(o))
	return err
}

func (s *Mongo) GetOrder(ctx context.Context, orderID string) (models.Order, error) {
	var doc orderDoc
	err := s.db.Collection(ordersCollection).FindOne(ctx, bson.M{"_id": orderID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return models.Order{}, err
	}
	return fromOrderDoc(doc), nil
}

// ListOrders returns the customer's order history, newest first.
func (s *Mongo) ListOrders(ctx context.Context, customerID string) ([]models.Order, error) {
	cursor, err := s.db.Collection(ordersCollection).Find(
		ctx,
		bson.M{"customerId": customerID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []orderDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0, len(docs))
	for _, doc := range docs {
		orders = append(orders, fromOrderDoc(doc))
	}
	return orders, nil
}

// CancelOrder deletes the order together with its tracking record in one
// transaction. The delivery-window policy check happens in the handler before
// this is called.
func (s *Mongo) CancelOrder(ctx context.Context, orderID string) error {
	session, err := s.db.Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		res, err := s.db.Collection(ordersCollection).DeleteOne(sessCtx, bson.M{"_id": orderID})
		if err != nil {
			return nil, err
		}
		if res.DeletedCount == 0 {
			return nil, ErrOrderNotFound
		}

		if _, err := s.db.Collection(trackingCollection).DeleteOne(sessCtx, bson.M{"_id": orderID}); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}

/* =========================
   TRACKING
========================= */

// CreateTracking is create-if-absent: retrying after a partial checkout never
// resets flags that fulfillment may already have advanced.
func (s *Mongo) CreateTracking(ctx context.Context, rec models.TrackingRecord) error {
	doc := toTrackingDoc(rec)
	_, err := s.db.Collection(trackingCollection).UpdateOne(
		ctx,
		bson.M{"_id": rec.OrderID},
		bson.M{"$setOnInsert": doc},
		options.Update().SetUpsert(true),
	)
	return err
}

func (s *Mongo) GetTracking(ctx context.Context, orderID string) (models.TrackingRecord, error) {
	var doc trackingDoc
	err := s.db.Collection(trackingCollection).FindOne(ctx, bson.M{"_id": orderID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.TrackingRecord{}, ErrTrackingNotFound
	}
	if err != nil {
		return models.TrackingRecord{}, err
	}
	return fromTrackingDoc(doc), nil
}

func (s *Mongo) UpdateTracking(ctx context.Context, rec models.TrackingRecord) error {
	doc := toTrackingDoc(rec)
	res, err := s.db.Collection(trackingCollection).ReplaceOne(ctx, bson.M{"_id": rec.OrderID}, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrTrackingNotFound
	}
	return nil
}

/* =========================
   COUPONS
========================= */

func (s *Mongo) ListCoupons(ctx context.Context) ([]models.Coupon, error) {
	cursor, err := s.db.Collection(couponsCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []couponDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	coupons := make([]models.Coupon, 0, len(docs))
	for _, doc := range docs {
		coupons = append(coupons, fromCouponDoc(doc))
	}
	return coupons, nil
}

// RecordRedemption bumps usedCount, guarded so it can never pass the usage
// limit even under concurrent checkouts.
func (s *Mongo) RecordRedemption(ctx context.Context, code string) error {
	res, err := s.db.Collection(couponsCollection).UpdateOne(
		ctx,
		bson.M{
			"_id":   code,
			"$expr": bson.M{"$lt": bson.A{"$usedCount", "$usageLimit"}},
		},
		bson.M{"$inc": bson.M{"usedCount": 1}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrRedemptionNotRecorded
	}
	return nil
}

// SeedCoupons inserts the launch catalog when the collection is empty.
func (s *Mongo) SeedCoupons(ctx context.Context, catalog []models.Coupon) error {
	count, err := s.db.Collection(couponsCollection).CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(catalog))
	for _, c := range catalog {
		docs = append(docs, toCouponDoc(c))
	}
	_, err = s.db.Collection(couponsCollection).InsertMany(ctx, docs)
	return err
}
