package store

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/models"
)

// Document types keep the bson shape (and the Decimal128 money encoding)
// out of the domain models.

type cartLineDoc struct {
	ProductID string               `bson:"productId"`
	Title     string               `bson:"title"`
	UnitPrice primitive.Decimal128 `bson:"unitPrice"`
	Image     string               `bson:"image,omitempty"`
	Quantity  int                  `bson:"quantity"`
}

type cartDoc struct {
	OwnerID   string        `bson:"_id"`
	Lines     []cartLineDoc `bson:"lines"`
	UpdatedAt time.Time     `bson:"updatedAt"`
}

type productSnapshotDoc struct {
	ProductID string               `bson:"productId"`
	Title     string               `bson:"title"`
	Price     primitive.Decimal128 `bson:"price"`
	Image     string               `bson:"image,omitempty"`
	Thumbnail string               `bson:"thumbnail,omitempty"`
	Category  string               `bson:"category,omitempty"`
}

type wishlistDoc struct {
	OwnerID   string               `bson:"_id"`
	Items     []productSnapshotDoc `bson:"items"`
	UpdatedAt time.Time            `bson:"updatedAt"`
}

type recentViewsDoc struct {
	UserID    string               `bson:"_id"`
	Products  []productSnapshotDoc `bson:"products"`
	UpdatedAt time.Time            `bson:"updatedAt"`
}

type orderItemDoc struct {
	ProductID string               `bson:"productId"`
	Title     string               `bson:"title"`
	UnitPrice primitive.Decimal128 `bson:"unitPrice"`
	Image     string               `bson:"image,omitempty"`
	Quantity  int                  `bson:"quantity"`
}

type customerInfoDoc struct {
	Name        string `bson:"name"`
	Address     string `bson:"address"`
	Phone       string `bson:"phone"`
	CountryCode string `bson:"countryCode"`
}

type orderDoc struct {
	OrderID        string               `bson:"_id"`
	CustomerID     string               `bson:"customerId,omitempty"`
	CustomerEmail  string               `bson:"customerEmail,omitempty"`
	Customer       customerInfoDoc      `bson:"customer"`
	Items          []orderItemDoc       `bson:"items"`
	Subtotal       primitive.Decimal128 `bson:"subtotal"`
	DiscountAmount primitive.Decimal128 `bson:"discountAmount"`
	CouponCode     string               `bson:"couponCode,omitempty"`
	TotalPrice     primitive.Decimal128 `bson:"totalPrice"`
	CreatedAt      time.Time            `bson:"createdAt"`
}

type returnRequestDoc struct {
	Reason      string    `bson:"reason"`
	Status      string    `bson:"status"`
	RequestedAt time.Time `bson:"requestedAt"`
}

type stageFlagsDoc struct {
	Ordered        bool `bson:"ordered"`
	Shipped        bool `bson:"shipped"`
	OutForDelivery bool `bson:"outForDelivery"`
	Delivered      bool `bson:"delivered"`
}

type trackingDoc struct {
	OrderID       string            `bson:"_id"`
	Status        stageFlagsDoc     `bson:"status"`
	ReturnRequest *returnRequestDoc `bson:"returnRequest,omitempty"`
	UpdatedAt     time.Time         `bson:"updatedAt"`
}

type couponDoc struct {
	Code          string               `bson:"_id"`
	DiscountType  string               `bson:"discountType"`
	DiscountValue primitive.Decimal128 `bson:"discountValue"`
	ExpiryDate    time.Time            `bson:"expiryDate"`
	UsageLimit    int                  `bson:"usageLimit"`
	UsedCount     int                  `bson:"usedCount"`
	Description   string               `bson:"description,omitempty"`
}

// The string form of a finite decimal always round-trips through Decimal128,
// so the parse errors below cannot fire in practice.

func encodeDecimal(d decimal.Decimal) primitive.Decimal128 {
	v, _ := primitive.ParseDecimal128(d.String())
	return v
}

func decodeDecimal(v primitive.Decimal128) decimal.Decimal {
	d, _ := decimal.NewFromString(v.String())
	return d
}

func toCartDoc(c models.Cart) cartDoc {
	lines := make([]cartLineDoc, 0, len(c.Lines))
	for _, l := range c.Lines {
		lines = append(lines, cartLineDoc{
			ProductID: l.ProductID,
			Title:     l.Title,
			UnitPrice: encodeDecimal(l.UnitPrice),
			Image:     l.Image,
			Quantity:  l.Quantity,
		})
	}
	return cartDoc{OwnerID: c.OwnerID, Lines: lines, UpdatedAt: c.UpdatedAt}
}

func fromCartDoc(d cartDoc) models.Cart {
	lines := make([]models.CartLine, 0, len(d.Lines))
	for _, l := range d.Lines {
		lines = append(lines, models.CartLine{
			ProductID: l.ProductID,
			Title:     l.Title,
			UnitPrice: decodeDecimal(l.UnitPrice),
			Image:     l.Image,
			Quantity:  l.Quantity,
		})
	}
	return models.Cart{OwnerID: d.OwnerID, Lines: lines, UpdatedAt: d.UpdatedAt}
}

func toProductSnapshots(products []models.Product) []productSnapshotDoc {
	docs := make([]productSnapshotDoc, 0, len(products))
	for _, p := range products {
		docs = append(docs, productSnapshotDoc{
			ProductID: p.ID,
			Title:     p.Title,
			Price:     encodeDecimal(p.Price),
			Image:     p.Image,
			Thumbnail: p.Thumbnail,
			Category:  p.Category,
		})
	}
	return docs
}

func fromProductSnapshots(docs []productSnapshotDoc) []models.Product {
	products := make([]models.Product, 0, len(docs))
	for _, d := range docs {
		products = append(products, models.Product{
			ID:        d.ProductID,
			Title:     d.Title,
			Price:     decodeDecimal(d.Price),
			Image:     d.Image,
			Thumbnail: d.Thumbnail,
			Category:  d.Category,
		})
	}
	return products
}

func toWishlistDoc(w models.Wishlist) wishlistDoc {
	return wishlistDoc{OwnerID: w.OwnerID, Items: toProductSnapshots(w.Items), UpdatedAt: w.UpdatedAt}
}

func fromWishlistDoc(d wishlistDoc) models.Wishlist {
	return models.Wishlist{OwnerID: d.OwnerID, Items: fromProductSnapshots(d.Items), UpdatedAt: d.UpdatedAt}
}

func toOrderDoc(o models.Order) orderDoc {
	items := make([]orderItemDoc, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemDoc{
			ProductID: it.ProductID,
			Title:     it.Title,
			UnitPrice: encodeDecimal(it.UnitPrice),
			Image:     it.Image,
			Quantity:  it.Quantity,
		})
	}
	return orderDoc{
		OrderID:        o.OrderID,
		CustomerID:     o.CustomerID,
		CustomerEmail:  o.CustomerEmail,
		Customer:       customerInfoDoc(o.Customer),
		Items:          items,
		Subtotal:       encodeDecimal(o.Subtotal),
		DiscountAmount: encodeDecimal(o.DiscountAmount),
		CouponCode:     o.CouponCode,
		TotalPrice:     encodeDecimal(o.TotalPrice),
		CreatedAt:      o.CreatedAt,
	}
}

func fromOrderDoc(d orderDoc) models.Order {
	items := make([]models.OrderItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, models.OrderItem{
			ProductID: it.ProductID,
			Title:     it.Title,
			UnitPrice: decodeDecimal(it.UnitPrice),
			Image:     it.Image,
			Quantity:  it.Quantity,
		})
	}
	return models.Order{
		OrderID:        d.OrderID,
		CustomerID:     d.CustomerID,
		CustomerEmail:  d.CustomerEmail,
		Customer:       models.CustomerInfo(d.Customer),
		Items:          items,
		Subtotal:       decodeDecimal(d.Subtotal),
		DiscountAmount: decodeDecimal(d.DiscountAmount),
		CouponCode:     d.CouponCode,
		TotalPrice:     decodeDecimal(d.TotalPrice),
		CreatedAt:      d.CreatedAt,
	}
}

func toTrackingDoc(rec models.TrackingRecord) trackingDoc {
	doc := trackingDoc{OrderID: rec.OrderID, Status: stageFlagsDoc(rec.Status), UpdatedAt: rec.UpdatedAt}
	if rec.ReturnRequest != nil {
		doc.ReturnRequest = &returnRequestDoc{
			Reason:      rec.ReturnRequest.Reason,
			Status:      string(rec.ReturnRequest.Status),
			RequestedAt: rec.ReturnRequest.RequestedAt,
		}
	}
	return doc
}

func fromTrackingDoc(d trackingDoc) models.TrackingRecord {
	rec := models.TrackingRecord{OrderID: d.OrderID, Status: models.StageFlags(d.Status), UpdatedAt: d.UpdatedAt}
	if d.ReturnRequest != nil {
		rec.ReturnRequest = &models.ReturnRequest{
			Reason:      d.ReturnRequest.Reason,
			Status:      models.ReturnStatus(d.ReturnRequest.Status),
			RequestedAt: d.ReturnRequest.RequestedAt,
		}
	}
	return rec
}

func toCouponDoc(c models.Coupon) couponDoc {
	return couponDoc{
		Code:          c.Code,
		DiscountType:  string(c.DiscountType),
		DiscountValue: encodeDecimal(c.DiscountValue),
		ExpiryDate:    c.ExpiryDate,
		UsageLimit:    c.UsageLimit,
		UsedCount:     c.UsedCount,
		Description:   c.Description,
	}
}

func fromCouponDoc(d couponDoc) models.Coupon {
	return models.Coupon{
		Code:          d.Code,
		DiscountType:  models.DiscountType(d.DiscountType),
		DiscountValue: decodeDecimal(d.DiscountValue),
		ExpiryDate:    d.ExpiryDate,
		UsageLimit:    d.UsageLimit,
		UsedCount:     d.UsedCount,
		Description:   d.Description,
	}
}
