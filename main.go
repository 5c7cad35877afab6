package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"backend/internal/cache"
	"backend/internal/cart"
	"backend/internal/catalog"
	"backend/internal/checkout"
	"backend/internal/config"
	"backend/internal/coupon"
	"backend/internal/database"
	"backend/internal/handlers"
	"backend/internal/middleware"
	"backend/internal/notify"
	"backend/internal/store"
	"backend/internal/wishlist"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}
	if err := database.EnsureCartIndexes(db); err != nil {
		log.Printf("cart index warning: %v", err)
	}
	if err := database.EnsureProductIndexes(db); err != nil {
		log.Printf("product index warning: %v", err)
	}

	st := store.NewMongo(db)

	seedCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := st.SeedCoupons(seedCtx, coupon.DefaultCatalog()); err != nil {
		log.Printf("coupon seed warning: %v", err)
	}
	cancel()

	redisCache := cache.NewRedisCache(config.AppEnv.RedisAddr, config.AppEnv.CartCacheTTL)
	cartSvc := cart.NewService(st, redisCache)
	wishSvc := wishlist.NewService(st, redisCache)

	var notifier notify.Notifier = notify.Log{}
	if len(config.AppEnv.KafkaBrokers) > 0 {
		kafkaNotifier := notify.NewKafka(config.AppEnv.KafkaBrokers, config.AppEnv.OrderTopic)
		defer kafkaNotifier.Close()
		notifier = kafkaNotifier
		log.Println("order confirmations publishing to:", config.AppEnv.OrderTopic)
	}

	orch := checkout.NewOrchestrator(st, notifier)
	products := catalog.NewMongo(db)

	secret := config.AppEnv.JWTSecret

	r := gin.Default()

	r.GET("/products", handlers.GetProducts(products))
	r.GET("/products/:id", handlers.GetProduct(products, st, secret))

	r.GET("/cart", handlers.GetCart(cartSvc, secret))
	r.POST("/cart/items", handlers.AddToCart(cartSvc, products, secret))
	r.POST("/cart/items/increase", handlers.IncreaseCartItem(cartSvc, secret))
	r.POST("/cart/items/decrease", handlers.DecreaseCartItem(cartSvc, secret))
	r.POST("/cart/items/remove", handlers.RemoveCartItem(cartSvc, secret))

	r.GET("/wishlist", handlers.GetWishlist(wishSvc, secret))
	r.POST("/wishlist/toggle", handlers.ToggleWishlistItem(wishSvc, products, secret))
	r.POST("/wishlist/items/move-to-cart", handlers.MoveWishlistItemToCart(wishSvc, cartSvc, secret))

	r.GET("/coupons", handlers.ListCoupons(st))
	r.POST("/coupons/apply", handlers.ApplyCoupon(st, cartSvc, secret))

	r.POST("/checkout", handlers.PlaceOrder(orch, cartSvc, st, secret))

	r.GET("/tracking/:orderId", handlers.GetTracking(st, secret))
	r.POST("/tracking/:orderId/return", handlers.RequestReturn(st, secret))

	user := r.Group("/")
	user.Use(middleware.UserAuth(secret))
	{
		user.GET("/orders", handlers.ListOrders(st))
		user.DELETE("/orders/:id", handlers.CancelOrder(st))
		user.GET("/recent-views", handlers.GetRecentViews(st))
	}

	admin := r.Group("/admin/api")
	admin.Use(middleware.AdminAuth(secret))
	{
		admin.POST("/tracking/:orderId/advance", handlers.AdvanceTracking(st))
		admin.POST("/tracking/:orderId/return/resolve", handlers.ResolveReturn(st))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
