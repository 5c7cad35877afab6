package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/internal/cart"
	"backend/internal/catalog"
	"backend/internal/wishlist"
)

type wishlistItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

func GetWishlist(svc *wishlist.Service, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /wishlist"
		defer handlePanic(c, route)

		ownerID, err := cartOwnerID(c, jwtSecret)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		current, err := svc.Get(c.Request.Context(), ownerID)
		if err != nil {
			log.Printf("[WISHLIST] [ERROR] load failed for %s: %v", ownerID, err)
			respondWithError(c, http.StatusInternalServerError, route, "wishlist could not be loaded")
			return
		}

		c.JSON(http.StatusOK, current)
	}
}

// ToggleWishlistItem flips the product in and out of the owner's wishlist.
// The response reports the resulting membership so the UI can render the
// heart without a second request.
func ToggleWishlistItem(svc *wishlist.Service, products catalog.Provider, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /wishlist/toggle"
		defer handlePanic(c, route)

		ownerID, err := cartOwnerID(c, jwtSecret)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		var req wishlistItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		product, err := products.GetProduct(c.Request.Context(), req.ProductID)
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "catalog unavailable")
			return
		}

		updated, favorited, err := svc.Toggle(c.Request.Context(), ownerID, product)
		if err != nil {
			log.Printf("[WISHLIST] [ERROR] toggle failed for %s: %v", ownerID, err)
			respondWithError(c, http.StatusInternalServerError, route, "wishlist could not be updated")
			return
		}

		c.JSON(http.StatusOK, gin.H{"wishlist": updated, "favorited": favorited})
	}
}

// MoveWishlistItemToCart is the wishlist page's add-to-cart action: the item
// goes into the cart and leaves the wishlist.
func MoveWishlistItemToCart(svc *wishlist.Service, carts *cart.Service, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /wishlist/items/move-to-cart"
		defer handlePanic(c, route)

		ownerID, err := cartOwnerID(c, jwtSecret)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		var req wishlistItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		current, err := svc.Get(c.Request.Context(), ownerID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "wishlist could not be loaded")
			return
		}

		product, ok := wishlist.Find(current, req.ProductID)
		if !ok {
			respondWithError(c, http.StatusNotFound, route, "product not in wishlist")
			return
		}

		updatedCart, err := carts.AddItem(c.Request.Context(), ownerID, product, 1)
		if err != nil {
			log.Printf("[WISHLIST] [ERROR] move to cart failed for %s: %v", ownerID, err)
			respondWithError(c, http.StatusInternalServerError, route, "cart could not be updated")
			return
		}

		updatedList, err := svc.Remove(c.Request.Context(), ownerID, req.ProductID)
		if err != nil {
			// The item is already in the cart; only the unfavorite is pending.
			log.Printf("[WISHLIST] [ERROR] remove after move failed for %s: %v", ownerID, err)
			respondWithError(c, http.StatusInternalServerError, route, "wishlist could not be updated")
			return
		}

		c.JSON(http.StatusOK, gin.H{"cart": updatedCart, "wishlist": updatedList})
	}
}
