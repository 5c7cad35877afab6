package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/internal/cart"
	"backend/internal/catalog"
	"backend/internal/models"
)

type addToCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type cartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

func GetCart(svc *cart.Service, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /cart"
		defer handlePanic(c, route)

		ownerID, err := cartOwnerID(c, jwtSecret)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		current, err := svc.Get(c.Request.Context(), ownerID)
		if err != nil {
			log.Printf("[CART] [ERROR] load failed for %s: %v", ownerID, err)
			respondWithError(c, http.StatusInternalServerError, route, "cart could not be loaded")
			return
		}

		c.JSON(http.StatusOK, current)
	}
}

func AddToCart(svc *cart.Service, products catalog.Provider, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /cart/items"
		defer handlePanic(c, route)

		ownerID, err := cartOwnerID(c, jwtSecret)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		var req addToCartRequest
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

		updated, err := svc.AddItem(c.Request.Context(), ownerID, product, req.Quantity)
		if err != nil {
			log.Printf("[CART] [ERROR] add item failed for %s: %v", ownerID, err)
			respondWithError(c, http.StatusInternalServerError, route, "cart could not be updated")
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

func IncreaseCartItem(svc *cart.Service, jwtSecret string) gin.HandlerFunc {
	return cartMutation(jwtSecret, "POST /cart/items/increase", svc.Increase)
}

func DecreaseCartItem(svc *cart.Service, jwtSecret string) gin.HandlerFunc {
	return cartMutation(jwtSecret, "POST /cart/items/decrease", svc.Decrease)
}

func RemoveCartItem(svc *cart.Service, jwtSecret string) gin.HandlerFunc {
	return cartMutation(jwtSecret, "POST /cart/items/remove", svc.Remove)
}

func cartMutation(
	jwtSecret string,
	route string,
	op func(ctx context.Context, ownerID, productID string) (models.Cart, error),
) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, route)

		ownerID, err := cartOwnerID(c, jwtSecret)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		var req cartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		updated, err := op(c.Request.Context(), ownerID, req.ProductID)
		if err != nil {
			log.Printf("[CART] [ERROR] %s failed for %s: %v", route, ownerID, err)
			respondWithError(c, http.StatusInternalServerError, route, "cart could not be updated")
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}
