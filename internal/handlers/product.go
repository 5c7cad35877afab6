package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"backend/internal/catalog"
	"backend/internal/models"
	"backend/internal/store"
)

// GetProducts is the public catalog listing consumed by the storefront UI.
func GetProducts(products catalog.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products"
		defer handlePanic(c, route)

		filter := catalog.Filter{
			Category: c.Query("category"),
			Search:   c.Query("q"),
		}

		list, err := products.ListProducts(c.Request.Context(), filter)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "products could not be fetched")
			return
		}

		c.JSON(http.StatusOK, list)
	}
}

func GetProduct(products catalog.Provider, st *store.Mongo, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products/:id"
		defer handlePanic(c, route)

		product, err := products.GetProduct(c.Request.Context(), c.Param("id"))
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		// Product views feed the signed-in customer's recently-viewed list.
		// Recording is best-effort and never delays the response.
		if userID, _, idErr := identityFromHeader(c.GetHeader("Authorization"), jwtSecret); idErr == nil && userID != "" {
			go func(p models.Product) {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := st.RecordRecentView(ctx, userID, p); err != nil {
					log.Printf("[VIEWS] [WARN] recent view for %s not recorded: %v", userID, err)
				}
			}(product)
		}

		c.JSON(http.StatusOK, product)
	}
}
