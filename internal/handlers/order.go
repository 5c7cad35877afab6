package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/internal/store"
	"backend/internal/tracking"
)

// ListOrders returns the authenticated customer's order history.
func ListOrders(st *store.Mongo) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders"
		defer handlePanic(c, route)

		userID, ok := c.Get("userId")
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		orders, err := st.ListOrders(c.Request.Context(), userID.(string))
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "orders could not be fetched")
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

// CancelOrder deletes the order and its tracking record. Policy: only before
// delivery. The state machine owns that check; the handler just enforces it.
func CancelOrder(st *store.Mongo) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /orders/:id"
		defer handlePanic(c, route)

		orderID := c.Param("id")

		userID, ok := c.Get("userId")
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		order, err := st.GetOrder(c.Request.Context(), orderID)
		if errors.Is(err, store.ErrOrderNotFound) {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if order.CustomerID != userID.(string) {
			respondWithError(c, http.StatusForbidden, route, "forbidden")
			return
		}

		rec, err := st.GetTracking(c.Request.Context(), orderID)
		if err != nil && !errors.Is(err, store.ErrTrackingNotFound) {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if err == nil {
			if policyErr := tracking.CanCancel(rec); policyErr != nil {
				respondWithError(c, http.StatusConflict, route, "delivered orders cannot be cancelled")
				return
			}
		}

		if err := st.CancelOrder(c.Request.Context(), orderID); err != nil {
			if errors.Is(err, store.ErrOrderNotFound) {
				respondWithError(c, http.StatusNotFound, route, "order not found")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[ORDER] [INFO] order %s cancelled by %s", orderID, userID)
		c.JSON(http.StatusOK, gin.H{"message": "order cancelled"})
	}
}
