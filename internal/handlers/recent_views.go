package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/internal/models"
	"backend/internal/store"
)

// GetRecentViews returns the authenticated customer's recently-viewed
// products, newest first.
func GetRecentViews(st *store.Mongo) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /recent-views"
		defer handlePanic(c, route)

		userID, ok := c.Get("userId")
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		list, err := st.LoadRecentViews(c.Request.Context(), userID.(string))
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "recent views could not be fetched")
			return
		}
		if list == nil {
			list = []models.Product{}
		}

		c.JSON(http.StatusOK, list)
	}
}
