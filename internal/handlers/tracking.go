package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"backend/internal/store"
	"backend/internal/tracking"
)

type returnRequestBody struct {
	Reason string `json:"reason" binding:"required"`
}

type advanceRequest struct {
	Stage string `json:"stage" binding:"required"`
}

type resolveReturnRequest struct {
	Approve bool `json:"approve"`
}

// GetTracking returns the delivery record for one order. Customer orders are
// visible only to their owner; guest orders only through their order id.
func GetTracking(st *store.Mongo, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /tracking/:orderId"
		defer handlePanic(c, route)

		orderID := c.Param("orderId")
		if !authorizeOrderAccess(c, st, route, orderID, jwtSecret) {
			return
		}

		rec, err := st.GetTracking(c.Request.Context(), orderID)
		if errors.Is(err, store.ErrTrackingNotFound) {
			respondWithError(c, http.StatusNotFound, route, "tracking not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, rec)
	}
}

// RequestReturn opens the return sub-flow for a delivered order. Same access
// rule as GetTracking.
func RequestReturn(st *store.Mongo, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /tracking/:orderId/return"
		defer handlePanic(c, route)

		orderID := c.Param("orderId")
		if !authorizeOrderAccess(c, st, route, orderID, jwtSecret) {
			return
		}

		var req returnRequestBody
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		rec, err := st.GetTracking(c.Request.Context(), orderID)
		if errors.Is(err, store.ErrTrackingNotFound) {
			respondWithError(c, http.StatusNotFound, route, "tracking not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		updated, err := tracking.RequestReturn(rec, req.Reason, time.Now())
		if err != nil {
			respondWithError(c, returnRequestStatus(err), route, err.Error())
			return
		}

		if err := st.UpdateTracking(c.Request.Context(), updated); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[TRACKING] [INFO] return requested for order %s", orderID)
		c.JSON(http.StatusOK, updated)
	}
}

// AdvanceTracking is the fulfillment-side stage update. Stages are strictly
// sequential; skipping one is rejected.
func AdvanceTracking(st *store.Mongo) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/tracking/:orderId/advance"
		defer handlePanic(c, route)

		var req advanceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		stage, err := tracking.ParseStage(req.Stage)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "unknown stage")
			return
		}

		orderID := c.Param("orderId")
		rec, err := st.GetTracking(c.Request.Context(), orderID)
		if errors.Is(err, store.ErrTrackingNotFound) {
			respondWithError(c, http.StatusNotFound, route, "tracking not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		updated, err := tracking.Advance(rec, stage, time.Now())
		if err != nil {
			var illegal tracking.IllegalTransitionError
			if errors.As(err, &illegal) {
				respondWithError(c, http.StatusConflict, route, illegal.Error())
				return
			}
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		if err := st.UpdateTracking(c.Request.Context(), updated); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[TRACKING] [INFO] order %s advanced to %s", orderID, stage)
		c.JSON(http.StatusOK, updated)
	}
}

// ResolveReturn approves or rejects a pending return request.
func ResolveReturn(st *store.Mongo) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/tracking/:orderId/return/resolve"
		defer handlePanic(c, route)

		var req resolveReturnRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		orderID := c.Param("orderId")
		rec, err := st.GetTracking(c.Request.Context(), orderID)
		if errors.Is(err, store.ErrTrackingNotFound) {
			respondWithError(c, http.StatusNotFound, route, "tracking not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		updated, err := tracking.ResolveReturn(rec, req.Approve, time.Now())
		if err != nil {
			respondWithError(c, http.StatusConflict, route, err.Error())
			return
		}

		if err := st.UpdateTracking(c.Request.Context(), updated); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

// authorizeOrderAccess loads the order and enforces orderAccessAllowed,
// writing the error response itself. Returns false when the request must not
// proceed.
func authorizeOrderAccess(c *gin.Context, st *store.Mongo, route, orderID, jwtSecret string) bool {
	userID, _, err := identityFromHeader(c.GetHeader("Authorization"), jwtSecret)
	if err != nil {
		respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
		return false
	}

	order, err := st.GetOrder(c.Request.Context(), orderID)
	if errors.Is(err, store.ErrOrderNotFound) {
		respondWithError(c, http.StatusNotFound, route, "order not found")
		return false
	}
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, route, "db error")
		return false
	}

	if !orderAccessAllowed(order.CustomerID, userID) {
		respondWithError(c, http.StatusForbidden, route, "forbidden")
		return false
	}
	return true
}

func returnRequestStatus(err error) int {
	switch {
	case errors.Is(err, tracking.ErrNotDelivered), errors.Is(err, tracking.ErrReturnOpen):
		return http.StatusConflict
	case errors.Is(err, tracking.ErrEmptyReason):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
