package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"backend/internal/cart"
	"backend/internal/coupon"
	"backend/internal/store"
)

type applyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// ListCoupons powers the available-coupons panel on the checkout page.
func ListCoupons(st *store.Mongo) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /coupons"
		defer handlePanic(c, route)

		coupons, err := st.ListCoupons(c.Request.Context())
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "coupons could not be fetched")
			return
		}

		c.JSON(http.StatusOK, coupons)
	}
}

// ApplyCoupon validates the code against the catalog and prices it against
// the caller's current cart. Rejections never block checkout; the customer
// simply proceeds without a discount.
func ApplyCoupon(st *store.Mongo, svc *cart.Service, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /coupons/apply"
		defer handlePanic(c, route)

		ownerID, err := cartOwnerID(c, jwtSecret)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		var req applyCouponRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		catalog, err := st.ListCoupons(c.Request.Context())
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "coupons could not be fetched")
			return
		}

		validated, err := coupon.Evaluate(req.Code, catalog, time.Now())
		if err != nil {
			respondWithError(c, http.StatusUnprocessableEntity, route, couponRejection(err))
			return
		}

		current, err := svc.Get(c.Request.Context(), ownerID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart could not be loaded")
			return
		}

		applied := coupon.Apply(validated, cart.Subtotal(current))
		c.JSON(http.StatusOK, applied)
	}
}

func couponRejection(err error) string {
	switch {
	case errors.Is(err, coupon.ErrExpired):
		return "coupon has expired"
	case errors.Is(err, coupon.ErrLimitReached):
		return "coupon usage limit reached"
	default:
		return "invalid coupon"
	}
}
