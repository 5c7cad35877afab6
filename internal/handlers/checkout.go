package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"backend/internal/cart"
	"backend/internal/checkout"
	"backend/internal/coupon"
	"backend/internal/store"
)

type placeOrderRequest struct {
	Shipping   checkout.ShippingInfo `json:"shipping" binding:"required"`
	CouponCode string                `json:"couponCode"`
}

// PlaceOrder is the checkout endpoint. Guests are allowed; an Authorization
// header attaches the order to the customer's history.
func PlaceOrder(orch *checkout.Orchestrator, svc *cart.Service, st *store.Mongo, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /checkout"
		defer handlePanic(c, route)

		userID, email, err := identityFromHeader(c.GetHeader("Authorization"), jwtSecret)
		if err != nil {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		ownerID, err := sessionOwnerID(c, userID)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		var req placeOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		current, err := svc.Get(c.Request.Context(), ownerID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart could not be loaded")
			return
		}
		current.OwnerID = ownerID

		input := checkout.Input{
			Cart:          current,
			Shipping:      req.Shipping,
			CustomerID:    userID,
			CustomerEmail: email,
		}

		if req.CouponCode != "" {
			catalog, err := st.ListCoupons(c.Request.Context())
			if err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "coupons could not be fetched")
				return
			}
			validated, err := coupon.Evaluate(req.CouponCode, catalog, time.Now())
			if err != nil {
				respondWithError(c, http.StatusUnprocessableEntity, route, couponRejection(err))
				return
			}
			applied := coupon.Apply(validated, cart.Subtotal(current))
			input.Discount = &applied
		}

		order, err := orch.PlaceOrder(c.Request.Context(), input)
		if err != nil {
			status, message := checkoutFailure(err)
			respondWithError(c, status, route, message)
			return
		}

		// Advisory: redemption bookkeeping never affects the placed order.
		if order.CouponCode != "" {
			if err := st.RecordRedemption(c.Request.Context(), order.CouponCode); err != nil {
				log.Printf("[CHECKOUT] [WARN] redemption for %s not recorded: %v", order.CouponCode, err)
			}
		}

		svc.Invalidate(c.Request.Context(), ownerID)

		if userID != "" {
			log.Printf("[CHECKOUT] [INFO] order %s created for user %s", order.OrderID, userID)
		} else {
			log.Printf("[CHECKOUT] [INFO] guest order %s created", order.OrderID)
		}

		c.JSON(http.StatusCreated, gin.H{
			"orderId":    order.OrderID,
			"totalPrice": order.TotalPrice,
			"message":    "order placed",
		})
	}
}

func checkoutFailure(err error) (int, string) {
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		return http.StatusBadRequest, "cart is empty"
	case errors.Is(err, checkout.ErrTermsNotAccepted):
		return http.StatusBadRequest, "please agree to the terms"
	case errors.Is(err, checkout.ErrInvalidPhone):
		return http.StatusBadRequest, "invalid phone number"
	case errors.Is(err, checkout.ErrInvalidDiscount):
		return http.StatusBadRequest, "discount no longer applies to this cart"
	}

	var pe *checkout.PersistenceError
	if errors.As(err, &pe) {
		// The order may exist without its tracking record; the customer is
		// told to check their orders rather than resubmit blindly.
		return http.StatusServiceUnavailable, "order may not have been placed, please check your orders"
	}
	return http.StatusInternalServerError, "order could not be placed"
}
