package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		log.Printf("[%s] panic recovered: %v", route, r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	log.Printf("[%s] returning error %d: %s", route, status, message)
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// identityFromHeader parses an optional bearer token. An absent header is a
// guest, not an error; a present-but-invalid token is an error.
func identityFromHeader(header, secret string) (userID, email string, err error) {
	raw := strings.TrimSpace(header)
	if raw == "" {
		return "", "", nil
	}

	parts := strings.Split(raw, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", "", errors.New("invalid token format")
	}

	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid token claims")
	}

	userID, _ = claims["userId"].(string)
	email, _ = claims["email"].(string)
	if strings.TrimSpace(userID) == "" {
		return "", "", errors.New("userId claim missing")
	}
	return userID, email, nil
}

// cartOwnerID resolves who owns the cart for this request: the authenticated
// user when a token is present, otherwise the anonymous session id. Every
// cart has exactly one owner.
func cartOwnerID(c *gin.Context, secret string) (string, error) {
	userID, _, err := identityFromHeader(c.GetHeader("Authorization"), secret)
	if err != nil {
		return "", err
	}
	return sessionOwnerID(c, userID)
}

// sessionOwnerID resolves the owner for an already-verified identity, so
// handlers that need both the identity and the owner parse the token once.
func sessionOwnerID(c *gin.Context, userID string) (string, error) {
	if userID != "" {
		return userID, nil
	}

	sessionID := strings.TrimSpace(c.GetHeader("X-Session-Id"))
	if sessionID == "" {
		return "", errors.New("missing session")
	}
	return sessionID, nil
}

// orderAccessAllowed gates order-scoped endpoints: an order placed by a
// signed-in customer is reachable only by that customer, a guest order only
// through its order id.
func orderAccessAllowed(orderCustomerID, userID string) bool {
	return orderCustomerID == "" || orderCustomerID == userID
}
