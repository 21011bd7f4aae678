package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const userContextKey = "userID"

// AccessTokenCookie is set at sign-in and read back on later requests.
const AccessTokenCookie = "access_token"

// TokenValidator validates an access token and returns its claims.
type TokenValidator interface {
	ValidateToken(tokenStr, expectedType string) (jwt.MapClaims, error)
}

// Authenticate resolves the optional authenticated user for the
// request. An anonymous request passes through untouched; business
// logic decides what a missing user means.
func Authenticate(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := resolveUser(c, tokens); ok {
			c.Set(userContextKey, userID)
		}
		c.Next()
	}
}

// RequireAuth rejects requests that carry no valid access token.
func RequireAuth(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := resolveUser(c, tokens)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set(userContextKey, userID)
		c.Next()
	}
}

func resolveUser(c *gin.Context, tokens TokenValidator) (uuid.UUID, bool) {
	tokenStr := ""
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		tokenStr = strings.TrimPrefix(header, "Bearer ")
	} else if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
		tokenStr = cookie
	}
	if tokenStr == "" {
		return uuid.Nil, false
	}

	claims, err := tokens.ValidateToken(tokenStr, "access")
	if err != nil {
		return uuid.Nil, false
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
}

// GetUserID returns the authenticated user for the request, if any.
func GetUserID(c *gin.Context) *uuid.UUID {
	if val, ok := c.Get(userContextKey); ok {
		if id, ok := val.(uuid.UUID); ok {
			return &id
		}
	}
	return nil
}
