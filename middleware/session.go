package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionCookieName is the browser cookie carrying the anonymous cart
// session identifier.
const SessionCookieName = "sessionCartId"

const sessionContextKey = "sessionCartId"

// Session guarantees every request carries a stable session cart ID:
// the cookie value when present, a freshly issued one otherwise. The
// identifier is handed to the service layer as an explicit parameter,
// never read ambiently from inside business logic.
func Session(maxAge time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionCartID, err := c.Cookie(SessionCookieName)
		if err != nil || sessionCartID == "" {
			sessionCartID = uuid.NewString()
			c.SetCookie(SessionCookieName, sessionCartID, int(maxAge.Seconds()), "/", "", false, true)
		}
		c.Set(sessionContextKey, sessionCartID)
		c.Next()
	}
}

// GetSessionCartID returns the session cart ID for the request, or ""
// when the session middleware did not run.
func GetSessionCartID(c *gin.Context) string {
	if val, ok := c.Get(sessionContextKey); ok {
		if id, ok := val.(string); ok {
			return id
		}
	}
	return ""
}
