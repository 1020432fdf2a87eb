package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"timeclock.app/timeclock/core"
	"timeclock.app/timeclock/security"
	"timeclock.app/timeclock/web/common"
)

const (
	sessionKey     = "session"
	displayNameKey = "displayName"
	// SessionCookie mirrors the browser client's cookie name.
	SessionCookie = "timeclock.Session"
)

func parseJwt(tokenStr string, jwtSecret []byte) (*security.SessionClaims, error) {
	var claims security.SessionClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return &claims, nil
}

// Authentication checks for a valid Bearer token (or the session cookie)
// and places the decoded session on the request context.
func Authentication(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := ""

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			tokenStr = cookie
		} else {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			tokenStr = parts[1]
		}

		claims, err := parseJwt(tokenStr, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("invalid or expired token"))
			return
		}

		c.Set(sessionKey, &core.Session{
			EmployeeID: claims.EmployeeID,
			Role:       claims.Role,
			Unlocked:   claims.Unlocked,
		})
		c.Set(displayNameKey, claims.DisplayName)
		c.Next()
	}
}

// SessionFromContext returns the session the Authentication middleware set.
func SessionFromContext(c *gin.Context) (*core.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*core.Session)
	return s, ok
}

func DisplayNameFromContext(c *gin.Context) string {
	return c.GetString(displayNameKey)
}
