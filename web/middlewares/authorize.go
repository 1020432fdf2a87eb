package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"timeclock.app/timeclock/core"
	"timeclock.app/timeclock/web/common"
)

// RequirePage halts the request when the session role may not view pageID.
// The gate only answers; mapping a deny to 403 happens here.
func RequirePage(gate *core.Gate, pageID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := SessionFromContext(c)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		if !gate.CanAccess(session.Role, pageID) {
			c.AbortWithStatusJSON(http.StatusForbidden, common.NewErrorResponse(core.ErrAccessDenied.Error()))
			return
		}
		c.Next()
	}
}
