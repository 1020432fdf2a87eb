package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"timeclock.app/timeclock/notification"
	"timeclock.app/timeclock/web/common"
	"timeclock.app/timeclock/web/middlewares"
)

// PendingNotificationsHandler lists the session user's unread notices.
func PendingNotificationsHandler(store *notification.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := middlewares.SessionFromContext(c)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		pending, err := store.Pending(session.EmployeeID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, common.NewSuccessResponse(pending))
	}
}

// MarkNotificationsReadHandler flips all of the user's notices to read.
func MarkNotificationsReadHandler(store *notification.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := middlewares.SessionFromContext(c)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		if err := store.MarkAllRead(session.EmployeeID); err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{}))
	}
}
