package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"timeclock.app/timeclock/core"
	"timeclock.app/timeclock/directory"
	"timeclock.app/timeclock/security"
	"timeclock.app/timeclock/web/common"
)

type LoginRequest struct {
	ID       string `json:"id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token       string `json:"token"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// LoginHandler validates credentials against the user directory and issues
// a session token. New sessions always start locked.
func LoginHandler(users directory.UserDirectory, base64Secret string, ttlSeconds int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
			return
		}

		ok, err := users.Authenticate(req.ID, req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}
		if !ok {
			c.JSON(http.StatusUnauthorized, common.NewErrorResponse("invalid user or password"))
			return
		}

		user, err := users.FindByID(req.ID)
		if err != nil || user == nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse("user lookup failed"))
			return
		}

		session := &core.Session{EmployeeID: user.ID, Role: user.Role}
		token, err := security.CreateSessionToken(session, user.DisplayName, base64Secret, ttlSeconds)
		if err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, common.NewSuccessResponse(LoginResponse{
			Token:       token,
			DisplayName: user.DisplayName,
			Role:        user.Role,
		}))
	}
}
