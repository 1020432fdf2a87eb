package clock

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"timeclock.app/timeclock/core"
	"timeclock.app/timeclock/model"
	"timeclock.app/timeclock/security"
	"timeclock.app/timeclock/web/common"
	"timeclock.app/timeclock/web/middlewares"
)

type Endpoint struct {
	ledger       *core.Ledger
	gate         *core.Gate
	base64Secret string
	tokenTTL     int64
}

func Register(r *gin.RouterGroup, ledger *core.Ledger, gate *core.Gate, base64Secret string, tokenTTL int64) {
	endpoint := &Endpoint{ledger: ledger, gate: gate, base64Secret: base64Secret, tokenTTL: tokenTTL}
	r.POST("/gate", endpoint.Unlock)
	r.POST("/clock", endpoint.Punch)
	r.GET("/clock/history", endpoint.History)
}

type UnlockRequest struct {
	// Token is the decoded payload of the scanned office QR code.
	Token string `json:"token" binding:"required"`
}

type UnlockResponse struct {
	Unlocked bool   `json:"unlocked"`
	Token    string `json:"token,omitempty"`
}

// Unlock submits the presence token for this session. On success a
// refreshed session JWT carrying the unlocked state is returned.
func (ep *Endpoint) Unlock(c *gin.Context) {
	session, ok := middlewares.SessionFromContext(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var req UnlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	if !ep.gate.SubmitToken(session, req.Token) {
		c.JSON(http.StatusOK, common.NewSuccessResponse(UnlockResponse{Unlocked: false}))
		return
	}

	token, err := security.CreateSessionToken(session, middlewares.DisplayNameFromContext(c), ep.base64Secret, ep.tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(UnlockResponse{Unlocked: true, Token: token}))
}

type PunchRequest struct {
	Kind string `json:"kind" binding:"required,oneof=Entry Exit"`
	Note string `json:"note"`
}

// Punch appends a live clock event for the session user. Refused while the
// presence gate is locked.
func (ep *Endpoint) Punch(c *gin.Context) {
	session, ok := middlewares.SessionFromContext(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	if !session.Unlocked {
		c.JSON(http.StatusForbidden, common.NewErrorResponse(core.ErrGateLocked.Error()))
		return
	}

	var req PunchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	event, err := ep.ledger.Append(c.Request.Context(), session.EmployeeID, req.Kind, req.Note, model.OriginLive)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, core.ErrValidation) {
			status = http.StatusBadRequest
		}
		c.JSON(status, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(event))
}

// History lists the session user's latest events, newest first.
func (ep *Endpoint) History(c *gin.Context) {
	session, ok := middlewares.SessionFromContext(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	limit := 200
	if val, err := strconv.Atoi(c.Query("limit")); err == nil && val > 0 {
		limit = val
	}

	events, err := ep.ledger.Recent(c.Request.Context(), session.EmployeeID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(events))
}
