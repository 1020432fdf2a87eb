package week

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"timeclock.app/timeclock/core"
	"timeclock.app/timeclock/infrastructure/communication"
	"timeclock.app/timeclock/utils"
	"timeclock.app/timeclock/web/common"
	"timeclock.app/timeclock/web/middlewares"
)

type Endpoint struct {
	ledger   *core.Ledger
	backfill *core.BackfillService
	notifier *communication.Slack // nil when not configured
}

func Register(r *gin.RouterGroup, ledger *core.Ledger, backfill *core.BackfillService, notifier *communication.Slack) {
	endpoint := &Endpoint{ledger: ledger, backfill: backfill, notifier: notifier}
	r.GET("/week", endpoint.Week)
	r.POST("/week/manual", endpoint.Manual)
}

// Week returns the reconciled 7-day view of the ISO week containing the
// date query parameter (today when absent).
func (ep *Endpoint) Week(c *gin.Context) {
	session, ok := middlewares.SessionFromContext(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	ref := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation(utils.DateLayout, raw, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse("invalid date, expected YYYY-MM-DD"))
			return
		}
		ref = parsed
	}

	dates := core.WeekDates(ref)
	events, err := ep.ledger.Query(c.Request.Context(), session.EmployeeID, dates[0], dates[6])
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(core.BuildWeek(events, ref)))
}

type ManualPairRequest struct {
	Date  *common.DateOnly  `json:"date" binding:"required"`
	Entry *common.ClockTime `json:"entry" binding:"required"`
	Exit  *common.ClockTime `json:"exit" binding:"required"`
	Note  string            `json:"note"`
}

// Manual inserts a backfilled entry/exit pair for the session user. The
// presence gate does not apply here; corrections are presumed authorized.
func (ep *Endpoint) Manual(c *gin.Context) {
	session, ok := middlewares.SessionFromContext(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var req ManualPairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	entry, exit, err := ep.backfill.InsertManualPair(
		c.Request.Context(), session.EmployeeID, req.Date.Time, req.Entry.Time, req.Exit.Time, req.Note)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, core.ErrValidation) {
			status = http.StatusBadRequest
		}
		c.JSON(status, common.NewErrorResponse(err.Error()))
		return
	}

	if ep.notifier != nil {
		msg := fmt.Sprintf("manual adjustment: %s on %s (%s - %s)",
			session.EmployeeID, req.Date.Format(utils.DateLayout),
			req.Entry.Format(utils.ClockLayout), req.Exit.Format(utils.ClockLayout))
		if err := ep.notifier.Info(msg); err != nil {
			log.Printf("slack notify failed: %v", err)
		}
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{
		"entry": entry,
		"exit":  exit,
	}))
}
