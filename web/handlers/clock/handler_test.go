package clock

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"timeclock.app/timeclock/core"
	"timeclock.app/timeclock/model"
)

const testPresenceToken = "office-door-7f3a"

var testSecret = base64.StdEncoding.EncodeToString([]byte("test-signing-secret-0123456789ab"))

func newTestClockAPI(t *testing.T, session *core.Session) (*gin.Engine, *core.Ledger) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dm, err := core.New(t.TempDir(), "", 1)
	require.NoError(t, err)
	t.Cleanup(func() { dm.Close() })

	ledger := core.NewLedger(dm)
	require.NoError(t, ledger.EnsureSchema(t.Context()))

	gate := core.NewGate(core.GateConfig{PresenceToken: testPresenceToken}, nil)

	r := gin.New()
	grp := r.Group("/api/v1")
	grp.Use(func(c *gin.Context) {
		c.Set("session", session)
		c.Next()
	})
	Register(grp, ledger, gate, testSecret, 3600)
	return r, ledger
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestPunchRefusedWhileLocked(t *testing.T) {
	session := &core.Session{EmployeeID: "1002", Role: "employee"}
	r, ledger := newTestClockAPI(t, session)

	w := postJSON(r, "/api/v1/clock", `{"kind":"Entry"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), core.ErrGateLocked.Error())

	events, err := ledger.Recent(t.Context(), "1002", 10)
	require.NoError(t, err)
	assert.Empty(t, events, "a refused punch must not write a ledger row")
}

func TestPunchStillLockedAfterWrongToken(t *testing.T) {
	session := &core.Session{EmployeeID: "1002", Role: "employee"}
	r, ledger := newTestClockAPI(t, session)

	w := postJSON(r, "/api/v1/gate", `{"token":"not-the-office-code"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data UnlockResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Data.Unlocked)
	assert.Empty(t, resp.Data.Token)

	w = postJSON(r, "/api/v1/clock", `{"kind":"Entry"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	events, err := ledger.Recent(t.Context(), "1002", 10)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestUnlockThenPunch(t *testing.T) {
	session := &core.Session{EmployeeID: "1002", Role: "employee"}
	r, ledger := newTestClockAPI(t, session)

	w := postJSON(r, "/api/v1/gate", `{"token":"`+testPresenceToken+`"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data UnlockResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Unlocked)
	assert.NotEmpty(t, resp.Data.Token, "unlock must issue a refreshed session token")

	w = postJSON(r, "/api/v1/clock", `{"kind":"Entry","note":"site visit"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	events, err := ledger.Recent(t.Context(), "1002", 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, model.KindEntry, events[0].Kind)
	assert.Equal(t, model.OriginLive, events[0].Origin)
	assert.Equal(t, "site visit", events[0].Note)
}

func TestPunchRejectsUnknownKind(t *testing.T) {
	session := &core.Session{EmployeeID: "1002", Role: "employee", Unlocked: true}
	r, ledger := newTestClockAPI(t, session)

	w := postJSON(r, "/api/v1/clock", `{"kind":"Break"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	events, err := ledger.Recent(t.Context(), "1002", 10)
	require.NoError(t, err)
	assert.Empty(t, events)
}
