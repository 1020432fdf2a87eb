package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"timeclock.app/timeclock/model"
)

type stubRegistry struct {
	pages map[string]model.PagePermission
}

func (r *stubRegistry) Find(pageID string) (*model.PagePermission, error) {
	if p, ok := r.pages[pageID]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *stubRegistry) All() ([]model.PagePermission, error) {
	out := make([]model.PagePermission, 0, len(r.pages))
	for _, p := range r.pages {
		out = append(out, p)
	}
	return out, nil
}

func TestSubmitTokenMonotonic(t *testing.T) {
	gate := NewGate(GateConfig{PresenceToken: "office-qr-2025"}, nil)
	session := &Session{EmployeeID: "maria", Role: "employee"}

	assert.False(t, gate.SubmitToken(session, "wrong"))
	assert.False(t, session.Unlocked)

	assert.True(t, gate.SubmitToken(session, "office-qr-2025"))
	assert.True(t, session.Unlocked)

	// A later bad scan must not re-lock the session.
	assert.True(t, gate.SubmitToken(session, "wrong"))
	assert.True(t, session.Unlocked)
}

func TestSubmitTokenIsolatedPerSession(t *testing.T) {
	gate := NewGate(GateConfig{PresenceToken: "office-qr-2025"}, nil)
	a := &Session{EmployeeID: "maria"}
	b := &Session{EmployeeID: "jorge"}

	gate.SubmitToken(a, "office-qr-2025")
	assert.True(t, a.Unlocked)
	assert.False(t, b.Unlocked)
}

func TestCanAccessRoleMode(t *testing.T) {
	gate := NewGate(GateConfig{Mode: PermissionModeRole}, nil)

	tests := []struct {
		name   string
		role   string
		pageID string
		want   bool
	}{
		{name: "employee on clock page", role: "employee", pageID: "clock", want: true},
		{name: "employee on unknown page", role: "employee", pageID: "payroll", want: false},
		{name: "admin on unknown page", role: "admin", pageID: "payroll", want: true},
		{name: "clock-only role on clock page", role: "clock", pageID: "clock", want: true},
		{name: "clock-only role on adjustments", role: "clock", pageID: "adjustments", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gate.CanAccess(tt.role, tt.pageID))
		})
	}
}

func TestCanAccessMatrixMode(t *testing.T) {
	registry := &stubRegistry{pages: map[string]model.PagePermission{
		"clock": {PageID: "clock", Roles: []string{"employee"}},
	}}
	gate := NewGate(GateConfig{Mode: PermissionModeRolePage}, registry)

	assert.True(t, gate.CanAccess("employee", "clock"))
	assert.False(t, gate.CanAccess("contractor", "clock"))

	// Page absent from the matrix: default deny for everyone but admin.
	assert.False(t, gate.CanAccess("employee", "adjustments"))
	assert.True(t, gate.CanAccess("admin", "adjustments"))
}

func TestRoleModeIgnoresRegistry(t *testing.T) {
	// Registry would deny, but the legacy role mode never consults it.
	registry := &stubRegistry{pages: map[string]model.PagePermission{
		"clock": {PageID: "clock", Roles: []string{"nobody"}},
	}}
	gate := NewGate(GateConfig{Mode: PermissionModeRole}, registry)

	assert.True(t, gate.CanAccess("employee", "clock"))
}
