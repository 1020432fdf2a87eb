package core

import "timeclock.app/timeclock/model"

type PermissionMode string

const (
	// PermissionModeRole keeps the legacy fixed role lists, ignoring any
	// registry entries. Kept as an explicit escape hatch, not hidden behavior.
	PermissionModeRole PermissionMode = "role"
	// PermissionModeRolePage consults the permission registry per page.
	PermissionModeRolePage PermissionMode = "rolepage"
)

// PermissionRegistry is the gate's read-only view of page permissions.
type PermissionRegistry interface {
	Find(pageID string) (*model.PagePermission, error)
	All() ([]model.PagePermission, error)
}

// DefaultRolePages are the fixed role lists used in role mode.
var DefaultRolePages = map[string][]string{
	"clock":         {"employee", "clock"},
	"absences":      {"employee", "absence"},
	"adjustments":   {"employee", "adjustment"},
	"notifications": {"employee"},
}

type GateConfig struct {
	// PresenceToken is the decoded QR payload proving physical presence.
	// A static secret: no expiry, no per-use uniqueness.
	PresenceToken string
	Mode          PermissionMode
	// RolePages overrides DefaultRolePages when set (role mode only).
	RolePages map[string][]string
}

type Gate struct {
	cfg      GateConfig
	registry PermissionRegistry
}

func NewGate(cfg GateConfig, registry PermissionRegistry) *Gate {
	if cfg.Mode == "" {
		cfg.Mode = PermissionModeRole
	}
	if cfg.RolePages == nil {
		cfg.RolePages = DefaultRolePages
	}
	return &Gate{cfg: cfg, registry: registry}
}

// SubmitToken compares the scanned token against the expected secret and
// unlocks the session on exact match. A mismatch leaves the session as it
// was; an unlocked session never re-locks here.
func (g *Gate) SubmitToken(s *Session, token string) bool {
	if s.Unlocked {
		return true
	}
	if token == g.cfg.PresenceToken {
		s.Unlocked = true
	}
	return s.Unlocked
}

// CanAccess answers whether role may view pageID. Denial is a policy answer,
// not an error; the caller decides how to surface it.
func (g *Gate) CanAccess(role, pageID string) bool {
	if role == model.RoleAdmin {
		return true
	}

	if g.cfg.Mode == PermissionModeRolePage && g.registry != nil {
		perm, err := g.registry.Find(pageID)
		if err != nil || perm == nil {
			// Unknown page: deny by default.
			return false
		}
		return perm.Allows(role)
	}

	roles, ok := g.cfg.RolePages[pageID]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// Mode reports the active policy mode.
func (g *Gate) Mode() PermissionMode {
	return g.cfg.Mode
}
