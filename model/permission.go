package model

// PagePermission maps a page identifier to the roles allowed to view it.
// Owned by the permission registry; the gate only consults it.
type PagePermission struct {
	PageID string
	Name   string
	Roles  []string
	Icon   string
}

func (p *PagePermission) Allows(role string) bool {
	if role == RoleAdmin {
		return true
	}
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}
