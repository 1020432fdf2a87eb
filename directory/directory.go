// Package directory provides the lookup collaborators the attendance core
// depends on: the user directory and the page permission registry. The CSV
// and in-memory implementations are interchangeable.
package directory

import "timeclock.app/timeclock/model"

type UserDirectory interface {
	FindByID(id string) (*model.Employee, error)
	All() ([]model.Employee, error)
	// Authenticate reports whether the id/password pair matches a known user.
	Authenticate(id, password string) (bool, error)
}

type PermissionRegistry interface {
	Find(pageID string) (*model.PagePermission, error)
	All() ([]model.PagePermission, error)
}
