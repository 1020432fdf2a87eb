package directory

import (
	"timeclock.app/timeclock/model"
	"timeclock.app/timeclock/utils"
)

// MemoryUserDirectory holds users in memory; used in tests and seeds.
type MemoryUserDirectory struct {
	Users []model.Employee
}

func (d *MemoryUserDirectory) FindByID(id string) (*model.Employee, error) {
	return utils.Find(d.Users, func(u model.Employee) bool { return u.ID == id }), nil
}

func (d *MemoryUserDirectory) All() ([]model.Employee, error) {
	return d.Users, nil
}

func (d *MemoryUserDirectory) Authenticate(id, password string) (bool, error) {
	u := utils.Find(d.Users, func(u model.Employee) bool {
		return u.ID == id && u.Password == password
	})
	return u != nil, nil
}

type MemoryPermissionRegistry struct {
	Pages []model.PagePermission
}

func (r *MemoryPermissionRegistry) Find(pageID string) (*model.PagePermission, error) {
	return utils.Find(r.Pages, func(p model.PagePermission) bool { return p.PageID == pageID }), nil
}

func (r *MemoryPermissionRegistry) All() ([]model.PagePermission, error) {
	return r.Pages, nil
}
