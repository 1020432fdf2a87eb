package directory

import (
	"fmt"
	"strings"

	"timeclock.app/timeclock/model"
	"timeclock.app/timeclock/utils"
)

// CSVUserDirectory reads users from a flat file with header
// id,password,name,role. The file is re-read on every lookup so edits take
// effect without a restart.
type CSVUserDirectory struct {
	Path string
}

func NewCSVUserDirectory(path string) *CSVUserDirectory {
	return &CSVUserDirectory{Path: path}
}

func (d *CSVUserDirectory) load() ([]model.Employee, error) {
	rows, err := utils.ParseCSVFile(d.Path)
	if err != nil {
		return nil, fmt.Errorf("read user directory: %w", err)
	}

	var users []model.Employee
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 4 {
			return nil, fmt.Errorf("user row %d: expected 4 columns, got %d", i, len(row))
		}
		users = append(users, model.Employee{
			ID:          row[0],
			Password:    row[1],
			DisplayName: row[2],
			Role:        row[3],
		})
	}
	return users, nil
}

func (d *CSVUserDirectory) FindByID(id string) (*model.Employee, error) {
	users, err := d.load()
	if err != nil {
		return nil, err
	}
	return utils.Find(users, func(u model.Employee) bool { return u.ID == id }), nil
}

func (d *CSVUserDirectory) All() ([]model.Employee, error) {
	return d.load()
}

func (d *CSVUserDirectory) Authenticate(id, password string) (bool, error) {
	users, err := d.load()
	if err != nil {
		return false, err
	}
	u := utils.Find(users, func(u model.Employee) bool {
		return u.ID == id && u.Password == password
	})
	return u != nil, nil
}

// CSVPermissionRegistry reads page permissions from a flat file with header
// page_id,name,roles,icon. Roles are pipe separated, e.g. "employee|clock".
type CSVPermissionRegistry struct {
	Path string
}

func NewCSVPermissionRegistry(path string) *CSVPermissionRegistry {
	return &CSVPermissionRegistry{Path: path}
}

func (r *CSVPermissionRegistry) load() ([]model.PagePermission, error) {
	rows, err := utils.ParseCSVFile(r.Path)
	if err != nil {
		return nil, fmt.Errorf("read permission registry: %w", err)
	}

	var pages []model.PagePermission
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 3 {
			return nil, fmt.Errorf("permission row %d: expected at least 3 columns, got %d", i, len(row))
		}
		page := model.PagePermission{
			PageID: row[0],
			Name:   row[1],
			Roles:  splitRoles(row[2]),
		}
		if len(row) > 3 {
			page.Icon = row[3]
		}
		pages = append(pages, page)
	}
	return pages, nil
}

func splitRoles(s string) []string {
	parts := strings.Split(s, "|")
	roles := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			roles = append(roles, p)
		}
	}
	return roles
}

func (r *CSVPermissionRegistry) Find(pageID string) (*model.PagePermission, error) {
	pages, err := r.load()
	if err != nil {
		return nil, err
	}
	return utils.Find(pages, func(p model.PagePermission) bool { return p.PageID == pageID }), nil
}

func (r *CSVPermissionRegistry) All() ([]model.PagePermission, error) {
	return r.load()
}
