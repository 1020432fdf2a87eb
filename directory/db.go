package directory

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"timeclock.app/timeclock/core"
	"timeclock.app/timeclock/model"
)

// DBUserDirectory serves users from the employees table in the durable
// store. Used instead of the CSV file when the roster is managed there
// (USER_SOURCE=db); FindByID and Authenticate ignore employees whose end
// date has passed.
type DBUserDirectory struct {
	dm *core.DatabaseManager
}

func NewDBUserDirectory(dm *core.DatabaseManager) *DBUserDirectory {
	return &DBUserDirectory{dm: dm}
}

// EnsureSchema creates the employees table if it does not exist.
func (d *DBUserDirectory) EnsureSchema(ctx context.Context) error {
	if err := d.dm.DB(ctx).AutoMigrate(&model.Employee{}); err != nil {
		return fmt.Errorf("ensure employee schema: %w", err)
	}
	return nil
}

// Save inserts or updates one employee row.
func (d *DBUserDirectory) Save(ctx context.Context, e *model.Employee) error {
	if e.ID == "" {
		return fmt.Errorf("employee id required")
	}
	if err := d.dm.DB(ctx).Save(e).Error; err != nil {
		return fmt.Errorf("save employee %s: %w", e.ID, err)
	}
	return nil
}

func (d *DBUserDirectory) FindByID(id string) (*model.Employee, error) {
	var e model.Employee
	err := d.dm.DB(context.Background()).First(&e, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("find employee %s: %w", id, err)
	}
	if !e.Active() {
		return nil, nil
	}
	return &e, nil
}

func (d *DBUserDirectory) All() ([]model.Employee, error) {
	employees := []model.Employee{}
	err := d.dm.DB(context.Background()).Order("id ASC").Find(&employees).Error
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}

func (d *DBUserDirectory) Authenticate(id, password string) (bool, error) {
	e, err := d.FindByID(id)
	if err != nil {
		return false, err
	}
	return e != nil && e.Password == password, nil
}
