package core

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"timeclock.app/timeclock/model"
	"timeclock.app/timeclock/utils"
)

// Ledger is the append-only store of attendance events. There is no update
// or delete path: corrections are new rows with origin manual_adjustment.
type Ledger struct {
	dm *DatabaseManager
}

func NewLedger(dm *DatabaseManager) *Ledger {
	return &Ledger{dm: dm}
}

// EnsureSchema creates the events table if it does not exist. Safe to call
// on every startup.
func (l *Ledger) EnsureSchema(ctx context.Context) error {
	if err := l.dm.DB(ctx).AutoMigrate(&model.AttendanceEvent{}); err != nil {
		return fmt.Errorf("%w: ensure schema: %v", ErrStorage, err)
	}
	return nil
}

// Append records a clock action at the current instant, capturing both the
// local and the UTC wall clock, and returns the stored row.
func (l *Ledger) Append(ctx context.Context, employeeID, kind, note, origin string) (*model.AttendanceEvent, error) {
	if employeeID == "" {
		return nil, fmt.Errorf("%w: employee id required", ErrValidation)
	}
	if !model.ValidKind(kind) {
		return nil, fmt.Errorf("%w: kind must be %s or %s", ErrValidation, model.KindEntry, model.KindExit)
	}
	if origin == "" {
		origin = model.OriginLive
	}

	now := time.Now()
	event := &model.AttendanceEvent{
		EmployeeID:     employeeID,
		LocalTimestamp: now.Format(utils.TimestampLayout),
		UTCTimestamp:   now.UTC().Format(utils.TimestampLayout),
		Kind:           kind,
		Note:           note,
		Origin:         origin,
	}

	if err := l.dm.DB(ctx).Create(event).Error; err != nil {
		return nil, fmt.Errorf("%w: append: %v", ErrStorage, err)
	}
	return event, nil
}

// AppendPair writes two prepared events in a single transaction, so a
// failure between them cannot leave an unpaired row.
func (l *Ledger) AppendPair(ctx context.Context, entry, exit *model.AttendanceEvent) error {
	err := l.dm.DB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		return tx.Create(exit).Error
	})
	if err != nil {
		return fmt.Errorf("%w: append pair: %v", ErrStorage, err)
	}
	return nil
}

// Query returns the employee's events whose local timestamp falls on a day
// between from and to inclusive, ordered by (local timestamp, id) ascending.
// An empty range yields an empty slice.
func (l *Ledger) Query(ctx context.Context, employeeID string, from, to time.Time) ([]model.AttendanceEvent, error) {
	events := []model.AttendanceEvent{}
	err := l.dm.DB(ctx).
		Where("employee_id = ?", employeeID).
		Where("local_timestamp >= ? AND local_timestamp <= ?",
			from.Format(utils.DateLayout)+" 00:00:00",
			to.Format(utils.DateLayout)+" 23:59:59").
		Order("local_timestamp ASC, id ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("%w: query: %v", ErrStorage, err)
	}
	return events, nil
}

// Recent returns the employee's latest events, newest first.
func (l *Ledger) Recent(ctx context.Context, employeeID string, limit int) ([]model.AttendanceEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	events := []model.AttendanceEvent{}
	err := l.dm.DB(ctx).
		Where("employee_id = ?", employeeID).
		Order("id DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("%w: recent: %v", ErrStorage, err)
	}
	return events, nil
}
