package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"timeclock.app/timeclock/model"
	"timeclock.app/timeclock/utils"
)

// DefaultAdjustmentNote annotates manual pairs submitted without a reason.
const DefaultAdjustmentNote = "manual adjustment"

// BackfillService writes manually supplied entry/exit pairs into the
// ledger. It bypasses the presence gate: manual corrections are presumed
// already authorized by the caller.
type BackfillService struct {
	ledger *Ledger
}

func NewBackfillService(ledger *Ledger) *BackfillService {
	return &BackfillService{ledger: ledger}
}

// InsertManualPair validates and stores one entry/exit pair for a day.
// entry and exit carry only wall-clock values; day supplies the date. The
// two rows are written in one transaction.
func (s *BackfillService) InsertManualPair(ctx context.Context, employeeID string, day time.Time, entry, exit time.Time, note string) (*model.AttendanceEvent, *model.AttendanceEvent, error) {
	if employeeID == "" {
		return nil, nil, fmt.Errorf("%w: employee id required", ErrValidation)
	}

	entryLocal := utils.CombineDateClock(day, entry)
	exitLocal := utils.CombineDateClock(day, exit)
	if !exitLocal.After(entryLocal) {
		return nil, nil, fmt.Errorf("%w: exit time must be after entry time", ErrValidation)
	}

	note = strings.TrimSpace(note)
	if note == "" {
		note = DefaultAdjustmentNote
	}

	entryEvent := manualEvent(employeeID, entryLocal, model.KindEntry, note)
	exitEvent := manualEvent(employeeID, exitLocal, model.KindExit, note)

	if err := s.ledger.AppendPair(ctx, entryEvent, exitEvent); err != nil {
		return nil, nil, err
	}
	return entryEvent, exitEvent, nil
}

func manualEvent(employeeID string, local time.Time, kind, note string) *model.AttendanceEvent {
	return &model.AttendanceEvent{
		EmployeeID:     employeeID,
		LocalTimestamp: local.Format(utils.TimestampLayout),
		UTCTimestamp:   localToUTC(local).Format(utils.TimestampLayout),
		Kind:           kind,
		Note:           note,
		Origin:         model.OriginManualAdjustment,
	}
}

// localToUTC converts a naive local datetime by subtracting the offset in
// force right now, not the offset valid on the target date. Dates across a
// DST transition will be off by the shift; accepted limitation.
func localToUTC(local time.Time) time.Time {
	_, offsetSeconds := time.Now().Zone()
	return local.Add(-time.Duration(offsetSeconds) * time.Second)
}
