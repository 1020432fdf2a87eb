package helper

import (
	"fmt"
	"io"
	"strings"
	"time"

	"timeclock.app/timeclock/model"
	"timeclock.app/timeclock/utils"
)

// Punch is one row of the legacy terminal export. The terminal records
// instants in RFC3339 with the device offset; we re-anchor them to the
// site offset passed by the caller.
type Punch struct {
	EmployeeID string
	Timestamp  time.Time
	Kind       string
	Note       string
}

// ParsePunchCSV reads a legacy export (employee_id,timestamp,action,note)
// and returns punches in a fixed zone at offset seconds east of UTC.
func ParsePunchCSV(r io.Reader, offset int) ([]Punch, error) {
	rows, err := utils.ParseCSV(r)
	if err != nil {
		return nil, err
	}

	loc := time.FixedZone("SITE", offset)

	var punches []Punch
	for i, row := range rows {
		if i == 0 {
			continue
		}

		if len(row) < 3 {
			return nil, fmt.Errorf("row %d: expected at least 3 columns, got %d", i, len(row))
		}

		employeeID := strings.TrimSpace(row[0])
		if employeeID == "" {
			return nil, fmt.Errorf("row %d: empty employee id", i)
		}

		// Terminals disagree on timestamp shape; take RFC3339 or the
		// naive fallback layouts.
		timestamp, err := utils.ParseISOTime(row[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid timestamp: %w", i, err)
		}

		kind, err := mapAction(row[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}

		punch := Punch{
			EmployeeID: employeeID,
			Timestamp:  timestamp.In(loc),
			Kind:       kind,
		}
		if len(row) > 3 {
			punch.Note = strings.TrimSpace(row[3])
		}

		punches = append(punches, punch)
	}

	return punches, nil
}

func mapAction(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in", "entry", "entrada":
		return model.KindEntry, nil
	case "out", "exit", "salida":
		return model.KindExit, nil
	default:
		return "", fmt.Errorf("unknown action %q", s)
	}
}

// ToEvent converts a punch into a ledger row carrying both the site-local
// and the UTC rendering of the instant.
func ToEvent(p Punch) *model.AttendanceEvent {
	return &model.AttendanceEvent{
		EmployeeID:     p.EmployeeID,
		LocalTimestamp: p.Timestamp.Format(utils.TimestampLayout),
		UTCTimestamp:   p.Timestamp.UTC().Format(utils.TimestampLayout),
		Kind:           p.Kind,
		Note:           p.Note,
		Origin:         model.OriginImport,
	}
}
