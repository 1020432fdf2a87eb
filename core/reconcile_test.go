package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"timeclock.app/timeclock/model"
)

func event(kind, local string) model.AttendanceEvent {
	return model.AttendanceEvent{
		EmployeeID:     "maria",
		Kind:           kind,
		LocalTimestamp: local,
		UTCTimestamp:   local,
		Origin:         model.OriginLive,
	}
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name      string
		events    []model.AttendanceEvent
		wantMarks []string
		wantHours float64
	}{
		{
			name:      "empty day",
			events:    nil,
			wantMarks: []string{},
			wantHours: 0,
		},
		{
			name: "single pair",
			events: []model.AttendanceEvent{
				event(model.KindEntry, "2024-03-04 09:00:00"),
				event(model.KindExit, "2024-03-04 17:00:00"),
			},
			wantMarks: []string{"09:00 - 17:00"},
			wantHours: 8.0,
		},
		{
			name: "lone entry",
			events: []model.AttendanceEvent{
				event(model.KindEntry, "2024-03-04 09:00:00"),
			},
			wantMarks: []string{"09:00 - ?"},
			wantHours: 0.0,
		},
		{
			name: "lone exit",
			events: []model.AttendanceEvent{
				event(model.KindExit, "2024-03-04 17:00:00"),
			},
			wantMarks: []string{"17:00 - ?"},
			wantHours: 0.0,
		},
		{
			name: "two pairs with lunch break",
			events: []model.AttendanceEvent{
				event(model.KindEntry, "2024-03-04 09:00:00"),
				event(model.KindExit, "2024-03-04 13:00:00"),
				event(model.KindEntry, "2024-03-04 14:00:00"),
				event(model.KindExit, "2024-03-04 18:00:00"),
			},
			wantMarks: []string{"09:00 - 13:00", "14:00 - 18:00"},
			wantHours: 8.0,
		},
		{
			name: "double entry then exit",
			events: []model.AttendanceEvent{
				event(model.KindEntry, "2024-03-04 09:00:00"),
				event(model.KindEntry, "2024-03-04 10:00:00"),
				event(model.KindExit, "2024-03-04 18:00:00"),
			},
			wantMarks: []string{"09:00 - ?", "10:00 - 18:00"},
			wantHours: 8.0,
		},
		{
			name: "exit before any entry",
			events: []model.AttendanceEvent{
				event(model.KindExit, "2024-03-04 08:00:00"),
				event(model.KindEntry, "2024-03-04 09:00:00"),
				event(model.KindExit, "2024-03-04 12:30:00"),
			},
			wantMarks: []string{"08:00 - ?", "09:00 - 12:30"},
			wantHours: 3.5,
		},
		{
			name: "out of order input is sorted first",
			events: []model.AttendanceEvent{
				event(model.KindExit, "2024-03-04 17:00:00"),
				event(model.KindEntry, "2024-03-04 09:00:00"),
			},
			wantMarks: []string{"09:00 - 17:00"},
			wantHours: 8.0,
		},
		{
			name: "unparseable timestamp is skipped",
			events: []model.AttendanceEvent{
				event(model.KindEntry, "not a timestamp"),
				event(model.KindEntry, "2024-03-04 09:00:00"),
				event(model.KindExit, "2024-03-04 10:15:00"),
			},
			wantMarks: []string{"09:00 - 10:15"},
			wantHours: 1.25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			marks, hours := Reconcile(tt.events)
			assert.Equal(t, tt.wantMarks, marks)
			assert.Equal(t, tt.wantHours, hours)
		})
	}
}

func TestReconcileRounding(t *testing.T) {
	marks, hours := Reconcile([]model.AttendanceEvent{
		event(model.KindEntry, "2024-03-04 09:00:00"),
		event(model.KindExit, "2024-03-04 09:20:00"),
	})
	assert.Equal(t, []string{"09:00 - 09:20"}, marks)
	assert.Equal(t, 0.33, hours)
}

func TestReconcileRoundsTiesAwayFromZero(t *testing.T) {
	// 7m30s = 0.125h sits exactly on the tie.
	_, hours := Reconcile([]model.AttendanceEvent{
		event(model.KindEntry, "2024-03-04 09:00:00"),
		event(model.KindExit, "2024-03-04 09:07:30"),
	})
	assert.Equal(t, 0.13, hours)
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		day  string
		want string
	}{
		{name: "monday stays", day: "2024-03-04", want: "2024-03-04"},
		{name: "wednesday", day: "2024-03-06", want: "2024-03-04"},
		{name: "sunday belongs to preceding monday", day: "2024-03-10", want: "2024-03-04"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeekStart(mustDate(t, tt.day))
			assert.Equal(t, tt.want, got.Format("2006-01-02"))
		})
	}
}

func TestWeekDates(t *testing.T) {
	dates := WeekDates(mustDate(t, "2024-03-06"))
	assert.Len(t, dates, 7)
	assert.Equal(t, "2024-03-04", dates[0].Format("2006-01-02"))
	assert.Equal(t, "2024-03-10", dates[6].Format("2006-01-02"))
}

func TestBuildWeek(t *testing.T) {
	events := []model.AttendanceEvent{
		event(model.KindEntry, "2024-03-04 09:00:00"),
		event(model.KindExit, "2024-03-04 17:00:00"),
		event(model.KindEntry, "2024-03-05 09:30:00"),
		// Outside the week; must not leak in.
		event(model.KindEntry, "2024-03-11 09:00:00"),
		event(model.KindExit, "2024-03-11 17:00:00"),
	}

	view := BuildWeek(events, mustDate(t, "2024-03-06"))
	assert.Equal(t, "2024-03-04", view.WeekStart)
	assert.Len(t, view.Days, 7)
	assert.Equal(t, []string{"09:00 - 17:00"}, view.Days[0].Marks)
	assert.Equal(t, 8.0, view.Days[0].Hours)
	assert.Equal(t, []string{"09:30 - ?"}, view.Days[1].Marks)
	assert.Equal(t, 0.0, view.Days[1].Hours)
	for i := 2; i < 7; i++ {
		assert.Empty(t, view.Days[i].Marks)
	}
	assert.Equal(t, 8.0, view.TotalHours)
}
