package core

import (
	"fmt"
	"math"
	"sort"
	"time"

	"timeclock.app/timeclock/model"
	"timeclock.app/timeclock/utils"
)

// Reconcile scans one day's events in timestamp order and reconstructs
// matched entry/exit sessions. An Entry directly followed by an Exit becomes
// one "HH:MM - HH:MM" mark; anything unpaired becomes "HH:MM - ?" and
// contributes no time. Malformed days degrade to partial output, they never
// fail.
func Reconcile(events []model.AttendanceEvent) ([]string, float64) {
	type stamped struct {
		kind string
		at   time.Time
	}

	times := make([]stamped, 0, len(events))
	for _, e := range events {
		at, err := time.Parse(utils.TimestampLayout, e.LocalTimestamp)
		if err != nil {
			continue
		}
		times = append(times, stamped{kind: e.Kind, at: at})
	}
	sort.SliceStable(times, func(i, j int) bool {
		return times[i].at.Before(times[j].at)
	})

	marks := []string{}
	var totalSeconds float64
	i := 0
	for i < len(times) {
		cur := times[i]
		if cur.kind == model.KindEntry && i+1 < len(times) && times[i+1].kind == model.KindExit {
			next := times[i+1]
			marks = append(marks, fmt.Sprintf("%s - %s",
				cur.at.Format(utils.ClockLayout), next.at.Format(utils.ClockLayout)))
			totalSeconds += next.at.Sub(cur.at).Seconds()
			i += 2
			continue
		}
		// Lone entry, or exit with no preceding entry.
		marks = append(marks, fmt.Sprintf("%s - ?", cur.at.Format(utils.ClockLayout)))
		i++
	}

	return marks, round2(totalSeconds / 3600.0)
}

// round2 rounds to 2 decimals, ties away from zero: a 7.5-minute interval
// (0.125h) reports 0.13, where banker's rounding would give 0.12.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// WeekStart returns the Monday of the ISO week containing d.
func WeekStart(d time.Time) time.Time {
	weekday := int(d.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	return day.AddDate(0, 0, -(weekday - 1))
}

// WeekDates returns the seven dates of the ISO week containing d.
func WeekDates(d time.Time) []time.Time {
	start := WeekStart(d)
	dates := make([]time.Time, 7)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}
	return dates
}

type DaySummary struct {
	Date  string   `json:"date"`
	Marks []string `json:"marks"`
	Hours float64  `json:"hours"`
}

type WeekView struct {
	WeekStart  string       `json:"week_start"`
	Days       []DaySummary `json:"days"`
	TotalHours float64      `json:"total_hours"`
}

// BuildWeek composes per-day reconciliation across the ISO week containing
// ref. Events are assigned to days by the date prefix of their local
// timestamp.
func BuildWeek(events []model.AttendanceEvent, ref time.Time) WeekView {
	byDay := utils.GroupBy(events, func(e model.AttendanceEvent) string {
		if len(e.LocalTimestamp) < len(utils.DateLayout) {
			return ""
		}
		return e.LocalTimestamp[:len(utils.DateLayout)]
	})

	view := WeekView{WeekStart: WeekStart(ref).Format(utils.DateLayout)}
	var total float64
	for _, day := range WeekDates(ref) {
		key := day.Format(utils.DateLayout)
		marks, hours := Reconcile(byDay[key])
		view.Days = append(view.Days, DaySummary{Date: key, Marks: marks, Hours: hours})
		total += hours
	}
	view.TotalHours = round2(total)
	return view
}
