package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gorm.io/datatypes"
	"timeclock.app/timeclock/core"
	"timeclock.app/timeclock/directory"
	"timeclock.app/timeclock/model"
	"timeclock.app/timeclock/utils"
)

// Seeds a fresh data directory with a small team, the page permission
// matrix and one week of plausible punches, enough to click through the
// app locally.
func main() {
	dataDir := flag.String("data", utils.FirstNonEmpty(os.Getenv("DATA_DIR"), "./data"), "data directory")
	dsn := flag.String("dsn", os.Getenv("DSN"), "mysql DSN, empty for local sqlite")
	flag.Parse()

	if err := os.MkdirAll(*dataDir, 0o755); err != nil {
		log.Fatalf("failed to create data directory: %v", err)
	}

	users := [][]string{
		{"id", "password", "name", "role"},
		{"1001", "changeme", "Ana Torres", "admin"},
		{"1002", "changeme", "Marco Ruiz", "employee"},
		{"1003", "changeme", "Lucia Gomez", "employee"},
		{"1004", "changeme", "Pavel Novak", "supervisor"},
	}
	if err := utils.WriteCSVFile(filepath.Join(*dataDir, "users.csv"), users); err != nil {
		log.Fatalf("failed to write users.csv: %v", err)
	}

	pages := [][]string{
		{"page_id", "name", "roles", "icon"},
		{"clock", "Clock", "admin|employee|supervisor", "clock"},
		{"absences", "Absences", "admin|employee|supervisor", "calendar"},
		{"adjustments", "Adjustments", "admin|supervisor", "pencil"},
		{"notifications", "Notifications", "admin|employee|supervisor", "bell"},
	}
	if err := utils.WriteCSVFile(filepath.Join(*dataDir, "pages.csv"), pages); err != nil {
		log.Fatalf("failed to write pages.csv: %v", err)
	}

	dm, err := core.New(*dataDir, *dsn, 5)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer dm.Close()

	ctx := context.Background()
	ledger := core.NewLedger(dm)
	if err := ledger.EnsureSchema(ctx); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Mirror the roster into the employees table so USER_SOURCE=db works
	// against the same seed.
	roster := directory.NewDBUserDirectory(dm)
	if err := roster.EnsureSchema(ctx); err != nil {
		log.Fatalf("failed to migrate employees: %v", err)
	}
	started := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)
	employees := []model.Employee{
		{ID: "1001", DisplayName: "Ana Torres", Role: "admin", Password: "changeme",
			Email: utils.Ptr("ana@example.com"), StartDate: utils.Ptr(started),
			Attributes: datatypes.JSON(`{"team":"ops"}`)},
		{ID: "1002", DisplayName: "Marco Ruiz", Role: "employee", Password: "changeme",
			Email: utils.Ptr("marco@example.com"), StartDate: utils.Ptr(started),
			Attributes: datatypes.JSON(`{"team":"warehouse"}`)},
		{ID: "1003", DisplayName: "Lucia Gomez", Role: "employee", Password: "changeme",
			Email: utils.Ptr("lucia@example.com"), StartDate: utils.Ptr(started),
			Attributes: datatypes.JSON(`{"team":"warehouse"}`)},
		{ID: "1004", DisplayName: "Pavel Novak", Role: "supervisor", Password: "changeme",
			Email: utils.Ptr("pavel@example.com"), StartDate: utils.Ptr(started),
			Attributes: datatypes.JSON(`{"team":"ops"}`)},
		// Left last quarter; kept for history but cannot log in.
		{ID: "1005", DisplayName: "Iris Chen", Role: "employee", Password: "changeme",
			StartDate: utils.Ptr(started), EndDate: utils.Ptr(time.Now().AddDate(0, -3, 0))},
	}
	for i := range employees {
		if err := roster.Save(ctx, &employees[i]); err != nil {
			log.Fatalf("failed to seed employee: %v", err)
		}
	}

	start := core.WeekStart(time.Now())
	inserted := 0
	for _, id := range []string{"1002", "1003", "1004"} {
		for d := 0; d < 5; d++ {
			day := start.AddDate(0, 0, d)
			entry := day.Add(9 * time.Hour)
			exit := day.Add(17*time.Hour + 30*time.Minute)

			pair := [2]*model.AttendanceEvent{
				seedEvent(id, entry, model.KindEntry),
				seedEvent(id, exit, model.KindExit),
			}
			if err := ledger.AppendPair(ctx, pair[0], pair[1]); err != nil {
				log.Fatalf("failed to insert events for %s: %v", id, err)
			}
			inserted += 2
		}
	}

	fmt.Printf("Seeded %d users, %d pages, %d employees, %d events into %s\n",
		len(users)-1, len(pages)-1, len(employees), inserted, *dataDir)
}

func seedEvent(employeeID string, local time.Time, kind string) *model.AttendanceEvent {
	return &model.AttendanceEvent{
		EmployeeID:     employeeID,
		LocalTimestamp: local.Format(utils.TimestampLayout),
		UTCTimestamp:   local.UTC().Format(utils.TimestampLayout),
		Kind:           kind,
		Origin:         model.OriginLive,
	}
}
