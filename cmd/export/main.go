package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"timeclock.app/timeclock/core"
	"timeclock.app/timeclock/directory"
	"timeclock.app/timeclock/infrastructure/communication"
	"timeclock.app/timeclock/infrastructure/devops"
	"timeclock.app/timeclock/infrastructure/filesystem"
	"timeclock.app/timeclock/model"
	"timeclock.app/timeclock/utils"
)

// Exports one ISO week of attendance as a workbook, one sheet per employee.
// With -bucket the file is also written to S3; with -email a plain-text
// summary goes out via SES using the addresses from the shared secrets.
func main() {
	dataDir := flag.String("data", utils.FirstNonEmpty(os.Getenv("DATA_DIR"), "./data"), "data directory")
	dsn := flag.String("dsn", os.Getenv("DSN"), "mysql DSN, empty for local sqlite")
	date := flag.String("date", time.Now().Format(utils.DateLayout), "any date inside the week to export")
	out := flag.String("out", "", "output path, defaults to attendance-<week>.xlsx")
	bucket := flag.String("bucket", "", "upload the workbook to this S3 bucket")
	email := flag.Bool("email", false, "send the week summary via SES")
	flag.Parse()

	ref, err := time.ParseInLocation(utils.DateLayout, *date, time.Local)
	if err != nil {
		log.Fatalf("invalid -date: %v", err)
	}

	ctx := context.Background()

	dm, err := core.New(*dataDir, *dsn, 5)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer dm.Close()

	ledger := core.NewLedger(dm)

	var users directory.UserDirectory = directory.NewCSVUserDirectory(*dataDir + "/users.csv")
	if os.Getenv("USER_SOURCE") == "db" {
		users = directory.NewDBUserDirectory(dm)
	}

	all, err := users.All()
	if err != nil {
		log.Fatalf("failed to read user directory: %v", err)
	}
	// Skip employees whose end date has passed; their history stays in the
	// ledger but they have no current week to report.
	employees := utils.Filter(all, func(e model.Employee) bool { return e.Active() })
	if len(employees) == 0 {
		log.Fatalf("no active employees in directory, nothing to export")
	}

	dates := core.WeekDates(ref)
	from, to := dates[0], dates[len(dates)-1]

	f := excelize.NewFile()
	defer f.Close()

	var summary strings.Builder
	weekStart := core.WeekStart(ref).Format(utils.DateLayout)
	fmt.Fprintf(&summary, "Attendance week starting %s\n\n", weekStart)

	for i, emp := range employees {
		events, err := ledger.Query(ctx, emp.ID, from, to)
		if err != nil {
			log.Fatalf("failed to query ledger for %s: %v", emp.ID, err)
		}
		week := core.BuildWeek(events, ref)

		sheet := sheetName(emp.DisplayName, emp.ID)
		if i == 0 {
			f.SetSheetName("Sheet1", sheet)
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				log.Fatalf("failed to create sheet %s: %v", sheet, err)
			}
		}
		writeWeekSheet(f, sheet, week)

		fmt.Fprintf(&summary, "%s (%s): %.2f hours\n", emp.DisplayName, emp.ID, week.TotalHours)
	}

	path := *out
	if path == "" {
		path = fmt.Sprintf("attendance-%s.xlsx", weekStart)
	}
	if err := f.SaveAs(path); err != nil {
		log.Fatalf("failed to save workbook: %v", err)
	}
	fmt.Printf("Wrote %s\n", path)

	if *bucket != "" {
		var buf bytes.Buffer
		if err := f.Write(&buf); err != nil {
			log.Fatalf("failed to serialize workbook: %v", err)
		}
		key := fmt.Sprintf("exports/%s.xlsx", weekStart)
		if err := filesystem.WriteFile(*bucket, key, ctx, &buf); err != nil {
			log.Fatalf("failed to upload to S3: %v", err)
		}
		fmt.Printf("Uploaded s3://%s/%s\n", *bucket, key)
	}

	if *email {
		secrets, err := devops.LoadSecrets(ctx)
		if err != nil {
			log.Fatalf("failed to load secrets: %v", err)
		}
		info := &communication.EmailInfo{
			From:    secrets.SummaryFrom,
			To:      strings.Split(secrets.SummaryTo, ","),
			Subject: fmt.Sprintf("Attendance summary for week %s", weekStart),
			Text:    summary.String(),
		}
		if err := communication.SendEmail(ctx, info); err != nil {
			log.Fatalf("failed to send summary email: %v", err)
		}
		fmt.Printf("Sent summary to %s\n", secrets.SummaryTo)
	}
}

func writeWeekSheet(f *excelize.File, sheet string, week core.WeekView) {
	f.SetCellValue(sheet, "A1", "Date")
	f.SetCellValue(sheet, "B1", "Intervals")
	f.SetCellValue(sheet, "C1", "Hours")

	for i, day := range week.Days {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), day.Date)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), strings.Join(day.Marks, ", "))
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), day.Hours)
	}

	totalRow := len(week.Days) + 2
	f.SetCellValue(sheet, fmt.Sprintf("A%d", totalRow), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("C%d", totalRow), week.TotalHours)
}

// excelize caps sheet names at 31 chars and rejects a handful of characters
func sheetName(displayName, id string) string {
	name := displayName
	if name == "" {
		name = id
	}
	for _, c := range []string{":", "\\", "/", "?", "*", "[", "]"} {
		name = strings.ReplaceAll(name, c, " ")
	}
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}
