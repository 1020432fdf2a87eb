package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"timeclock.app/timeclock/core"
	"timeclock.app/timeclock/infrastructure/filesystem"
	"timeclock.app/timeclock/lambdas/importledger/helper"
	"timeclock.app/timeclock/utils"
)

type ImportEvent struct {
	Bucket        string `json:"bucket"`
	Key           string `json:"key"`
	OffsetSeconds int    `json:"offsetSeconds"`
	DryRun        bool   `json:"dryRun"`
}

type ImportStats struct {
	Parsed   int `json:"parsed"`
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

func ImportPunches(ctx context.Context, event ImportEvent) (*ImportStats, error) {
	if event.Bucket == "" || event.Key == "" {
		return nil, fmt.Errorf("bucket and key are required")
	}

	fmt.Printf("[INFO] Fetching s3://%s/%s\n", event.Bucket, event.Key)
	var stream bytes.Buffer
	if err := filesystem.ReadFile(event.Bucket, event.Key, ctx, &stream); err != nil {
		return nil, fmt.Errorf("failed to read file from S3: %w", err)
	}

	punches, err := helper.ParsePunchCSV(&stream, event.OffsetSeconds)
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	fmt.Printf("[INFO] Parsed %d punches\n", len(punches))

	stats := &ImportStats{Parsed: len(punches)}
	if event.DryRun {
		stats.Skipped = len(punches)
		return stats, nil
	}

	dm, err := core.New(utils.FirstNonEmpty(os.Getenv("DATA_DIR"), "/tmp/timeclock"), os.Getenv("DSN"), 5)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer dm.Close()

	ledger := core.NewLedger(dm)
	if err := ledger.EnsureSchema(ctx); err != nil {
		return nil, err
	}

	for _, row := range utils.Map(punches, helper.ToEvent) {
		if err := dm.DB(ctx).Create(row).Error; err != nil {
			fmt.Printf("[ERROR] failed to insert punch for %s at %s: %v\n",
				row.EmployeeID, row.LocalTimestamp, err)
			stats.Skipped++
			continue
		}
		stats.Inserted++
	}

	fmt.Printf("[INFO] Import complete: %d inserted, %d skipped\n", stats.Inserted, stats.Skipped)
	return stats, nil
}

func HandleRequest(ctx context.Context, event ImportEvent) (*ImportStats, error) {
	eventJson, _ := json.Marshal(event)
	fmt.Printf("[INFO] Event: %s\n", string(eventJson))
	return ImportPunches(ctx, event)
}

func main() {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		lambda.Start(HandleRequest)
	} else {
		event := ImportEvent{
			Bucket:        os.Getenv("IMPORT_BUCKET"),
			Key:           os.Getenv("IMPORT_KEY"),
			OffsetSeconds: 0,
			DryRun:        true,
		}
		stats, err := ImportPunches(context.Background(), event)
		if err != nil {
			fmt.Printf("[ERROR] %v\n", err)
			os.Exit(1)
		}
		statsJson, _ := json.MarshalIndent(stats, "", "  ")
		fmt.Printf("[SUCCESS] %s\n", string(statsJson))
	}
}
