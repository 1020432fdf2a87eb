package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/firebase/genkit/go/plugins/server"
	"google.golang.org/genai"
	"gorm.io/gorm"
	"timeclock.app/timeclock/ai/assistant"
	"timeclock.app/timeclock/core"
	"timeclock.app/timeclock/utils"
)

var history = []*ai.Message{}

var model = googlegenai.GoogleAIModelRef("gemini-2.5-flash", &genai.GenerateContentConfig{
	MaxOutputTokens: 500,
	Temperature:     genai.Ptr[float32](0.0),
	TopP:            genai.Ptr[float32](0.4),
	TopK:            genai.Ptr[float32](5),
	ThinkingConfig: &genai.ThinkingConfig{
		ThinkingBudget: genai.Ptr[int32](0),
	},
})

type SQLInput struct {
	Query string `json:"query"`
}

type WeekHoursInput struct {
	EmployeeID string `json:"employeeId" jsonschema_description:"Employee identifier"`
	Date       string `json:"date" jsonschema_description:"Any date inside the week, YYYY-MM-DD"`
}

func main() {
	ctx := context.Background()

	// The Google AI plugin picks the API key up from GEMINI_API_KEY or
	// GOOGLE_API_KEY when the config is nil.
	g := genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{}))

	dm, err := core.New(utils.FirstNonEmpty(os.Getenv("DATA_DIR"), "./data"), os.Getenv("DSN"), 5)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer dm.Close()
	ledger := core.NewLedger(dm)

	sqlExecution := genkit.DefineTool(g, "sql", "Execute a read-only SQL query against the attendance database",
		func(ctx *ai.ToolContext, input SQLInput) (string, error) {
			fmt.Println(input.Query)
			result := ""
			if err := dm.Exec(context.Background(), func(db *gorm.DB) error {
				var err error
				result, err = assistant.ExecuteSQL(db, input.Query)
				return err
			}); err != nil {
				return "", err
			}
			return result, nil
		},
	)

	weekHours := genkit.DefineTool(g, "weekHours", "Get an employee's reconciled hours for the week containing a date",
		func(ctx *ai.ToolContext, input WeekHoursInput) (core.WeekView, error) {
			ref, err := time.ParseInLocation(utils.DateLayout, input.Date, time.Local)
			if err != nil {
				return core.WeekView{}, fmt.Errorf("invalid date format, expected YYYY-MM-DD: %w", err)
			}
			dates := core.WeekDates(ref)
			events, err := ledger.Query(context.Background(), input.EmployeeID, dates[0], dates[len(dates)-1])
			if err != nil {
				return core.WeekView{}, err
			}
			return core.BuildWeek(events, ref), nil
		},
	)

	bot := genkit.DefineStreamingFlow(g, "attendance", func(ctx context.Context, input string, cb ai.ModelStreamCallback) (string, error) {
		resp, err := genkit.Generate(ctx, g,
			ai.WithModel(model),
			ai.WithSystem(`
		You are an assistant for an employee attendance system. You help
		supervisors answer questions about clock-in and clock-out records,
		reconciled daily hours, and missing punches.

		Guidelines:
		1. Use the weekHours tool for per-employee weekly totals; use the sql tool only when the question needs raw rows.
		2. A day interval ending in "?" means the exit punch is missing; point these out when summarizing.
		3. Hours are already rounded to 2 decimals, report them as-is.
		4. Never modify data. The ledger is append-only and corrections go through the adjustments page.
		5. If the user provides partial information, request only what is necessary to continue.

		Schema Design

attendance_events
-----------------
- id (INTEGER, PK, AUTO_INCREMENT)
- employee_id (VARCHAR)
- local_timestamp (VARCHAR, 'YYYY-MM-DD HH:MM:SS', site-local)
- utc_timestamp (VARCHAR, same instant in UTC)
- kind (VARCHAR, 'Entry' or 'Exit')
- note (VARCHAR)
- origin (VARCHAR, 'live', 'manual_adjustment' or 'import')
- created_at (TIMESTAMP)

		`),
			ai.WithStreaming(cb),
			ai.WithTools(sqlExecution, weekHours),
			ai.WithMessages(history...),
			ai.WithPrompt(input))
		if err != nil {
			return "", err
		}

		history = resp.History()

		return resp.Text(), nil
	})

	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat", genkit.Handler(bot))
	log.Fatal(server.Start(ctx, utils.FirstNonEmpty(os.Getenv("CHAT_ADDR"), "127.0.0.1:3400"), mux))
}
