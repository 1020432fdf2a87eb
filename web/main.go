package main

import (
	"context"
	"encoding/base64"
	"log"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"timeclock.app/timeclock/core"
	"timeclock.app/timeclock/directory"
	"timeclock.app/timeclock/infrastructure/communication"
	"timeclock.app/timeclock/infrastructure/devops"
	"timeclock.app/timeclock/notification"
	"timeclock.app/timeclock/web/handlers"
	"timeclock.app/timeclock/web/handlers/clock"
	"timeclock.app/timeclock/web/handlers/week"
	"timeclock.app/timeclock/web/middlewares"
)

const sessionTTLSeconds = 12 * 60 * 60

func main() {
	r := gin.Default()

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}
	dsn := os.Getenv("DSN")

	dm, err := core.New(dataDir, dsn, 10)
	if err != nil {
		log.Fatal(err)
	}
	defer dm.Close()

	ledger := core.NewLedger(dm)
	if err := ledger.EnsureSchema(context.Background()); err != nil {
		log.Fatal(err)
	}

	presenceToken := os.Getenv("PRESENCE_TOKEN")
	base64Secret := os.Getenv("SIGNING_SECRET")
	if presenceToken == "" || base64Secret == "" {
		// Fall back to the shared SSM parameter.
		secrets, err := devops.LoadSecrets(context.Background())
		if err != nil {
			log.Fatal("no presence token / signing secret configured:", err)
		}
		if presenceToken == "" {
			presenceToken = secrets.PresenceToken
		}
		if base64Secret == "" {
			base64Secret = secrets.SigningSecret
		}
	}
	jwtSecret, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		log.Fatal("Failed to decode JWT secret:", err)
	}

	mode := core.PermissionMode(os.Getenv("PERMISSION_MODE"))
	hideUnauthorized := os.Getenv("HIDE_UNAUTHORIZED") == "true"

	var users directory.UserDirectory = directory.NewCSVUserDirectory(filepath.Join(dataDir, "users.csv"))
	if os.Getenv("USER_SOURCE") == "db" {
		dbUsers := directory.NewDBUserDirectory(dm)
		if err := dbUsers.EnsureSchema(context.Background()); err != nil {
			log.Fatal(err)
		}
		users = dbUsers
	}
	registry := directory.NewCSVPermissionRegistry(filepath.Join(dataDir, "pages.csv"))
	notifications := notification.NewStore(filepath.Join(dataDir, "notifications.csv"))

	gate := core.NewGate(core.GateConfig{
		PresenceToken: presenceToken,
		Mode:          mode,
	}, registry)
	backfill := core.NewBackfillService(ledger)
	slack := communication.ConnectSlack()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	r.POST("/api/v1/login", handlers.LoginHandler(users, base64Secret, sessionTTLSeconds))

	protected := r.Group("/api/v1")
	protected.Use(middlewares.Authentication(jwtSecret))
	{
		protected.GET("/nav", handlers.NavHandler(gate, registry, hideUnauthorized))

		clockPages := protected.Group("")
		clockPages.Use(middlewares.RequirePage(gate, "clock"))
		clock.Register(clockPages, ledger, gate, base64Secret, sessionTTLSeconds)

		adjustments := protected.Group("")
		adjustments.Use(middlewares.RequirePage(gate, "adjustments"))
		week.Register(adjustments, ledger, backfill, slack)
		adjustments.POST("/upload/multiple", handlers.UploadAttachmentsHandler(filepath.Join(dataDir, "attachments")))

		notices := protected.Group("")
		notices.Use(middlewares.RequirePage(gate, "notifications"))
		notices.GET("/notifications", handlers.PendingNotificationsHandler(notifications))
		notices.POST("/notifications/read", handlers.MarkNotificationsReadHandler(notifications))
	}

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
