package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/2beens/healthtrack/internal/audit"
	"github.com/2beens/healthtrack/internal/audit/backup"
	"github.com/2beens/healthtrack/internal/config"
	"github.com/2beens/healthtrack/internal/db"
	"github.com/2beens/healthtrack/internal/logging"

	log "github.com/sirupsen/logrus"
)

// audit log google drive backup cmd

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	credentialsFile := flag.String(
		"gd-creds",
		"./healthtrack-drive-credentials.json",
		"google drive service account credentials json",
	)
	shareWith := flag.String("share-with", "", "email address the backup files are shared with")
	logsPath := flag.String("logs-path", "/var/log/healthtrack/audit-backup.log", "backup logs file path (empty for stdout)")
	reinit := flag.Bool("reinit", false, "reinitialize all again")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      *logsPath,
		LogToStdout:      *logsPath == "",
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        os.Getenv("SENTRY_DSN"),
		SentryServerName: "audit-gd-backup",
	})

	log.Println("starting audit log backup ...")

	if *credentialsFile == "" {
		log.Fatalln("google drive credentials json not specified")
	}
	if *reinit {
		log.Println("!! attention: will reinitialize all again...")
	}

	credentialsFileBytes, err := os.ReadFile(*credentialsFile)
	if err != nil {
		log.Fatalf("unable to read credentials file: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: os.Getenv("HEALTH_DB_PASSWORD"),
	})
	if err != nil {
		log.Fatalf("new db pool: %s", err)
	}
	defer dbPool.Close()

	s, err := backup.NewGoogleDriveBackupService(ctx, credentialsFileBytes, audit.NewRepo(dbPool), *shareWith)
	if err != nil {
		log.Fatalf("failed to create google drive backup service: %s", err)
	}

	start := time.Now()
	var saved int
	if *reinit {
		saved, err = s.Reinit(ctx, start)
	} else {
		saved, err = s.DoBackup(ctx, start)
	}
	if err != nil {
		log.Fatalf("audit backup: %+v", err)
	}
	duration := time.Since(start)
	log.Printf("audit backup done, %d entries saved in %s", saved, duration)

	if err := audit.SendBackupReport(cfg.AuditBackupSocketDir, audit.BackupSocketFileName, saved, duration); err != nil {
		log.Errorf("failed to report the backup to the service: %s", err)
	}
}
