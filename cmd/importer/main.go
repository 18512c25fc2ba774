package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"catalog-backend/infrastructure/config"
	"catalog-backend/infrastructure/di"
	"catalog-backend/pkg/utils"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"
)

var container *di.Container

// init runs during cold start.
func init() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err = di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
}

// Handler runs one scheduled import for today's date. Failures are logged
// and returned so the platform's retry and alerting apply.
func Handler(ctx context.Context, event events.CloudWatchEvent) error {
	logger := container.Logger
	date := utils.DateKey(time.Now())

	report, err := container.Importer.ImportForDate(ctx, date)
	if err != nil {
		logger.Error("import failed",
			zap.Error(err),
			zap.String("date", date),
		)
		return err
	}

	logger.Info("import run complete",
		zap.String("date", date),
		zap.Int("parsed", report.Parsed),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed),
	)

	if report.Failed > 0 {
		return fmt.Errorf("import for %s: %d of %d rows failed", date, report.Failed, report.Failed+report.Succeeded)
	}
	return nil
}

func main() {
	lambda.Start(Handler)
}
