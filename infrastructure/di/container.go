// Package di wires the application together. The container is built
// explicitly at process bootstrap; no component holds global state.
package di

import (
	"context"
	"fmt"

	"catalog-backend/application/catalog"
	"catalog-backend/application/importer"
	"catalog-backend/application/ports"
	"catalog-backend/infrastructure/config"
	"catalog-backend/infrastructure/messaging/eventbridge"
	dynamorepo "catalog-backend/infrastructure/persistence/dynamodb"
	s3store "catalog-backend/infrastructure/objectstore/s3"
	"catalog-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-xray-sdk-go/instrumentation/awsv2"
	"go.uber.org/zap"
)

// Container holds all application dependencies.
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	ProductRepo ports.ProductRepository
	ObjectStore ports.ObjectStore
	Events      ports.EventPublisher
	Metrics     ports.MetricsRecorder
	Catalog     *catalog.Service
	Importer    *importer.Service
}

// InitializeContainer creates a fully wired container.
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger, err := ProvideLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	awsCfg, err := ProvideAWSConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	productRepo := dynamorepo.NewProductRepository(
		awsdynamodb.NewFromConfig(awsCfg),
		cfg.DynamoDBTable,
		logger,
	)
	objectStore := s3store.NewObjectStore(awss3.NewFromConfig(awsCfg), logger)

	var events ports.EventPublisher
	if cfg.EventBusName != "" {
		events = eventbridge.NewPublisher(
			awseventbridge.NewFromConfig(awsCfg),
			cfg.EventBusName,
			logger,
		)
	}
	metrics := observability.NewMetrics(awscloudwatch.NewFromConfig(awsCfg), logger)

	return &Container{
		Config:      cfg,
		Logger:      logger,
		ProductRepo: productRepo,
		ObjectStore: objectStore,
		Events:      events,
		Metrics:     metrics,
		Catalog:     catalog.NewService(productRepo, logger),
		Importer: importer.NewService(
			productRepo,
			objectStore,
			events,
			metrics,
			cfg.ImportBucket,
			cfg.ImportConcurrency,
			logger,
		),
	}, nil
}

// ProvideLogger creates a logger for the configured environment, honoring
// the configured level.
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	zapCfg := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = level

	return zapCfg.Build()
}

// ProvideAWSConfig loads the AWS configuration, instrumenting every client
// with X-Ray when tracing is enabled.
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return aws.Config{}, err
	}

	if cfg.EnableTracing {
		awsv2.AWSV2Instrumentor(&awsCfg.APIOptions)
	}

	return awsCfg, nil
}
