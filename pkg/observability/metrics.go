// Package observability emits operational metrics to CloudWatch.
package observability

import (
	"context"

	"catalog-backend/application/ports"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

const metricsNamespace = "Catalog/Import"

// Metrics publishes import run counters via PutMetricData.
type Metrics struct {
	client *cloudwatch.Client
	logger *zap.Logger
}

// NewMetrics creates a CloudWatch-backed metrics recorder.
func NewMetrics(client *cloudwatch.Client, logger *zap.Logger) ports.MetricsRecorder {
	return &Metrics{
		client: client,
		logger: logger,
	}
}

// RecordImport emits the succeeded and failed row counts for one run.
func (m *Metrics) RecordImport(ctx context.Context, date string, succeeded, failed int) error {
	dimensions := []types.Dimension{
		{Name: aws.String("Date"), Value: aws.String(date)},
	}

	_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(metricsNamespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String("RowsImported"),
				Value:      aws.Float64(float64(succeeded)),
				Unit:       types.StandardUnitCount,
				Dimensions: dimensions,
			},
			{
				MetricName: aws.String("RowsFailed"),
				Value:      aws.Float64(float64(failed)),
				Unit:       types.StandardUnitCount,
				Dimensions: dimensions,
			},
		},
	})
	return err
}
