// Package importer implements the scheduled CSV import: fetch the dated
// object, parse rows into product records, and write them to the shared
// table with a bounded worker pool.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"sync/atomic"

	"catalog-backend/application/ports"
	"catalog-backend/domain/product"
	appErrors "catalog-backend/pkg/errors"
	"catalog-backend/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const importObjectName = "items.csv"

// requiredColumns are the columns an import object must carry.
var requiredColumns = []string{"name", "description", "price"}

// Report summarizes one import run. Parsed counts rows that produced a
// record; Failed covers both rejected rows and failed writes. Rows written
// before a failure stay written, there is no rollback.
type Report struct {
	Parsed    int `json:"parsed"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Service imports dated CSV objects into the product table.
type Service struct {
	repo        ports.ProductRepository
	store       ports.ObjectStore
	events      ports.EventPublisher
	metrics     ports.MetricsRecorder
	bucket      string
	concurrency int
	logger      *zap.Logger
}

// NewService creates an import service. events and metrics may be nil;
// publishing is best-effort either way.
func NewService(
	repo ports.ProductRepository,
	store ports.ObjectStore,
	events ports.EventPublisher,
	metrics ports.MetricsRecorder,
	bucket string,
	concurrency int,
	logger *zap.Logger,
) *Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Service{
		repo:        repo,
		store:       store,
		events:      events,
		metrics:     metrics,
		bucket:      bucket,
		concurrency: concurrency,
		logger:      logger,
	}
}

// ImportForDate fetches {date}/items.csv, parses it, and writes one record
// per row. Every record in a run shares one batch timestamp. Rows whose
// price does not parse as a number are rejected and counted as failed,
// never stored. Re-running a date re-imports with fresh ids.
func (s *Service) ImportForDate(ctx context.Context, date string) (*Report, error) {
	key := fmt.Sprintf("%s/%s", date, importObjectName)

	body, err := s.store.Get(ctx, s.bucket, key)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	records, rejected, err := s.parse(body)
	if err != nil {
		return nil, err
	}

	report := &Report{Parsed: len(records), Failed: rejected}
	s.write(ctx, records, report)

	s.logger.Info("import finished",
		zap.String("date", date),
		zap.Int("parsed", report.Parsed),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed),
	)
	s.publishReport(ctx, date, report)

	return report, nil
}

// parse streams the CSV into product records. The batch timestamp is
// captured once so every record of a run carries an identical value.
func (s *Service) parse(body io.Reader) ([]*product.Product, int, error) {
	reader := csv.NewReader(body)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, 0, appErrors.NewExternalError(fmt.Sprintf("reading csv header: %v", err))
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, 0, appErrors.NewExternalError(fmt.Sprintf("csv is missing the %q column", name))
		}
	}

	batchTime := utils.NowRFC3339()
	var records []*product.Product
	rejected := 0

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, appErrors.NewExternalError(fmt.Sprintf("reading csv row: %v", err))
		}

		rawPrice := row[columns["price"]]
		price, err := strconv.ParseFloat(rawPrice, 64)
		if err != nil {
			rejected++
			s.logger.Warn("rejecting row with unparseable price",
				zap.String("name", row[columns["name"]]),
				zap.String("price", rawPrice),
			)
			continue
		}

		records = append(records, &product.Product{
			ID:          uuid.New().String(),
			Name:        row[columns["name"]],
			Description: row[columns["description"]],
			Price:       price,
			CreatedAt:   batchTime,
			UpdatedAt:   batchTime,
		})
	}

	return records, rejected, nil
}

// write persists the records through a bounded worker pool, aggregating
// per-row outcomes instead of failing the whole batch on the first error.
func (s *Service) write(ctx context.Context, records []*product.Product, report *Report) {
	var succeeded, failed atomic.Int64

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.concurrency)

	for _, rec := range records {
		rec := rec
		group.Go(func() error {
			if err := s.repo.Save(groupCtx, rec); err != nil {
				failed.Add(1)
				s.logger.Error("failed to write imported product",
					zap.Error(err),
					zap.String("productID", rec.ID),
					zap.String("name", rec.Name),
				)
				return nil
			}
			succeeded.Add(1)
			return nil
		})
	}
	group.Wait()

	report.Succeeded = int(succeeded.Load())
	report.Failed += int(failed.Load())
}

// publishReport emits the run outcome to the event bus and metrics.
// Both are best-effort: failures are logged, never surfaced.
func (s *Service) publishReport(ctx context.Context, date string, report *Report) {
	if s.events != nil {
		detail := struct {
			Date string `json:"date"`
			Report
		}{Date: date, Report: *report}

		if err := s.events.Publish(ctx, "catalog.import.completed", detail); err != nil {
			s.logger.Warn("failed to publish import event", zap.Error(err))
		}
	}
	if s.metrics != nil {
		if err := s.metrics.RecordImport(ctx, date, report.Succeeded, report.Failed); err != nil {
			s.logger.Warn("failed to record import metrics", zap.Error(err))
		}
	}
}
