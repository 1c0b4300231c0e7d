package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/bankcore/customer-service/internal/core/ports"
	"github.com/bankcore/customer-service/internal/pkg/resilience"
)

// ReportService proxies the product service's report endpoint. Reporting is a
// listing path, so it degrades to an empty report when the downstream fails.
type ReportService struct {
	products ports.ProductClient
	guard    *resilience.Wrapper
	logger   zerolog.Logger
}

func NewReportService(products ports.ProductClient, guard *resilience.Wrapper, logger zerolog.Logger) *ReportService {
	return &ReportService{products: products, guard: guard, logger: logger}
}

// ProductReport fetches the report records for the period, fail-open.
func (s *ReportService) ProductReport(ctx context.Context, from, to time.Time) ([]ports.ProductReport, error) {
	records := resilience.DoStream(ctx, s.guard, func(ctx context.Context) ([]ports.ProductReport, error) {
		return s.products.Report(ctx, from, to)
	})

	s.logger.Debug().
		Time("from", from).
		Time("to", to).
		Int("records", len(records)).
		Msg("product report generated")
	return records, nil
}
