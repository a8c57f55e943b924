package service

import (
	"context"
	"fmt"
	"time"

	"restaurant-pos/internal/entity"
	"restaurant-pos/internal/repository"
)

// ReportService builds the read-only dashboard projections. It never
// mutates order or payment state.
type ReportService struct {
	reportRepo  repository.ReportRepository
	productRepo repository.ProductRepository
}

// NewReportService creates a new instance of ReportService.
func NewReportService(reportRepo repository.ReportRepository, productRepo repository.ProductRepository) *ReportService {
	return &ReportService{
		reportRepo:  reportRepo,
		productRepo: productRepo,
	}
}

// utcDayWindow returns the [00:00:00.000, 23:59:59.999] bounds of one
// UTC calendar day in unix milliseconds.
func utcDayWindow(dateISO string) (int64, int64, error) {
	day, err := time.Parse("2006-01-02", dateISO)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid date %q: %w", dateISO, err)
	}
	start := day.UTC().UnixMilli()
	end := start + 24*time.Hour.Milliseconds() - 1
	return start, end, nil
}

// parseWindowBound accepts either an RFC 3339 timestamp or a plain
// calendar date.
func parseWindowBound(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return t, nil
}

// DailyKpis summarises one UTC day: sales over closed orders, how many
// closed, the average ticket and the current open-tables gauge.
func (s *ReportService) DailyKpis(ctx context.Context, restaurantID int, dateISO string) (*entity.DailyKpis, error) {
	if dateISO == "" {
		dateISO = time.Now().UTC().Format("2006-01-02")
	}

	startMs, endMs, err := utcDayWindow(dateISO)
	if err != nil {
		return nil, err
	}

	totalSales, closedCount, err := s.reportRepo.ClosedSalesBetween(ctx, restaurantID, startMs, endMs)
	if err != nil {
		logger.Error().Err(err).Msgf("Error computing daily sales for restaurant %d", restaurantID)
		return nil, err
	}

	openTables, err := s.reportRepo.CountOpenOrders(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	averageTicket := 0.0
	if closedCount > 0 {
		averageTicket = totalSales / float64(closedCount)
	}

	return &entity.DailyKpis{
		TotalSales:    totalSales,
		ClosedOrders:  closedCount,
		AverageTicket: averageTicket,
		OpenTables:    openTables,
	}, nil
}

// SalesByWaiter groups closed orders in [start, end] by waiter.
func (s *ReportService) SalesByWaiter(ctx context.Context, restaurantID int, start, end string) ([]entity.WaiterSales, error) {
	startTime, err := parseWindowBound(start)
	if err != nil {
		return nil, err
	}
	endTime, err := parseWindowBound(end)
	if err != nil {
		return nil, err
	}

	return s.reportRepo.SalesByWaiter(ctx, restaurantID, startTime.UnixMilli(), endTime.UnixMilli())
}

// Alerts lists currently-unavailable products and payments that failed
// today (UTC). Informational only.
func (s *ReportService) Alerts(ctx context.Context, restaurantID int) (*entity.Alerts, error) {
	unavailable, err := s.productRepo.ListUnavailable(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).UnixMilli()

	failed, err := s.reportRepo.FailedPaymentsSince(ctx, restaurantID, startOfToday)
	if err != nil {
		return nil, err
	}

	return &entity.Alerts{
		UnavailableProducts: unavailable,
		FailedPayments:      failed,
	}, nil
}
