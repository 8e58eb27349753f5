package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/asset-maintenance/internal/domain"
	"github.com/spec-kit/asset-maintenance/internal/repository"
)

const analyticsCacheKey = "dashboard:ticket-analytics"

// AnalyticsService aggregates window tickets into chart-ready buckets.
type AnalyticsService struct {
	tickets  repository.TicketRepository
	cache    *redis.Client
	logger   *zap.Logger
	now      func() time.Time
	cacheTTL time.Duration
}

// AnalyticsDependencies bundles collaborators for the analytics service.
// Cache may be nil; the aggregation then always recomputes.
type AnalyticsDependencies struct {
	TicketRepo repository.TicketRepository
	Cache      *redis.Client
	Logger     *zap.Logger
	Now        func() time.Time
	CacheTTL   time.Duration
}

// NewAnalyticsService constructs the service.
func NewAnalyticsService(deps AnalyticsDependencies) *AnalyticsService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsService{
		tickets:  deps.TicketRepo,
		cache:    deps.Cache,
		logger:   logger,
		now:      now,
		cacheTTL: deps.CacheTTL,
	}
}

// WindowStart returns the inclusive lower bound of the aggregation window:
// the first instant of the month eleven months before now's month, so the
// window spans twelve full calendar months.
func WindowStart(now time.Time) time.Time {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return monthStart.AddDate(0, -11, 0)
}

// DashboardAnalytics builds the dashboard payload, serving a cached copy
// when one is fresh. Cache failures are advisory and never fail the call.
func (s *AnalyticsService) DashboardAnalytics(ctx context.Context) (*domain.TicketAnalytics, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	since := WindowStart(s.now())
	rows, err := s.tickets.ListAnalyticsRows(ctx, since)
	if err != nil {
		return nil, err
	}
	analytics := Aggregate(rows, since, s.now())
	s.storeCache(ctx, analytics)
	return analytics, nil
}

// Aggregate folds analytics rows into the four chart dimensions. Rows before
// windowStart are dropped; unclassified rows land in the "Unknown" buckets.
// Output is sorted ascending by bucket name for deterministic rendering.
func Aggregate(rows []domain.AnalyticsRow, windowStart, generatedAt time.Time) *domain.TicketAnalytics {
	window := rows[:0:0]
	for _, row := range rows {
		if row.CreatedAt.Before(windowStart) {
			continue
		}
		window = append(window, row)
	}

	return &domain.TicketAnalytics{
		Groups:       foldDimension(window, func(r domain.AnalyticsRow) string { return r.GroupName }, domain.UnknownGroup),
		ProductTypes: foldDimension(window, func(r domain.AnalyticsRow) string { return r.TypeName }, domain.UnknownType),
		Categories:   foldDimension(window, func(r domain.AnalyticsRow) string { return r.CategoryName }, domain.UnknownCategory),
		Departments:  foldDepartments(window),
		WindowStart:  windowStart,
		GeneratedAt:  generatedAt,
	}
}

type bucketAccumulator struct {
	total  int
	latest time.Time
}

func (b *bucketAccumulator) add(createdAt time.Time) {
	b.total++
	if createdAt.After(b.latest) {
		b.latest = createdAt
	}
}

func foldDimension(rows []domain.AnalyticsRow, key func(domain.AnalyticsRow) string, unknown string) []domain.DimensionBucket {
	acc := make(map[string]*bucketAccumulator)
	for _, row := range rows {
		name := key(row)
		if name == "" {
			name = unknown
		}
		bucket := acc[name]
		if bucket == nil {
			bucket = &bucketAccumulator{}
			acc[name] = bucket
		}
		bucket.add(row.CreatedAt)
	}

	result := make([]domain.DimensionBucket, 0, len(acc))
	for name, bucket := range acc {
		result = append(result, domain.DimensionBucket{
			Name:            name,
			Total:           bucket.total,
			LatestCreatedAt: bucket.latest,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

func foldDepartments(rows []domain.AnalyticsRow) []domain.DepartmentBucket {
	type departmentAccumulator struct {
		bucketAccumulator
		employees map[string]int
	}

	acc := make(map[string]*departmentAccumulator)
	for _, row := range rows {
		name := row.DepartmentName
		if name == "" {
			name = domain.UnknownDepartment
		}
		dept := acc[name]
		if dept == nil {
			dept = &departmentAccumulator{employees: make(map[string]int)}
			acc[name] = dept
		}
		dept.add(row.CreatedAt)

		employee := row.EmployeeName
		if employee == "" {
			employee = domain.UnknownEmployee
		}
		dept.employees[employee]++
	}

	result := make([]domain.DepartmentBucket, 0, len(acc))
	for name, dept := range acc {
		employees := make([]domain.EmployeeTicketCount, 0, len(dept.employees))
		for employee, count := range dept.employees {
			employees = append(employees, domain.EmployeeTicketCount{Name: employee, TicketCount: count})
		}
		sort.Slice(employees, func(i, j int) bool { return employees[i].Name < employees[j].Name })
		result = append(result, domain.DepartmentBucket{
			Name:            name,
			Total:           dept.total,
			LatestCreatedAt: dept.latest,
			Employees:       employees,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

func (s *AnalyticsService) fromCache(ctx context.Context) *domain.TicketAnalytics {
	if s.cache == nil || s.cacheTTL <= 0 {
		return nil
	}
	payload, err := s.cache.Get(ctx, analyticsCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Debug("analytics cache read failed", zap.Error(err))
		}
		return nil
	}
	var analytics domain.TicketAnalytics
	if err := json.Unmarshal(payload, &analytics); err != nil {
		s.logger.Warn("analytics cache payload corrupt", zap.Error(err))
		return nil
	}
	return &analytics
}

func (s *AnalyticsService) storeCache(ctx context.Context, analytics *domain.TicketAnalytics) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	payload, err := json.Marshal(analytics)
	if err != nil {
		s.logger.Warn("analytics cache encode failed", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, analyticsCacheKey, payload, s.cacheTTL).Err(); err != nil {
		s.logger.Debug("analytics cache write failed", zap.Error(err))
	}
}
