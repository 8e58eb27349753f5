package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/asset-maintenance/internal/domain"
)

func TestWindowStart(t *testing.T) {
	cases := []struct {
		now  time.Time
		want time.Time
	}{
		{
			now:  time.Date(2025, time.June, 15, 13, 45, 0, 0, time.UTC),
			want: time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			now:  time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
			want: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			now:  time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC),
			want: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, WindowStart(tc.now), "now=%s", tc.now)
	}
}

func analyticsRow(created time.Time, group, typ, category, department, employee string) domain.AnalyticsRow {
	return domain.AnalyticsRow{
		TicketID:       "tk-" + created.Format("20060102150405"),
		CreatedAt:      created,
		GroupName:      group,
		TypeName:       typ,
		CategoryName:   category,
		DepartmentName: department,
		EmployeeName:   employee,
	}
}

func TestAggregateWindowBoundaryIsInclusive(t *testing.T) {
	windowStart := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	rows := []domain.AnalyticsRow{
		analyticsRow(windowStart, "Hardware", "Laptop", "IT", "Finance", "Dewi"),
		analyticsRow(windowStart.Add(-time.Second), "Hardware", "Laptop", "IT", "Finance", "Dewi"),
	}

	analytics := Aggregate(rows, windowStart, windowStart)
	require.Len(t, analytics.Groups, 1)
	assert.Equal(t, 1, analytics.Groups[0].Total)
}

func TestAggregateUnknownBuckets(t *testing.T) {
	windowStart := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	created := windowStart.AddDate(0, 2, 0)
	rows := []domain.AnalyticsRow{
		analyticsRow(created, "", "", "", "", ""),
	}

	analytics := Aggregate(rows, windowStart, created)
	require.Len(t, analytics.Groups, 1)
	assert.Equal(t, domain.UnknownGroup, analytics.Groups[0].Name)
	require.Len(t, analytics.ProductTypes, 1)
	assert.Equal(t, domain.UnknownType, analytics.ProductTypes[0].Name)
	require.Len(t, analytics.Categories, 1)
	assert.Equal(t, domain.UnknownCategory, analytics.Categories[0].Name)
	require.Len(t, analytics.Departments, 1)
	assert.Equal(t, domain.UnknownDepartment, analytics.Departments[0].Name)
	require.Len(t, analytics.Departments[0].Employees, 1)
	assert.Equal(t, domain.UnknownEmployee, analytics.Departments[0].Employees[0].Name)
}

func TestAggregateDimensionTotals(t *testing.T) {
	windowStart := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	at := func(month int) time.Time { return windowStart.AddDate(0, month, 3) }

	rows := []domain.AnalyticsRow{
		analyticsRow(at(0), "Hardware", "Laptop", "IT", "Finance", "Dewi"),
		analyticsRow(at(1), "Hardware", "Printer", "IT", "Finance", "Dewi"),
		analyticsRow(at(2), "Hardware", "Laptop", "IT", "Warehouse", "Agus"),
		analyticsRow(at(3), "Network", "Router", "Infra", "Warehouse", "Agus"),
		analyticsRow(at(4), "Network", "Router", "Infra", "Warehouse", "Sari"),
	}

	analytics := Aggregate(rows, windowStart, at(5))

	// every dimension accounts for every window ticket
	for name, buckets := range map[string][]domain.DimensionBucket{
		"groups":     analytics.Groups,
		"types":      analytics.ProductTypes,
		"categories": analytics.Categories,
	} {
		sum := 0
		for _, bucket := range buckets {
			sum += bucket.Total
		}
		assert.Equal(t, len(rows), sum, "dimension %s", name)
	}

	require.Len(t, analytics.Groups, 2)
	assert.Equal(t, "Hardware", analytics.Groups[0].Name)
	assert.Equal(t, 3, analytics.Groups[0].Total)
	assert.Equal(t, at(2), analytics.Groups[0].LatestCreatedAt)
	assert.Equal(t, "Network", analytics.Groups[1].Name)
	assert.Equal(t, 2, analytics.Groups[1].Total)
}

func TestAggregateDepartmentEmployeeBreakdown(t *testing.T) {
	windowStart := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	at := func(day int) time.Time { return windowStart.AddDate(0, 0, day) }

	rows := []domain.AnalyticsRow{
		analyticsRow(at(1), "Hardware", "Laptop", "IT", "Warehouse", "Agus"),
		analyticsRow(at(2), "Hardware", "Laptop", "IT", "Warehouse", "Agus"),
		analyticsRow(at(3), "Hardware", "Laptop", "IT", "Warehouse", "Sari"),
		analyticsRow(at(4), "Hardware", "Laptop", "IT", "Finance", "Dewi"),
	}

	analytics := Aggregate(rows, windowStart, at(5))
	require.Len(t, analytics.Departments, 2)

	finance := analytics.Departments[0]
	warehouse := analytics.Departments[1]
	assert.Equal(t, "Finance", finance.Name)
	assert.Equal(t, "Warehouse", warehouse.Name)

	assert.Equal(t, 3, warehouse.Total)
	require.Len(t, warehouse.Employees, 2)
	assert.Equal(t, domain.EmployeeTicketCount{Name: "Agus", TicketCount: 2}, warehouse.Employees[0])
	assert.Equal(t, domain.EmployeeTicketCount{Name: "Sari", TicketCount: 1}, warehouse.Employees[1])

	// nested counts sum to the department total
	for _, dept := range analytics.Departments {
		sum := 0
		for _, employee := range dept.Employees {
			sum += employee.TicketCount
		}
		assert.Equal(t, dept.Total, sum, "department %s", dept.Name)
	}
}

func TestAggregateEmptyWindow(t *testing.T) {
	windowStart := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	analytics := Aggregate(nil, windowStart, windowStart)
	assert.Empty(t, analytics.Groups)
	assert.Empty(t, analytics.ProductTypes)
	assert.Empty(t, analytics.Categories)
	assert.Empty(t, analytics.Departments)
	assert.Equal(t, windowStart, analytics.WindowStart)
}

func TestDashboardAnalyticsWithoutCache(t *testing.T) {
	now := time.Date(2025, time.June, 15, 9, 0, 0, 0, time.UTC)
	repo := newFakeTicketRepo()
	repo.rows = []domain.AnalyticsRow{
		analyticsRow(now.AddDate(0, -1, 0), "Hardware", "Laptop", "IT", "Finance", "Dewi"),
		// the repository filters by window server-side; a stale row that
		// slips through must still be dropped here
		analyticsRow(now.AddDate(-2, 0, 0), "Hardware", "Laptop", "IT", "Finance", "Dewi"),
	}

	service := NewAnalyticsService(AnalyticsDependencies{
		TicketRepo: repo,
		Now:        func() time.Time { return now },
	})

	analytics, err := service.DashboardAnalytics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, WindowStart(now), analytics.WindowStart)
	assert.Equal(t, now, analytics.GeneratedAt)
	require.Len(t, analytics.Groups, 1)
	assert.Equal(t, 1, analytics.Groups[0].Total)
}
