package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/asset-maintenance/internal/domain"
	"github.com/spec-kit/asset-maintenance/internal/events"
	"github.com/spec-kit/asset-maintenance/internal/repository"
	apperrors "github.com/spec-kit/asset-maintenance/pkg/errorutil"
)

type fakeTicketRepo struct {
	counters   map[string]int
	byID       map[string]*domain.Ticket
	created    []*domain.Ticket
	createErrs []error
	items      []domain.Ticket
	count      int
	lastFilter repository.TicketFilter
	rows       []domain.AnalyticsRow
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{
		counters: make(map[string]int),
		byID:     make(map[string]*domain.Ticket),
	}
}

func (f *fakeTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return err
		}
	}
	ticket.ID = ticket.TicketNumber
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	f.byID[ticket.ID] = ticket
	f.created = append(f.created, ticket)
	return nil
}

func (f *fakeTicketRepo) Update(ctx context.Context, ticket *domain.Ticket) error {
	if _, ok := f.byID[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.byID[ticket.ID] = ticket
	return nil
}

func (f *fakeTicketRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	return &copied, nil
}

func (f *fakeTicketRepo) GetByNumber(ctx context.Context, number string) (*domain.Ticket, error) {
	for _, ticket := range f.byID {
		if ticket.TicketNumber == number {
			copied := *ticket
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeTicketRepo) NextSequence(ctx context.Context, prefix string) (int, error) {
	f.counters[prefix]++
	return f.counters[prefix], nil
}

func (f *fakeTicketRepo) ListWithFilter(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	f.lastFilter = filter
	return f.items, nil
}

func (f *fakeTicketRepo) CountWithFilter(ctx context.Context, filter repository.TicketFilter) (int, error) {
	f.lastFilter = filter
	return f.count, nil
}

func (f *fakeTicketRepo) ListAnalyticsRows(ctx context.Context, since time.Time) ([]domain.AnalyticsRow, error) {
	return f.rows, nil
}

type fakeAssetRepo struct {
	assets map[string]*domain.Asset
}

func (f *fakeAssetRepo) Create(ctx context.Context, asset *domain.Asset) error { return nil }
func (f *fakeAssetRepo) GetByID(ctx context.Context, id string) (*domain.Asset, error) {
	asset, ok := f.assets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return asset, nil
}
func (f *fakeAssetRepo) GetByTag(ctx context.Context, tag string) (*domain.Asset, error) {
	return nil, pgx.ErrNoRows
}
func (f *fakeAssetRepo) List(ctx context.Context, limit, offset int) ([]domain.Asset, error) {
	return nil, nil
}

type fakeEmployeeRepo struct {
	employees map[string]*domain.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, employee *domain.Employee) error { return nil }
func (f *fakeEmployeeRepo) Update(ctx context.Context, employee *domain.Employee) error { return nil }
func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	employee, ok := f.employees[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return employee, nil
}
func (f *fakeEmployeeRepo) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	for _, employee := range f.employees {
		if employee.Email == email {
			return employee, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeTechnicianRepo struct {
	technicians map[string]*domain.Technician
}

func (f *fakeTechnicianRepo) Create(ctx context.Context, technician *domain.Technician) error {
	return nil
}
func (f *fakeTechnicianRepo) Update(ctx context.Context, technician *domain.Technician) error {
	return nil
}
func (f *fakeTechnicianRepo) GetByID(ctx context.Context, id string) (*domain.Technician, error) {
	technician, ok := f.technicians[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return technician, nil
}
func (f *fakeTechnicianRepo) GetByEmail(ctx context.Context, email string) (*domain.Technician, error) {
	for _, technician := range f.technicians {
		if technician.Email == email {
			return technician, nil
		}
	}
	return nil, pgx.ErrNoRows
}
func (f *fakeTechnicianRepo) ListActive(ctx context.Context) ([]domain.Technician, error) {
	return nil, nil
}

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(ctx context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {}

type serviceFixture struct {
	tickets     *fakeTicketRepo
	assets      *fakeAssetRepo
	employees   *fakeEmployeeRepo
	technicians *fakeTechnicianRepo
	dispatcher  *recordingDispatcher
	service     *TicketService
}

func newServiceFixture(now time.Time) *serviceFixture {
	fixture := &serviceFixture{
		tickets: newFakeTicketRepo(),
		assets: &fakeAssetRepo{assets: map[string]*domain.Asset{
			"asset-1": {ID: "asset-1", AssetTag: "AST-001", Name: "Laptop"},
		}},
		employees: &fakeEmployeeRepo{employees: map[string]*domain.Employee{
			"emp-1": {ID: "emp-1", Name: "Dewi", Email: "dewi@example.com"},
		}},
		technicians: &fakeTechnicianRepo{technicians: map[string]*domain.Technician{
			"tech-1": {ID: "tech-1", Name: "Budi", Email: "budi@example.com", IsActive: true},
			"tech-2": {ID: "tech-2", Name: "Sari", Email: "sari@example.com", IsActive: true},
			"tech-3": {ID: "tech-3", Name: "Idle", Email: "idle@example.com", IsActive: false},
		}},
		dispatcher: &recordingDispatcher{},
	}
	fixture.service = NewTicketService(TicketDependencies{
		TicketRepo:     fixture.tickets,
		AssetRepo:      fixture.assets,
		EmployeeRepo:   fixture.employees,
		TechnicianRepo: fixture.technicians,
		Dispatcher:     fixture.dispatcher,
		Now:            func() time.Time { return now },
	})
	return fixture
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "tickets_ticket_number_key"}
}

func TestGenerateTicketNumberSequence(t *testing.T) {
	fixture := newServiceFixture(time.Date(2025, time.June, 15, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		number, err := fixture.service.GenerateTicketNumber(ctx)
		require.NoError(t, err)
		assert.Equal(t, i, number.CountNumber)
		assert.Equal(t, domain.FormatTicketNumber("T-2506", i), number.TicketNumber)
	}
}

func TestGenerateTicketNumberStartsFreshEachMonth(t *testing.T) {
	now := time.Date(2025, time.May, 30, 12, 0, 0, 0, time.UTC)
	fixture := newServiceFixture(now)
	ctx := context.Background()

	// three tickets in May, then the clock rolls into June
	for i := 0; i < 3; i++ {
		_, err := fixture.service.GenerateTicketNumber(ctx)
		require.NoError(t, err)
	}
	fixture.service.now = func() time.Time { return time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC) }

	number, err := fixture.service.GenerateTicketNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "T-25060001", number.TicketNumber)
	assert.Equal(t, 1, number.CountNumber)
}

func TestGenerateTicketNumberContinuesWithinMonth(t *testing.T) {
	fixture := newServiceFixture(time.Date(2025, time.May, 10, 8, 0, 0, 0, time.UTC))
	ctx := context.Background()
	fixture.tickets.counters["T-2505"] = 3

	number, err := fixture.service.GenerateTicketNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "T-25050004", number.TicketNumber)
	assert.Equal(t, 4, number.CountNumber)
}

func TestCreateTicketDefaults(t *testing.T) {
	fixture := newServiceFixture(time.Date(2025, time.June, 15, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	ticket, err := fixture.service.CreateTicket(ctx, "emp-1", TicketCreateInput{
		AssetID:     "asset-1",
		TroubleUser: "  screen flickers  ",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusPending, ticket.Status)
	assert.Equal(t, domain.TicketPriorityMedium, ticket.Priority)
	assert.Equal(t, "screen flickers", ticket.TroubleUser)
	assert.Equal(t, "T-25060001", ticket.TicketNumber)
	assert.Equal(t, 1, ticket.CountNumber)

	require.Len(t, fixture.dispatcher.published, 1)
	assert.Equal(t, events.EventTicketCreated, fixture.dispatcher.published[0].Type)
}

func TestCreateTicketRequiresTroubleDescription(t *testing.T) {
	fixture := newServiceFixture(time.Now())
	_, err := fixture.service.CreateTicket(context.Background(), "emp-1", TicketCreateInput{
		AssetID:     "asset-1",
		TroubleUser: "   ",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestCreateTicketRetriesOnDuplicateNumber(t *testing.T) {
	fixture := newServiceFixture(time.Date(2025, time.June, 15, 9, 0, 0, 0, time.UTC))
	fixture.tickets.createErrs = []error{uniqueViolation()}

	ticket, err := fixture.service.CreateTicket(context.Background(), "emp-1", TicketCreateInput{
		AssetID:     "asset-1",
		TroubleUser: "keyboard dead",
	})
	require.NoError(t, err)
	// the retry re-allocates, so the surviving ticket carries sequence 2
	assert.Equal(t, 2, ticket.CountNumber)
	assert.Equal(t, "T-25060002", ticket.TicketNumber)
}

func TestCreateTicketGivesUpAfterRepeatedConflicts(t *testing.T) {
	fixture := newServiceFixture(time.Date(2025, time.June, 15, 9, 0, 0, 0, time.UTC))
	fixture.tickets.createErrs = []error{uniqueViolation(), uniqueViolation(), uniqueViolation()}

	_, err := fixture.service.CreateTicket(context.Background(), "emp-1", TicketCreateInput{
		AssetID:     "asset-1",
		TroubleUser: "no power",
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
}

func TestCreateTicketPropagatesStorageFailure(t *testing.T) {
	fixture := newServiceFixture(time.Now())
	storageErr := errors.New("connection refused")
	fixture.tickets.createErrs = []error{storageErr}

	_, err := fixture.service.CreateTicket(context.Background(), "emp-1", TicketCreateInput{
		AssetID:     "asset-1",
		TroubleUser: "broken",
	})
	require.ErrorIs(t, err, storageErr)
}

func seedTicket(fixture *serviceFixture, id string, status domain.TicketStatus, technicianID *string) *domain.Ticket {
	ticket := &domain.Ticket{
		ID:           id,
		TicketNumber: "T-25060099",
		CountNumber:  99,
		Status:       status,
		Priority:     domain.TicketPriorityMedium,
		EmployeeID:   "emp-1",
		TechnicianID: technicianID,
		AssetID:      "asset-1",
	}
	fixture.tickets.byID[id] = ticket
	return ticket
}

func TestAssignTicket(t *testing.T) {
	fixture := newServiceFixture(time.Now())
	seedTicket(fixture, "tk-1", domain.TicketStatusPending, nil)

	ticket, err := fixture.service.AssignTicket(context.Background(), "tech-1", "tk-1", "tech-2")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusAssigned, ticket.Status)
	require.NotNil(t, ticket.TechnicianID)
	assert.Equal(t, "tech-2", *ticket.TechnicianID)

	types := make([]events.EventType, 0, len(fixture.dispatcher.published))
	for _, event := range fixture.dispatcher.published {
		types = append(types, event.Type)
	}
	assert.Contains(t, types, events.EventTicketAssigned)
	assert.Contains(t, types, events.EventTicketStatusChanged)
}

func TestAssignTicketRejectsInactiveTechnician(t *testing.T) {
	fixture := newServiceFixture(time.Now())
	seedTicket(fixture, "tk-1", domain.TicketStatusPending, nil)

	_, err := fixture.service.AssignTicket(context.Background(), "tech-1", "tk-1", "tech-3")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestAssignTicketRejectsFinishedTicket(t *testing.T) {
	fixture := newServiceFixture(time.Now())
	seedTicket(fixture, "tk-1", domain.TicketStatusCompleted, nil)

	_, err := fixture.service.AssignTicket(context.Background(), "tech-1", "tk-1", "tech-2")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestAssignTicketSwapsTechnicianMidWork(t *testing.T) {
	fixture := newServiceFixture(time.Now())
	techID := "tech-1"
	seedTicket(fixture, "tk-1", domain.TicketStatusInProgress, &techID)

	ticket, err := fixture.service.AssignTicket(context.Background(), "tech-1", "tk-1", "tech-2")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusInProgress, ticket.Status)
	require.NotNil(t, ticket.TechnicianID)
	assert.Equal(t, "tech-2", *ticket.TechnicianID)
}

func TestAssignTicketAllowsReassignment(t *testing.T) {
	fixture := newServiceFixture(time.Now())
	techID := "tech-1"
	seedTicket(fixture, "tk-1", domain.TicketStatusAssigned, &techID)

	ticket, err := fixture.service.AssignTicket(context.Background(), "tech-1", "tk-1", "tech-2")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusAssigned, ticket.Status)
	assert.Equal(t, "tech-2", *ticket.TechnicianID)
}

func TestUpdateProgressEnforcesTransitionTable(t *testing.T) {
	fixture := newServiceFixture(time.Now())
	techID := "tech-1"
	seedTicket(fixture, "tk-1", domain.TicketStatusAssigned, &techID)
	technician := fixture.technicians.technicians["tech-1"]

	_, err := fixture.service.UpdateProgress(context.Background(), technician, false, "tk-1", ProgressUpdateInput{
		NewStatus: domain.TicketStatusCompleted,
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	ticket, err := fixture.service.UpdateProgress(context.Background(), technician, false, "tk-1", ProgressUpdateInput{
		NewStatus:           domain.TicketStatusInProgress,
		AnalysisDescription: "faulty PSU",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusInProgress, ticket.Status)
	assert.Equal(t, "faulty PSU", ticket.AnalysisDescription)
}

func TestUpdateProgressRejectsForeignTicket(t *testing.T) {
	fixture := newServiceFixture(time.Now())
	techID := "tech-2"
	seedTicket(fixture, "tk-1", domain.TicketStatusAssigned, &techID)
	technician := fixture.technicians.technicians["tech-1"]

	_, err := fixture.service.UpdateProgress(context.Background(), technician, false, "tk-1", ProgressUpdateInput{
		NewStatus: domain.TicketStatusInProgress,
	})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)

	// admins may work any ticket
	_, err = fixture.service.UpdateProgress(context.Background(), technician, true, "tk-1", ProgressUpdateInput{
		NewStatus: domain.TicketStatusInProgress,
	})
	require.NoError(t, err)
}

func TestUpdateProgressBackToPendingUnassigns(t *testing.T) {
	fixture := newServiceFixture(time.Now())
	techID := "tech-1"
	seedTicket(fixture, "tk-1", domain.TicketStatusAssigned, &techID)
	technician := fixture.technicians.technicians["tech-1"]

	ticket, err := fixture.service.UpdateProgress(context.Background(), technician, false, "tk-1", ProgressUpdateInput{
		NewStatus: domain.TicketStatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusPending, ticket.Status)
	assert.Nil(t, ticket.TechnicianID)
}

func TestCancelTicketAsEmployee(t *testing.T) {
	fixture := newServiceFixture(time.Now())
	seedTicket(fixture, "tk-1", domain.TicketStatusPending, nil)

	ticket, err := fixture.service.CancelTicketAsEmployee(context.Background(), "emp-1", "tk-1")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusCanceled, ticket.Status)
}

func TestCancelTicketAsEmployeeRejectsForeignTicket(t *testing.T) {
	fixture := newServiceFixture(time.Now())
	seedTicket(fixture, "tk-1", domain.TicketStatusPending, nil)

	_, err := fixture.service.CancelTicketAsEmployee(context.Background(), "emp-2", "tk-1")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
}

func TestListAssignableFilter(t *testing.T) {
	fixture := newServiceFixture(time.Now())
	fixture.tickets.count = 31

	page, err := fixture.service.ListAssignable(context.Background(), "printer", 2)
	require.NoError(t, err)
	assert.Equal(t, domain.AssignableStatuses(), fixture.tickets.lastFilter.Statuses)
	require.NotNil(t, fixture.tickets.lastFilter.Search)
	assert.Equal(t, "printer", *fixture.tickets.lastFilter.Search)
	assert.Equal(t, 15, page.PageSize)
	assert.Equal(t, 15, fixture.tickets.lastFilter.Limit)
	assert.Equal(t, 15, fixture.tickets.lastFilter.Offset)
	assert.Equal(t, 31, page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
}

func TestListForEmployeeUsesScopedPageSize(t *testing.T) {
	fixture := newServiceFixture(time.Now())
	fixture.tickets.count = 5

	page, err := fixture.service.ListForEmployee(context.Background(), "", 1, "dewi@example.com")
	require.NoError(t, err)
	assert.Nil(t, fixture.tickets.lastFilter.Statuses)
	require.NotNil(t, fixture.tickets.lastFilter.EmployeeEmail)
	assert.Equal(t, "dewi@example.com", *fixture.tickets.lastFilter.EmployeeEmail)
	assert.Equal(t, 10, page.PageSize)
	assert.Equal(t, 1, page.TotalPages)
}

func TestListActiveForTechnicianFilter(t *testing.T) {
	fixture := newServiceFixture(time.Now())
	fixture.tickets.count = 0

	page, err := fixture.service.ListActiveForTechnician(context.Background(), "", 1, "budi@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.SchedulableStatuses(), fixture.tickets.lastFilter.Statuses)
	require.NotNil(t, fixture.tickets.lastFilter.TechnicianEmail)
	assert.Equal(t, "budi@example.com", *fixture.tickets.lastFilter.TechnicianEmail)
	assert.Equal(t, 0, page.TotalPages)
}

func TestListHistoryForTechnicianFilter(t *testing.T) {
	fixture := newServiceFixture(time.Now())
	fixture.tickets.count = 21

	page, err := fixture.service.ListHistoryForTechnician(context.Background(), "", 3, "budi@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.HistoricalStatuses(), fixture.tickets.lastFilter.Statuses)
	assert.Equal(t, 20, fixture.tickets.lastFilter.Offset)
	assert.Equal(t, 3, page.TotalPages)
}

func TestListNormalizesPageBelowOne(t *testing.T) {
	fixture := newServiceFixture(time.Now())
	fixture.tickets.count = 10

	page, err := fixture.service.ListHistory(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 0, fixture.tickets.lastFilter.Offset)
}

// syncTicketRepo is safe for concurrent use and rejects duplicate ticket
// numbers the way the unique index does, so the creation path can be
// hammered from many goroutines.
type syncTicketRepo struct {
	mu       sync.Mutex
	counters map[string]int
	numbers  map[string]struct{}
}

func newSyncTicketRepo() *syncTicketRepo {
	return &syncTicketRepo{
		counters: make(map[string]int),
		numbers:  make(map[string]struct{}),
	}
}

func (r *syncTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.numbers[ticket.TicketNumber]; dup {
		return uniqueViolation()
	}
	r.numbers[ticket.TicketNumber] = struct{}{}
	ticket.ID = ticket.TicketNumber
	return nil
}

func (r *syncTicketRepo) Update(ctx context.Context, ticket *domain.Ticket) error { return nil }

func (r *syncTicketRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	return nil, pgx.ErrNoRows
}

func (r *syncTicketRepo) GetByNumber(ctx context.Context, number string) (*domain.Ticket, error) {
	return nil, pgx.ErrNoRows
}

func (r *syncTicketRepo) NextSequence(ctx context.Context, prefix string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters[prefix]++
	return r.counters[prefix], nil
}

func (r *syncTicketRepo) ListWithFilter(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	return nil, nil
}

func (r *syncTicketRepo) CountWithFilter(ctx context.Context, filter repository.TicketFilter) (int, error) {
	return 0, nil
}

func (r *syncTicketRepo) ListAnalyticsRows(ctx context.Context, since time.Time) ([]domain.AnalyticsRow, error) {
	return nil, nil
}

func TestCreateTicketConcurrentNumbersDistinct(t *testing.T) {
	repo := newSyncTicketRepo()
	ticketService := NewTicketService(TicketDependencies{
		TicketRepo: repo,
		AssetRepo: &fakeAssetRepo{assets: map[string]*domain.Asset{
			"asset-1": {ID: "asset-1", AssetTag: "AST-001", Name: "Laptop"},
		}},
		EmployeeRepo: &fakeEmployeeRepo{employees: map[string]*domain.Employee{
			"emp-1": {ID: "emp-1", Name: "Dewi", Email: "dewi@example.com"},
		}},
		TechnicianRepo: &fakeTechnicianRepo{technicians: map[string]*domain.Technician{}},
		Now:            func() time.Time { return time.Date(2025, time.June, 15, 9, 0, 0, 0, time.UTC) },
	})

	const workers = 32
	numbers := make(chan string, workers)
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ticket, err := ticketService.CreateTicket(context.Background(), "emp-1", TicketCreateInput{
				AssetID:     "asset-1",
				TroubleUser: "no display",
			})
			if err != nil {
				errs <- err
				return
			}
			numbers <- ticket.TicketNumber
		}()
	}
	wg.Wait()
	close(numbers)
	close(errs)

	for err := range errs {
		t.Fatalf("concurrent create failed: %v", err)
	}
	seen := make(map[string]struct{}, workers)
	for number := range numbers {
		_, dup := seen[number]
		assert.False(t, dup, "duplicate ticket number %s", number)
		seen[number] = struct{}{}
	}
	assert.Len(t, seen, workers)
}

func TestPageCountPolicy(t *testing.T) {
	cases := []struct {
		total, pageSize, want int
	}{
		{0, 15, 0},
		{1, 15, 1},
		{15, 15, 1},
		{16, 15, 2},
		{30, 15, 2},
		{31, 15, 3},
		{9, 10, 1},
		{0, 10, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, pageCount(tc.total, tc.pageSize), "total=%d size=%d", tc.total, tc.pageSize)
	}
}
