package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/BradenHooton/parliament/internal/models"
	"github.com/BradenHooton/parliament/internal/repositories/memory"
	pkgauth "github.com/BradenHooton/parliament/pkg/auth"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubHasher avoids bcrypt cost in unit tests
type stubHasher struct{}

func (stubHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	return "hashed:" + password, nil
}

func (stubHasher) Compare(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return pkgauth.ErrMismatch
	}
	return nil
}

// MockTokenIssuer implements TokenIssuer for testing
type MockTokenIssuer struct {
	IssueFunc func(desc models.SessionDescriptor) (string, error)
}

func (m *MockTokenIssuer) Issue(desc models.SessionDescriptor) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(desc)
	}
	return "token-for-" + desc.LoginName, nil
}

// MockAccountRepository implements AccountRepository for testing
type MockAccountRepository struct {
	CreateFunc             func(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByLoginNameFunc     func(ctx context.Context, loginName string) (*models.Account, error)
	GetByLegislatorIDFunc  func(ctx context.Context, legislatorID int64) (*models.Account, error)
	UpdatePasswordHashFunc func(ctx context.Context, loginName, passwordHash string) (*models.Account, error)
	DeleteFunc             func(ctx context.Context, loginName string) error
	ListFunc               func(ctx context.Context) ([]*models.Account, error)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	return nil, models.ErrInternalServer
}

func (m *MockAccountRepository) GetByLoginName(ctx context.Context, loginName string) (*models.Account, error) {
	if m.GetByLoginNameFunc != nil {
		return m.GetByLoginNameFunc(ctx, loginName)
	}
	return nil, models.ErrNotFound
}

func (m *MockAccountRepository) GetByLegislatorID(ctx context.Context, legislatorID int64) (*models.Account, error) {
	if m.GetByLegislatorIDFunc != nil {
		return m.GetByLegislatorIDFunc(ctx, legislatorID)
	}
	return nil, models.ErrNotFound
}

func (m *MockAccountRepository) UpdatePasswordHash(ctx context.Context, loginName, passwordHash string) (*models.Account, error) {
	if m.UpdatePasswordHashFunc != nil {
		return m.UpdatePasswordHashFunc(ctx, loginName, passwordHash)
	}
	return nil, models.ErrNotFound
}

func (m *MockAccountRepository) Delete(ctx context.Context, loginName string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, loginName)
	}
	return nil
}

func (m *MockAccountRepository) List(ctx context.Context) ([]*models.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*models.Account{}, nil
}

// MockLegislatorRepository implements LegislatorRepository for testing
type MockLegislatorRepository struct {
	CreateFunc  func(ctx context.Context, l *models.Legislator) (*models.Legislator, error)
	GetByIDFunc func(ctx context.Context, id int64) (*models.Legislator, error)
	UpdateFunc  func(ctx context.Context, id int64, l *models.Legislator) (*models.Legislator, error)
	DeleteFunc  func(ctx context.Context, id int64) error
	ListFunc    func(ctx context.Context) ([]*models.Legislator, error)
	CountFunc   func(ctx context.Context) (int, error)
}

func (m *MockLegislatorRepository) Create(ctx context.Context, l *models.Legislator) (*models.Legislator, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, l)
	}
	return nil, models.ErrInternalServer
}

func (m *MockLegislatorRepository) GetByID(ctx context.Context, id int64) (*models.Legislator, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockLegislatorRepository) Update(ctx context.Context, id int64, l *models.Legislator) (*models.Legislator, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, l)
	}
	return nil, models.ErrNotFound
}

func (m *MockLegislatorRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockLegislatorRepository) List(ctx context.Context) ([]*models.Legislator, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*models.Legislator{}, nil
}

func (m *MockLegislatorRepository) Count(ctx context.Context) (int, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// MockLockoutRepository implements LockoutRepository for testing
type MockLockoutRepository struct {
	GetFunc          func(ctx context.Context, loginName string) (*models.LockoutState, error)
	UpdateFunc       func(ctx context.Context, loginName string, fn func(*models.LockoutState) error) (*models.LockoutState, error)
	PruneExpiredFunc func(ctx context.Context, now time.Time) (int64, error)
}

func (m *MockLockoutRepository) Get(ctx context.Context, loginName string) (*models.LockoutState, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, loginName)
	}
	return &models.LockoutState{LoginName: loginName}, nil
}

func (m *MockLockoutRepository) Update(ctx context.Context, loginName string, fn func(*models.LockoutState) error) (*models.LockoutState, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, loginName, fn)
	}
	state := &models.LockoutState{LoginName: loginName}
	return state, fn(state)
}

func (m *MockLockoutRepository) PruneExpired(ctx context.Context, now time.Time) (int64, error) {
	if m.PruneExpiredFunc != nil {
		return m.PruneExpiredFunc(ctx, now)
	}
	return 0, nil
}

// recordingNotifier keeps every notice it was handed
type recordingNotifier struct {
	mu      sync.Mutex
	notices []ProvisioningNotice
	err     error
}

func (n *recordingNotifier) Notify(_ context.Context, notice ProvisioningNotice) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
	return n.err
}

func (n *recordingNotifier) kinds() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	kinds := make([]string, 0, len(n.notices))
	for _, notice := range n.notices {
		kinds = append(kinds, notice.Kind)
	}
	return kinds
}

// testClock is a settable clock for lockout tests
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2025, 1, 25, 10, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func strPtr(s string) *string { return &s }

// seedRoster adds the demo legislators and parties, returning the store
func seedRoster(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	legislators := []struct {
		name       string
		party      string
		attendance int
		email      string
	}{
		{"Ivanov Ivan Ivanovich", "United Russia", 95, "ivanov@duma.gov.ru"},
		{"Petrov Petr Petrovich", "CPRF", 88, "petrov@duma.gov.ru"},
		{"Sidorova Anna Mikhailovna", "LDPR", 92, "sidorova@duma.gov.ru"},
		{"Kozlov Sergey Viktorovich", "A Just Russia", 79, ""},
		{"Nikolaeva Elena Sergeevna", "United Russia", 91, "nikolaeva@duma.gov.ru"},
	}
	for _, l := range legislators {
		_, err := store.Legislators.Create(ctx, &models.Legislator{
			Name:              l.name,
			PartyName:         strPtr(l.party),
			AttendancePercent: l.attendance,
			Email:             l.email,
		})
		require.NoError(t, err)
	}

	for _, name := range []string{"United Russia", "CPRF", "LDPR", "A Just Russia", "New People"} {
		_, err := store.Parties.Create(ctx, &models.Party{Name: name})
		require.NoError(t, err)
	}
	return store
}

// seedAccount stores an account whose secret stubHasher will accept
func seedAccount(t *testing.T, store *memory.Store, loginName, secret, role string, legislatorID *int64) {
	t.Helper()
	display := strings.ToUpper(loginName[:1]) + loginName[1:]
	account, err := models.NewAccount(loginName, "hashed:"+secret, role, display, legislatorID)
	require.NoError(t, err)
	_, err = store.Accounts.Create(context.Background(), account)
	require.NoError(t, err)
}

func int64Ptr(v int64) *int64 { return &v }
