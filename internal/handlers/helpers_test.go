package handlers_test

import (
	"CookieVault/internal/config"
	"CookieVault/internal/handlers"
	"CookieVault/internal/middleware"
	"CookieVault/internal/model"
	"CookieVault/internal/repo"
	"CookieVault/internal/service"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// моки уровня хранилища; сервисы и роутер в тестах настоящие

type mockAccountRepo struct{ mock.Mock }

func (m *mockAccountRepo) Create(ctx context.Context, acc *model.Account) (*model.Account, error) {
	args := m.Called(ctx, acc)
	if a, ok := args.Get(0).(*model.Account); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAccountRepo) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	args := m.Called(ctx, email)
	if a, ok := args.Get(0).(*model.Account); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAccountRepo) ListByRole(ctx context.Context, role model.Role) ([]model.Account, error) {
	args := m.Called(ctx, role)
	if v, ok := args.Get(0).([]model.Account); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.AccountRepository = (*mockAccountRepo)(nil)

type mockEntryRepo struct{ mock.Mock }

func (m *mockEntryRepo) Create(ctx context.Context, e *model.Entry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockEntryRepo) GetByID(ctx context.Context, id string) (*model.Entry, error) {
	args := m.Called(ctx, id)
	if e, ok := args.Get(0).(*model.Entry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEntryRepo) GetBySlug(ctx context.Context, slug string) (*model.Entry, error) {
	args := m.Called(ctx, slug)
	if e, ok := args.Get(0).(*model.Entry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEntryRepo) List(ctx context.Context, publicOnly bool) ([]model.Entry, error) {
	args := m.Called(ctx, publicOnly)
	if v, ok := args.Get(0).([]model.Entry); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEntryRepo) Save(ctx context.Context, e *model.Entry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockEntryRepo) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

var _ repo.EntryRepository = (*mockEntryRepo)(nil)

const testSecret = "test-secret"

func testConfig() *config.Config {
	return &config.Config{
		AuthSecret:    testSecret,
		AdminEmail:    "admin@cookievault.com",
		AdminPassword: "admin123",
		SessionTTLMin: 60,
		BcryptCost:    bcrypt.MinCost,
	}
}

// newTestRouter собирает полный роутер поверх моков хранилища.
func newTestRouter(t *testing.T, accounts *mockAccountRepo, entries *mockEntryRepo) http.Handler {
	t.Helper()
	cfg := testConfig()
	logger := zap.NewNop().Sugar()

	authSvc := service.NewAuthService(accounts, cfg)
	accountSvc := service.NewAccountService(accounts, cfg)
	entrySvc := service.NewEntryService(entries)

	return handlers.NewHandler(authSvc, accountSvc, entrySvc, logger, cfg).Router
}

// addAuthCookie подписывает токен сессии для аккаунта и цепляет его к запросу.
func addAuthCookie(t *testing.T, req *http.Request, acc *model.Account) {
	t.Helper()
	token, err := middleware.BuildToken(acc, testSecret, time.Hour, time.Now())
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: token})
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func adminAccount() *model.Account {
	return &model.Account{ID: 1, Email: "admin@cookievault.com", Role: model.RoleAdmin}
}

func userAccount() *model.Account {
	return &model.Account{ID: 2, Email: "alice@example.com", Name: "Alice", Role: model.RoleUser}
}
