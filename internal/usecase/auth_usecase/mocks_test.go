package auth

import (
	"context"
	"time"

	"shopapi/internal/domain/model"
	"shopapi/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// Mock: CustomerRepository
// =====================

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, c *model.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*model.Customer)
	return c, args.Error(1)
}

func (m *MockCustomerRepository) FindByEmail(ctx context.Context, email string) (*model.Customer, error) {
	args := m.Called(ctx, email)
	c, _ := args.Get(0).(*model.Customer)
	return c, args.Error(1)
}

func (m *MockCustomerRepository) UpdateProfile(ctx context.Context, id int64, upd repository.ProfileUpdate) (*model.Customer, error) {
	args := m.Called(ctx, id, upd)
	c, _ := args.Get(0).(*model.Customer)
	return c, args.Error(1)
}

// =====================
// Mock: RefreshTokenRepository
// =====================

type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	t, _ := args.Get(0).(*model.RefreshToken)
	return t, args.Error(1)
}

func (m *MockRefreshTokenRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) (int64, error) {
	args := m.Called(ctx, tokenHash)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRefreshTokenRepository) DeleteAllByCustomerID(ctx context.Context, customerID int64) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRefreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// =====================
// Mock: AuditLogRepository
// =====================

type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockAuditLogRepository) List(ctx context.Context, filter repository.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, filter)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

// =====================
// Tx: モックのrepoをそのまま渡す
// =====================

type mockTx struct {
	customers repository.CustomerRepository
	tokens    repository.RefreshTokenRepository
}

func (t *mockTx) Customers() repository.CustomerRepository         { return t.customers }
func (t *mockTx) RefreshTokens() repository.RefreshTokenRepository { return t.tokens }

func (t *mockTx) WithinTx(ctx context.Context, fn func(r repository.TxRepos) error) error {
	return fn(t)
}

// =====================
// Mock: SessionMetrics
// =====================

type MockSessionMetrics struct {
	mock.Mock
}

func (m *MockSessionMetrics) TokenIssued()                           { m.Called() }
func (m *MockSessionMetrics) TokenRotated()                          { m.Called() }
func (m *MockSessionMetrics) TokenRejected(reason model.AuditReason) { m.Called(reason) }
func (m *MockSessionMetrics) TokensRevoked(n int64)                  { m.Called(n) }
func (m *MockSessionMetrics) LoginAttempt(ok bool)                   { m.Called(ok) }
