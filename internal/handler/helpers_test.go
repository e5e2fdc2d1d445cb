package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"

	"shopapi/internal/domain/model"
	"shopapi/internal/middleware"
	"shopapi/internal/usecase"
	auth "shopapi/internal/usecase/auth_usecase"
	"shopapi/internal/validator"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
)

const testCustomerID int64 = 7

func newTestEcho(production bool) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = NewErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), production)
	return e
}

// Authorizationヘッダがあれば認証済みとみなすテスト用ミドルウェア
func fakeAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
			return usecase.Unauthorized("missing bearer token")
		}
		c.Set(middleware.CtxCustomerIDKey, testCustomerID)
		return next(c)
	}
}

func passThrough(next echo.HandlerFunc) echo.HandlerFunc {
	return next
}

func doJSON(e *echo.Echo, method, path, body string, authed bool) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if authed {
		req.Header.Set(echo.HeaderAuthorization, "Bearer test")
	}
	req.Header.Set(echo.HeaderXRealIP, "203.0.113.9")
	req.Header.Set("User-Agent", "handler-test")

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// =====
// auth usecase mocks
// =====

type MockRegister struct{ mock.Mock }

func (m *MockRegister) Execute(ctx context.Context, in auth.RegisterUserInput) (auth.AuthOutput, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(auth.AuthOutput), args.Error(1)
}

type MockLogin struct{ mock.Mock }

func (m *MockLogin) Execute(ctx context.Context, in auth.LoginInput) (auth.AuthOutput, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(auth.AuthOutput), args.Error(1)
}

type MockRefresh struct{ mock.Mock }

func (m *MockRefresh) Execute(ctx context.Context, in auth.RefreshInput) (auth.TokenPair, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(auth.TokenPair), args.Error(1)
}

type MockLogout struct{ mock.Mock }

func (m *MockLogout) Execute(ctx context.Context, in auth.LogoutInput) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}

type MockLogoutAll struct{ mock.Mock }

func (m *MockLogoutAll) Execute(ctx context.Context, customerID int64, meta auth.RequestMeta) (int64, error) {
	args := m.Called(ctx, customerID, meta)
	return args.Get(0).(int64), args.Error(1)
}

type MockProfile struct{ mock.Mock }

func (m *MockProfile) Get(ctx context.Context, customerID int64) (auth.Profile, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(auth.Profile), args.Error(1)
}

func (m *MockProfile) Update(ctx context.Context, customerID int64, in auth.UpdateProfileInput) (auth.Profile, error) {
	args := m.Called(ctx, customerID, in)
	return args.Get(0).(auth.Profile), args.Error(1)
}

type MockAudit struct{ mock.Mock }

func (m *MockAudit) Execute(ctx context.Context, in auth.ListAuditInput) ([]model.AuditLog, error) {
	args := m.Called(ctx, in)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

// =====
// catalog mocks
// =====

type MockProductService struct{ mock.Mock }

func (m *MockProductService) List(ctx context.Context, in usecase.ListProductsInput) (usecase.ProductListOutput, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(usecase.ProductListOutput), args.Error(1)
}

func (m *MockProductService) Get(ctx context.Context, id int64) (*model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.Product)
	return p, args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, in usecase.CreateProductInput) (*model.Product, error) {
	args := m.Called(ctx, in)
	p, _ := args.Get(0).(*model.Product)
	return p, args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id int64, in usecase.UpdateProductInput) (*model.Product, error) {
	args := m.Called(ctx, id, in)
	p, _ := args.Get(0).(*model.Product)
	return p, args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCategoryService struct{ mock.Mock }

func (m *MockCategoryService) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Category)
	return items, args.Error(1)
}

func (m *MockCategoryService) Get(ctx context.Context, id int64) (*model.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*model.Category)
	return c, args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, name string) (*model.Category, error) {
	args := m.Called(ctx, name)
	c, _ := args.Get(0).(*model.Category)
	return c, args.Error(1)
}

func (m *MockCategoryService) Rename(ctx context.Context, id int64, name string) (*model.Category, error) {
	args := m.Called(ctx, id, name)
	c, _ := args.Get(0).(*model.Category)
	return c, args.Error(1)
}

func (m *MockCategoryService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

