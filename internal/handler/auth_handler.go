package handler

import (
	"context"
	"net/http"
	"strconv"

	"shopapi/internal/domain/model"
	"shopapi/internal/middleware"
	"shopapi/internal/usecase"
	auth "shopapi/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

// handlerから見たusecase。テストで差し替えられるようにinterfaceで受ける
type (
	registerExecutor interface {
		Execute(ctx context.Context, in auth.RegisterUserInput) (auth.AuthOutput, error)
	}
	loginExecutor interface {
		Execute(ctx context.Context, in auth.LoginInput) (auth.AuthOutput, error)
	}
	refreshExecutor interface {
		Execute(ctx context.Context, in auth.RefreshInput) (auth.TokenPair, error)
	}
	logoutExecutor interface {
		Execute(ctx context.Context, in auth.LogoutInput) error
	}
	logoutAllExecutor interface {
		Execute(ctx context.Context, customerID int64, meta auth.RequestMeta) (int64, error)
	}
	profileService interface {
		Get(ctx context.Context, customerID int64) (auth.Profile, error)
		Update(ctx context.Context, customerID int64, in auth.UpdateProfileInput) (auth.Profile, error)
	}
	auditLister interface {
		Execute(ctx context.Context, in auth.ListAuditInput) ([]model.AuditLog, error)
	}
)

// AuthUsecasesはAuthHandlerが使うusecase一式
type AuthUsecases struct {
	Register  registerExecutor
	Login     loginExecutor
	Refresh   refreshExecutor
	Logout    logoutExecutor
	LogoutAll logoutAllExecutor
	Profile   profileService
	Audit     auditLister
}

type AuthHandler struct {
	uc AuthUsecases
}

// DIコンストラクタ
func NewAuthHandler(uc AuthUsecases) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// /auth/register のリクエストボディ。
type registerRequest struct {
	Email       string  `json:"email" validate:"required,email,max=255"`
	Password    string  `json:"password" validate:"required,password,max=72"`
	FirstName   string  `json:"first_name" validate:"required,notblank,max=50"`
	LastName    string  `json:"last_name" validate:"required,notblank,max=50"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=30"`
	Address     *string `json:"address" validate:"omitempty,max=255"`
}

// /auth/login のリクエストボディ。
type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// /auth/refresh と /auth/logout のリクエストボディ
type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// PATCH /auth/profile。送られた項目だけ更新する
type profilePatchRequest struct {
	FirstName   *string `json:"first_name" validate:"omitempty,notblank,max=50"`
	LastName    *string `json:"last_name" validate:"omitempty,notblank,max=50"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=30"`
	Address     *string `json:"address" validate:"omitempty,max=255"`
}

// /auth のルートを登録。
// limitはログイン・登録・refreshにだけかけるレート制限、authJWTはbearer必須のルート用。
func (h *AuthHandler) RegisterRoutes(e *echo.Echo, authJWT echo.MiddlewareFunc, limit echo.MiddlewareFunc) {
	g := e.Group("/auth")

	g.POST("/register", h.register, limit)
	g.POST("/login", h.login, limit)
	g.POST("/refresh", h.refresh, limit)
	g.POST("/logout", h.logout)

	g.POST("/logout-all", h.logoutAll, authJWT)
	g.GET("/profile", h.getProfile, authJWT)
	g.PATCH("/profile", h.updateProfile, authJWT)
	g.GET("/audit", h.listAudit, authJWT)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	out, err := h.uc.Register.Execute(c.Request().Context(), auth.RegisterUserInput{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		Meta:        requestMeta(c),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	out, err := h.uc.Login.Execute(c.Request().Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Meta:     requestMeta(c),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) refresh(c echo.Context) error {
	var req refreshRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	pair, err := h.uc.Refresh.Execute(c.Request().Context(), auth.RefreshInput{
		RefreshToken: req.RefreshToken,
		Meta:         requestMeta(c),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, pair)
}

func (h *AuthHandler) logout(c echo.Context) error {
	var req refreshRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.uc.Logout.Execute(c.Request().Context(), auth.LogoutInput{
		RefreshToken: req.RefreshToken,
		Meta:         requestMeta(c),
	}); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) logoutAll(c echo.Context) error {
	customerID, ok := middleware.CustomerID(c)
	if !ok {
		return usecase.Unauthorized("unauthorized")
	}

	if _, err := h.uc.LogoutAll.Execute(c.Request().Context(), customerID, requestMeta(c)); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) getProfile(c echo.Context) error {
	customerID, ok := middleware.CustomerID(c)
	if !ok {
		return usecase.Unauthorized("unauthorized")
	}

	p, err := h.uc.Profile.Get(c.Request().Context(), customerID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, p)
}

func (h *AuthHandler) updateProfile(c echo.Context) error {
	customerID, ok := middleware.CustomerID(c)
	if !ok {
		return usecase.Unauthorized("unauthorized")
	}

	var req profilePatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.uc.Profile.Update(c.Request().Context(), customerID, auth.UpdateProfileInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, p)
}

func (h *AuthHandler) listAudit(c echo.Context) error {
	customerID, ok := middleware.CustomerID(c)
	if !ok {
		return usecase.Unauthorized("unauthorized")
	}

	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		return err
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		return err
	}

	logs, err := h.uc.Audit.Execute(c.Request().Context(), auth.ListAuditInput{
		CustomerID: customerID,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"items": logs})
}

// 監査ログ用の接続元情報
func requestMeta(c echo.Context) auth.RequestMeta {
	return auth.RequestMeta{
		IP:        c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}
}

// bodyを読み取りvalidateタグで検証する
func bindAndValidate(c echo.Context, dst interface{}) error {
	if err := c.Bind(dst); err != nil {
		return usecase.Validation("invalid request body")
	}
	return c.Validate(dst)
}

func queryInt(c echo.Context, key string, def int) (int, error) {
	v := c.QueryParam(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, usecase.Validation("invalid " + key)
	}
	return i, nil
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, usecase.Validation("invalid id")
	}
	return id, nil
}
