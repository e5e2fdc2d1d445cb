package middleware

import (
	"strings"

	"shopapi/internal/usecase"
	auth "shopapi/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

const (
	CtxCustomerIDKey = "customer_id" // int64
	CtxEmailKey      = "email"       // string
)

// bearerAuth用のJWT検証ミドルウェア。
// access tokenだけを受け付ける（refresh tokenは鍵が違うので通らない）。
func AuthJWT(verifier auth.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//Authorizationヘッダを取得
			authz := c.Request().Header.Get(echo.HeaderAuthorization)
			if authz == "" {
				return usecase.Unauthorized("missing bearer token")
			}

			//Bearer形式か確認してtokenを抜く
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return usecase.Unauthorized("missing bearer token")
			}
			rawToken := strings.TrimSpace(parts[1])
			if rawToken == "" {
				return usecase.Unauthorized("missing bearer token")
			}

			claims, err := verifier.Verify(rawToken, auth.TokenAccess)
			if err != nil {
				return usecase.Unauthorized("invalid or expired access token")
			}
			if claims.CustomerID <= 0 {
				return usecase.Unauthorized("invalid or expired access token")
			}

			//contextへ保存
			c.Set(CtxCustomerIDKey, claims.CustomerID)
			c.Set(CtxEmailKey, claims.Email)

			return next(c)
		}
	}
}

// CustomerIDはAuthJWTが保存した顧客IDを取り出す
func CustomerID(c echo.Context) (int64, bool) {
	id, ok := c.Get(CtxCustomerIDKey).(int64)
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}
