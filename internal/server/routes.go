package server

import (
	"shopapi/internal/handler"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Health     *handler.HealthHandler
	Auth       *handler.AuthHandler
	Products   *handler.ProductHandler
	Categories *handler.CategoryHandler
	Brands     *handler.BrandHandler
	Reviews    *handler.ReviewHandler
}

// AuthJWTはbearer必須のルート、AuthRateLimitはログイン・登録・refreshに使う
type Middlewares struct {
	AuthJWT       echo.MiddlewareFunc
	AuthRateLimit echo.MiddlewareFunc
}

func RegisterRoutes(e *echo.Echo, h Handlers, mw Middlewares) {
	h.Health.RegisterRoutes(e)
	h.Auth.RegisterRoutes(e, mw.AuthJWT, mw.AuthRateLimit)
	h.Products.RegisterRoutes(e, mw.AuthJWT)
	h.Categories.RegisterRoutes(e, mw.AuthJWT)
	h.Brands.RegisterRoutes(e, mw.AuthJWT)
	h.Reviews.RegisterRoutes(e, mw.AuthJWT)
}
