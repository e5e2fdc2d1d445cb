package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"shopapi/internal/usecase"

	"github.com/labstack/echo/v4"
)

// エラー時のレスポンス
type ErrorResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// NewErrorHandlerはechoのHTTPErrorHandlerを作る。
// AppErrorのKindをステータスに変換する唯一の場所。
// productionでは500の中身を隠す（ログには必ず残す）。
func NewErrorHandler(log *slog.Logger, production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := toResponse(err, production)
		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"error", err,
			)
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, body)
		}
		if werr != nil {
			log.Error("write error response", "error", werr)
		}
	}
}

func toResponse(err error, production bool) (int, ErrorResponse) {
	if ae, ok := usecase.AsAppError(err); ok {
		status := ae.Kind.HTTPStatus()
		msg := ae.Message
		if ae.Kind == usecase.KindInternal && !production && ae.Err != nil {
			msg = fmt.Sprintf("%s: %v", ae.Message, ae.Err)
		}
		return status, ErrorResponse{Status: "error", Message: msg, Errors: ae.Fields}
	}

	// echo自身のエラー（404ルート、405、bind失敗など）
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if s, ok := he.Message.(string); ok && s != "" {
			msg = s
		}
		if he.Code >= http.StatusInternalServerError && production {
			msg = "internal server error"
		}
		return he.Code, ErrorResponse{Status: "error", Message: msg}
	}

	//分類できないものは500
	msg := "internal server error"
	if !production {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	return http.StatusInternalServerError, ErrorResponse{Status: "error", Message: msg}
}
