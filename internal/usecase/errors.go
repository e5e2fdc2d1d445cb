package usecase

import (
	"errors"
	"net/http"
)

// エラーの種類。HTTPステータスへの変換はhandler側で1か所だけ行う
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// HTTPStatusは種類に対応するステータス
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// usecaseが返すエラー
type AppError struct {
	Kind    Kind
	Message string            // クライアントに返す文言
	Fields  map[string]string // 入力エラーの項目別メッセージ
	Err     error             // 原因（ログ用。外には出さない）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Validation(message string) error {
	return &AppError{Kind: KindValidation, Message: message}
}

// ValidationFieldsは項目別メッセージ付きの400
func ValidationFields(message string, fields map[string]string) error {
	return &AppError{Kind: KindValidation, Message: message, Fields: fields}
}

func Unauthorized(message string) error {
	return &AppError{Kind: KindUnauthorized, Message: message}
}

func Forbidden(message string) error {
	return &AppError{Kind: KindForbidden, Message: message}
}

func NotFound(message string) error {
	return &AppError{Kind: KindNotFound, Message: message}
}

func Conflict(message string) error {
	return &AppError{Kind: KindConflict, Message: message}
}

// Internalは分類できない失敗。causeはログにだけ残す
func Internal(cause error) error {
	return &AppError{Kind: KindInternal, Message: "internal server error", Err: cause}
}

func AsAppError(err error) (*AppError, bool) {
	var ae *AppError
	ok := errors.As(err, &ae)
	return ae, ok
}

// KindOfはAppError以外をInternal扱いにする
func KindOf(err error) Kind {
	if ae, ok := AsAppError(err); ok {
		return ae.Kind
	}
	return KindInternal
}
