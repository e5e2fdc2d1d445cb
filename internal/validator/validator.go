package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"shopapi/internal/usecase"

	"github.com/go-playground/validator/v10"
)

// カスタムタグ
const (
	TagPassword = "password"
	TagNotBlank = "notblank"
)

// Validatorはgo-playground/validatorのラッパー。
// echo.Validatorとしても使える。
type Validator struct {
	validate *validator.Validate
}

// DI
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	registerCustomValidators(v)

	// エラーの項目名はJSONのキーにする
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Validateは構造体を検証し、失敗したら項目別メッセージ付きの400エラーを返す
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return usecase.Internal(err)
	}
	return usecase.ValidationFields("validation failed", fieldMessages(verrs))
}

func fieldMessages(errs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(errs))

	for _, err := range errs {
		field := err.Field()

		switch err.Tag() {
		case "required":
			out[field] = fmt.Sprintf("%s is required", field)
		case "email":
			out[field] = fmt.Sprintf("%s must be a valid email address", field)
		case "min":
			if isNumber(err.Kind()) {
				out[field] = fmt.Sprintf("%s must be at least %s", field, err.Param())
			} else {
				out[field] = fmt.Sprintf("%s must be at least %s characters long", field, err.Param())
			}
		case "max":
			if isNumber(err.Kind()) {
				out[field] = fmt.Sprintf("%s must be at most %s", field, err.Param())
			} else {
				out[field] = fmt.Sprintf("%s must be at most %s characters long", field, err.Param())
			}
		case "gt":
			out[field] = fmt.Sprintf("%s must be greater than %s", field, err.Param())
		case "gte":
			out[field] = fmt.Sprintf("%s must be greater than or equal to %s", field, err.Param())
		case "url":
			out[field] = fmt.Sprintf("%s must be a valid URL", field)
		case TagPassword:
			out[field] = "password must contain at least 8 characters with uppercase, lowercase and number"
		case TagNotBlank:
			out[field] = fmt.Sprintf("%s must not be empty", field)
		default:
			out[field] = fmt.Sprintf("%s is invalid", field)
		}
	}

	return out
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func registerCustomValidators(v *validator.Validate) {
	// 8文字以上で大文字・小文字・数字を含む
	_ = v.RegisterValidation(TagPassword, func(fl validator.FieldLevel) bool {
		return IsStrongPassword(fl.Field().String())
	})

	// 空白だけの文字列は不可
	_ = v.RegisterValidation(TagNotBlank, func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// IsStrongPasswordはパスワード規則を満たすか
func IsStrongPassword(p string) bool {
	if len(p) < 8 {
		return false
	}

	var upper, lower, digit bool
	for _, r := range p {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}
