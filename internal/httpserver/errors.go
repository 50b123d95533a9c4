package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/Skotchmaster/cyberacademy/internal/logging"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type FieldError struct {
	Field   string `json:"field,omitempty"`
	Tag     string `json:"tag,omitempty"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

type ErrorBody struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v: v}
}

func (cv *Validator) Validate(i any) error {
	return cv.v.Struct(i)
}

// invalid builds a 400 carrying per-field details for bind or validation failures.
func invalid(message string, err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, ErrorBody{Message: message, Errors: fieldErrors(err)})
}

func fieldErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return []FieldError{{Message: fmt.Sprint(he.Message)}}
		}
		return []FieldError{{Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: ruleMessage(fe),
		})
	}
	return out
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "numeric":
		return fe.Field() + " must be a decimal number"
	case "min":
		return fe.Field() + " must not be empty"
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

// ErrorHandler renders every error as {"message": ...}; internals are
// logged and never echoed back.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	body := ErrorBody{Message: "Internal server error"}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		switch m := he.Message.(type) {
		case ErrorBody:
			body = m
		case string:
			body = ErrorBody{Message: m}
		case error:
			body = ErrorBody{Message: http.StatusText(code)}
		default:
			body = ErrorBody{Message: fmt.Sprint(m)}
		}
	} else {
		logging.FromContext(c.Request().Context()).Error("unhandled_error", "error", err)
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(code)
	} else {
		werr = c.JSON(code, body)
	}
	if werr != nil {
		logging.FromContext(c.Request().Context()).Error("error_response_failed", "error", werr)
	}
}
