package router

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/nataa-app/landing-gateway/internal/log"
	apperrors "github.com/nataa-app/landing-gateway/pkg/errors"
)

const MsgPayloadTooLarge = "Request payload too large"

func GetLogger(ctx *RequestContext) *log.Logger {
	if logger := ctx.Request.Context().Value(log.LoggerKeyForContext); logger != nil {
		if l, ok := logger.(*log.Logger); ok {
			return l
		}
	}

	baseLogger := log.NewLoggerWithJSONOutput()
	return baseLogger.WithCorrelationID(ctx.Request.Context())
}

func OKResult(data any, message string) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusOK,
		Data:       data,
		Message:    message,
	}
}

// AckResult is the bare success acknowledgement for submissions.
func AckResult() *ServiceResult {
	return OKResult(nil, "ok")
}

func TooManyRequestsResult(data RateLimitResponse) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusTooManyRequests,
		Data:       data,
		Message:    "Too Many Requests",
	}
}

func BadRequestResult(message string, payload any) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusBadRequest,
		Data:       payload,
		Message:    message,
	}
}

func NotFoundResult(message string) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusNotFound,
		Data:       nil,
		Message:    message,
	}
}

func InternalServerErrorResult(message string) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusInternalServerError,
		Data:       nil,
		Message:    message,
	}
}

func ErrorResult(statusCode int, message string, data any) *ServiceResult {
	return &ServiceResult{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
	}
}

// ErrorFromAppError maps a service error onto its HTTP status and the message
// safe to show the caller. Errors that are not AppErrors never leak their text.
func ErrorFromAppError(err error) *ServiceResult {
	return ErrorResult(apperrors.HTTPStatusCode(err), apperrors.GetHumanReadableMessage(err), nil)
}

// BindLenient decodes a JSON object into req one field at a time, matching
// keys to exact json tag names. A missing, malformed or non-object body is an
// empty submission, and a field holding the wrong JSON type is left at its
// zero value, so the service reports which fields are missing. Binding-tag
// violations and oversized bodies are rejected here.
func BindLenient[T any](ctx *RequestContext, req *T, invalidMessage string) *ServiceResult {
	var zero T
	*req = zero

	if ctx.Request.Body != nil {
		body, err := io.ReadAll(ctx.Request.Body)
		if err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				return ErrorResult(http.StatusRequestEntityTooLarge, MsgPayloadTooLarge, nil)
			}
			GetLogger(ctx).Debug("Unreadable request body treated as empty", "error", err.Error())
		} else {
			decodeFields(ctx, req, body)
		}
	}

	if err := binding.Validator.ValidateStruct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return BadRequestResult(invalidMessage, apperrors.FormatValidationErrors(err, req))
		}
		return BadRequestResult(invalidMessage, nil)
	}

	return nil
}

func decodeFields(ctx *RequestContext, req any, body []byte) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		GetLogger(ctx).Debug("Request body is not a JSON object, treated as empty", "error", err.Error())
		return
	}

	target := reflect.ValueOf(req).Elem()
	if target.Kind() != reflect.Struct {
		return
	}

	targetType := target.Type()
	for i := 0; i < targetType.NumField(); i++ {
		field := targetType.Field(i)
		name := strings.Split(field.Tag.Get("json"), ",")[0]
		if name == "" || name == "-" || !field.IsExported() {
			continue
		}

		raw, ok := fields[name]
		if !ok {
			continue
		}

		// Decode into a fresh value so a type mismatch cannot leave a half-set pointer behind.
		value := reflect.New(field.Type)
		if err := json.Unmarshal(raw, value.Interface()); err != nil {
			GetLogger(ctx).Debug("Mistyped field treated as absent", "field", name)
			continue
		}
		target.Field(i).Set(value.Elem())
	}
}
