package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const MsgBodyNotObject = "Request body must be a JSON object"

type ValidationErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func msgForTag(tag string) string {
	switch tag {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return "Value is too short or too small"
	case "max":
		return "Value is too long or too large"
	case "oneof":
		return "Value is not one of the allowed options"
	case "url":
		return "Invalid URL format"
	default:
		return "Invalid value"
	}
}

func messageForFieldError(fieldError validator.FieldError) string {
	if fieldError.Param() == "" {
		return msgForTag(fieldError.Tag())
	}

	switch fieldError.Tag() {
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fieldError.Param())
	case "max":
		return fmt.Sprintf("Must not exceed %s characters", fieldError.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.Join(strings.Fields(fieldError.Param()), ", "))
	default:
		return msgForTag(fieldError.Tag())
	}
}

func getJSONFieldName(structType reflect.Type, fieldName string) string {
	if structType == nil || structType.Kind() != reflect.Struct {
		return fieldName
	}

	field, found := structType.FieldByName(fieldName)
	if !found {
		return fieldName
	}

	jsonTag := field.Tag.Get("json")
	if jsonTag == "" {
		return fieldName
	}

	return strings.Split(jsonTag, ",")[0]
}

// FormatValidationErrors turns binding errors into field/message pairs keyed by JSON name.
func FormatValidationErrors(err error, model interface{}) []ValidationErrorResponse {
	var errorsList []ValidationErrorResponse

	if err == nil {
		return errorsList
	}

	var jsonErr *json.UnmarshalTypeError
	if errors.As(err, &jsonErr) {
		if jsonErr.Field == "" {
			return []ValidationErrorResponse{{Message: MsgBodyNotObject}}
		}
		return []ValidationErrorResponse{
			{
				Field:   jsonErr.Field,
				Message: fmt.Sprintf("Invalid type for field %s. Expected %s, got %s", jsonErr.Field, jsonErr.Type, jsonErr.Value),
			},
		}
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errorsList
	}

	var structType reflect.Type
	if model != nil {
		structType = reflect.TypeOf(model)
		if structType.Kind() == reflect.Ptr {
			structType = structType.Elem()
		}
	}

	errorsList = make([]ValidationErrorResponse, len(validationErrors))
	for i, fieldError := range validationErrors {
		errorsList[i] = ValidationErrorResponse{
			Field:   getJSONFieldName(structType, fieldError.Field()),
			Message: messageForFieldError(fieldError),
		}
	}

	return errorsList
}
