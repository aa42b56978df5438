package api

import (
	"encoding/json"
	"errors"

	"github.com/Drolfothesgnir/mfm/mfm"
	"github.com/go-playground/validator/v10"
)

type ErrorField struct {
	FieldName    string `json:"field"`
	ErrorMessage string `json:"message"`
}

type ErrorResponse struct {
	Error  string       `json:"error"`
	Fields []ErrorField `json:"fields,omitempty"`
}

func NewErrorResponse(err error, fields ...ErrorField) ErrorResponse {
	return ErrorResponse{
		Error:  err.Error(),
		Fields: fields,
	}
}

// ExtractErrorFields turns binding errors into per-field messages. Errors of other kinds
// produce no fields.
func ExtractErrorFields(err error) []ErrorField {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make([]ErrorField, 0, len(validationErrors))
		for _, fe := range validationErrors {
			fields = append(fields, ErrorField{
				FieldName:    fe.Field(),
				ErrorMessage: getBindingErrorMessage(fe.Tag()),
			})
		}
		return fields
	}

	// wrong json type, e.g. a string in place of nest_limit
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return []ErrorField{{
			FieldName:    typeErr.Field,
			ErrorMessage: "invalid type, expected " + typeErr.Type.String(),
		}}
	}

	return nil
}

// treeErrorField points at the offending node of a submitted tree.
func treeErrorField(field string, err error) ErrorField {
	var decodeErr *mfm.DecodeError
	if errors.As(err, &decodeErr) {
		msg := decodeErr.Issue.String()
		if decodeErr.Err != nil {
			msg = decodeErr.Err.Error()
		}
		return ErrorField{
			FieldName:    field + decodeErr.Path,
			ErrorMessage: msg,
		}
	}
	return ErrorField{FieldName: field, ErrorMessage: err.Error()}
}

func getBindingErrorMessage(tag string) string {
	switch tag {
	case "required":
		return "this field is required"
	case "min":
		return "value is too short"
	case "max":
		return "value is too long"
	case "gte":
		return "must be greater than or equal to the allowed minimum"
	case "lte":
		return "must be less than or equal to the allowed maximum"
	case "oneof":
		return "must be one of the allowed values"
	default:
		return "invalid input"
	}
}
