package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports field errors under their json names so the client
// can map them straight onto form fields.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type validationError struct {
	Message string            `json:"message"`
	Error   map[string]string `json:"error"`
}

// DecodeAndValidate decodes the JSON body into dst and applies its validate
// tags. Failures are reported straight to the client as a field-level error
// map; the caller just returns when ok is false.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteJSON(w, http.StatusBadRequest, validationError{
			Message: "Validation Failed",
			Error:   map[string]string{"body": "invalid JSON body"},
		})
		return false
	}

	if err := validate.Struct(dst); err != nil {
		fields := map[string]string{}
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) {
			for _, fe := range invalid {
				fields[fe.Field()] = fe.Tag()
			}
		} else {
			fields["body"] = err.Error()
		}
		WriteJSON(w, http.StatusBadRequest, validationError{
			Message: "Validation Failed",
			Error:   fields,
		})
		return false
	}

	return true
}
