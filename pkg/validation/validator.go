package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/hirewire/hirewire-api/pkg/response"
)

// Init configures the global validator used by Gin's binding:
// errors report JSON tag names, and a few alias tags cover domain rules.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		v.RegisterAlias("pwd", "min=6")          // password minimum length
		v.RegisterAlias("coverletter", "min=50") // cover letter minimum length
	}
}

// ToFieldErrors converts binding/validation errors into the API's
// errors-list shape.
func ToFieldErrors(err error) []response.FieldError {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return []response.FieldError{{Msg: "invalid JSON payload"}}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]response.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, response.FieldError{
				Msg:   fe.Field() + " " + messageFor(fe),
				Param: fe.Field(),
				Value: fmt.Sprintf("%v", fe.Value()),
			})
		}
		return out
	}

	return []response.FieldError{{Msg: "invalid payload"}}
}

func messageFor(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()

	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "uuid":
		return "must be a valid UUID"
	case "min":
		if isNumberKind(fe.Kind()) {
			return "must be at least " + param
		}
		return "must be at least " + param + " characters long"
	case "max":
		if isNumberKind(fe.Kind()) {
			return "must be at most " + param
		}
		return "must be at most " + param + " characters long"
	case "gte":
		return "must be greater than or equal to " + param
	case "lte":
		return "must be less than or equal to " + param
	case "gtefield":
		return "must be greater than or equal to " + param
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "datetime":
		return "must match datetime format " + param
	case "boolean":
		return "must be a boolean value"
	case "dive":
		return "contains an invalid element"
	case "pwd":
		return "must be at least 6 characters long"
	case "coverletter":
		return "must be at least 50 characters long"
	default:
		if param != "" {
			return fmt.Sprintf("failed validation %q with parameter %q", tag, param)
		}
		return fmt.Sprintf("failed validation %q", tag)
	}
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
