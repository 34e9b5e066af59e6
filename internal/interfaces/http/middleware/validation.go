package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator configures gin's validator with custom tags
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// Use JSON/form tag names for field names in errors
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})

		// reportdate accepts the grid's d/m/Y form or Y-m-d, with an
		// optional time component.
		_ = v.RegisterValidation("reportdate", validReportDate)
	}
}

// validReportDate is deliberately permissive: malformed dates degrade to
// zero matches downstream rather than a binding failure, so only values
// that cannot possibly carry a date are rejected.
func validReportDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return len(strings.TrimSpace(value)) >= 8
}
