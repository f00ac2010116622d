package validator

import (
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterGinValidator teaches gin's binding engine to report JSON field
// names and adds the custom rules used by request payloads.
func RegisterGinValidator() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		if err := v.RegisterValidation("filename", fileNameValidator); err != nil {
			panic(err)
		}
	})
}

// fileNameValidator accepts a bare file name only, so it can be joined
// onto the files directory without escaping it.
var fileNameValidator validator.Func = func(fl validator.FieldLevel) bool {
	return IsFileName(fl.Field().String())
}

func IsFileName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return filepath.Base(name) == name
}

// MessageForTag renders a human readable message for a failed rule.
func MessageForTag(tag string, param string) string {
	switch tag {
	case "required":
		return "this field is required"
	case "filename":
		return "must be a plain file name"
	case "min":
		return "must be at least " + param
	case "gte":
		return "must be greater than or equal to " + param
	case "uuid", "uuid4":
		return "must be a valid UUID"
	}
	return tag
}
