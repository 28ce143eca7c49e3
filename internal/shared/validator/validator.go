package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// dùng tên field trong JSON cho message
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidateStruct chạy `validate` tags và trả về lỗi của field đầu tiên.
func ValidateStruct(i any) error {
	err := validate.Struct(i)
	if err == nil {
		return nil
	}

	var verr validator.ValidationErrors
	if !errors.As(err, &verr) {
		return fmt.Errorf("validation error: %w", err)
	}

	if len(verr) == 0 {
		return nil
	}

	firstError := verr[0]

	if firstError.Tag() == "required" {
		return fmt.Errorf("field %s is required", firstError.Field())
	}

	return fmt.Errorf("field %s requires %s", firstError.Field(), strings.TrimSpace(firstError.Tag()+" "+firstError.Param()))
}
