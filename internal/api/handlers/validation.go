package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// В деталях ошибок используем имена полей из JSON
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(dateLayout, fl.Field().String())
		return err == nil
	})

	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(clockLayout, fl.Field().String())
		return err == nil
	})

	return v
}

// Validate проверяет структуру по тегам validate
func Validate(v interface{}) error {
	return validate.Struct(v)
}

// ValidationDetails поле -> нарушенное правило
func ValidationDetails(err error) map[string]string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return nil
	}

	details := make(map[string]string, len(errs))
	for _, e := range errs {
		details[e.Field()] = e.Tag()
	}
	return details
}

// DecodeAndValidate декодирует тело запроса и проверяет его
// При ошибке сам отправляет 400 и возвращает false
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}, msgInvalidBody string) bool {
	if err := DecodeJSON(r, v); err != nil {
		RespondBadRequest(w, msgInvalidBody)
		return false
	}
	if err := Validate(v); err != nil {
		RespondValidationError(w, msgInvalidBody, ValidationDetails(err))
		return false
	}
	return true
}
