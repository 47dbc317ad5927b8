package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/oksasatya/bootcamp-directory/internal/domain/apperror"
	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Init configures the package validator. It reads `validate` tags.
// - Uses JSON tag names in errors.
// - Registers the domain rules career, skill, role and httpurl.
func Init() {
	once.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		v.RegisterAlias("pwd", "min=6")
		_ = v.RegisterValidation("career", oneOf(entity.Careers))
		_ = v.RegisterValidation("skill", oneOf(entity.Skills))
		_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
			return entity.Role(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("httpurl", func(fl validator.FieldLevel) bool {
			u, err := url.Parse(fl.Field().String())
			return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
		})
		validate = v
	})
}

func oneOf(values []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		for _, v := range values {
			if s == v {
				return true
			}
		}
		return false
	}
}

// Struct validates s and collects every failing field into a single
// validation error.
func Struct(s any) error {
	Init()
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	if msgs := ToMessages(err); len(msgs) > 0 {
		return apperror.Validation(msgs...)
	}
	return apperror.Internal("validation failed", err)
}

// ToMessages converts validator errors into "<field> <message>" strings.
func ToMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fe.Field()+" "+formatFieldError(fe))
	}
	return out
}

// DecodeStrict reads one JSON object into dst and rejects keys dst does not
// declare. A type mismatch still runs the struct rules over the rest of the
// payload so every message comes back at once.
func DecodeStrict(r io.Reader, dst any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var ute *json.UnmarshalTypeError
		if errors.As(err, &ute) {
			return typeError(ute, dst)
		}
		return decodeError(err)
	}
	if dec.More() {
		return apperror.Validation("request body must contain a single JSON object")
	}
	return nil
}

func typeError(ute *json.UnmarshalTypeError, dst any) error {
	msgs := []string{fmt.Sprintf("%s must be of type %s", ute.Field, ute.Type)}
	Init()
	bad := ute.Field
	if i := strings.LastIndexByte(bad, '.'); i >= 0 {
		bad = bad[i+1:]
	}
	var verrs validator.ValidationErrors
	if errors.As(validate.Struct(dst), &verrs) {
		for _, fe := range verrs {
			if fe.Field() == bad {
				continue
			}
			msgs = append(msgs, fe.Field()+" "+formatFieldError(fe))
		}
	}
	return apperror.Validation(msgs...)
}

func decodeError(err error) error {
	var se *json.SyntaxError
	switch {
	case errors.Is(err, io.EOF):
		return apperror.Validation("request body is required")
	case errors.As(err, &se), errors.Is(err, io.ErrUnexpectedEOF):
		return apperror.Validation("invalid json")
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		return apperror.Validation(strings.TrimPrefix(err.Error(), "json: ") + " is not allowed")
	}
	return apperror.Validation("invalid payload")
}

func formatFieldError(fe validator.FieldError) string {
	param := fe.Param()
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "httpurl", "url":
		return "must be a valid URL with HTTP or HTTPS"
	case "career":
		return "must be one of " + strings.Join(entity.Careers, ", ")
	case "skill":
		return "must be one of " + strings.Join(entity.Skills, ", ")
	case "role":
		return "must be one of user, publisher, admin"
	case "oneof":
		return "must be one of " + strings.Join(strings.Fields(param), ", ")
	case "min":
		if isNumberKind(fe.Kind()) {
			return "must be at least " + param
		}
		if fe.Kind() == reflect.Slice {
			return "must contain at least " + param + " item(s)"
		}
		return "must be at least " + param + " characters long"
	case "max":
		if isNumberKind(fe.Kind()) {
			return "must be at most " + param
		}
		return "can not be more than " + param + " characters"
	case "gte":
		return "must be greater than or equal to " + param
	case "lte":
		return "must be less than or equal to " + param
	case "gt":
		return "must be greater than " + param
	case "lt":
		return "must be less than " + param
	}
	return "is invalid"
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
