package validators

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	pkgerrors "github.com/angelmondragon/orderdesk/pkg/errors"
	"github.com/go-playground/validator/v10"
)

var (
	emailPattern = regexp.MustCompile("^[a-zA-Z0-9_!#$%&'*+/=?`{|}~^.-]+@[a-zA-Z0-9.-]+$")
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
)

var validate = newValidator()

// Normalizer is implemented by payloads that trim or clean their fields
// before validation runs.
type Normalizer interface {
	Normalize()
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	_ = v.RegisterValidation("emailaddr", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

func DecodeJSONBody(r *http.Request, dest any) error {
	defer func() {
		io.Copy(io.Discard, r.Body)
	}()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body").WithDetails(map[string]any{"error": err.Error()})
	}
	if n, ok := dest.(Normalizer); ok {
		n.Normalize()
	}
	return Struct(dest)
}

// Struct validates an already decoded payload.
func Struct(dest any) error {
	if err := validate.Struct(dest); err != nil {
		return formatValidationErrors(dest, err)
	}
	return nil
}

func formatValidationErrors(dest any, err error) *pkgerrors.Error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldPath(fieldErr)] = validationMessage(dest, fieldErr)
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "Validation error").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Validation error")
}

// fieldPath drops the root struct name from the namespace, so nested
// errors read "orderItems[0].quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func validationMessage(dest any, fe validator.FieldError) string {
	label := fieldLabel(dest, fe)
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", label, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", label, fe.Param())
	case "email", "emailaddr", "phone":
		return label + " should be valid"
	}
	return label + " is invalid"
}

// fieldLabel reads the human label from the `label` struct tag, falling
// back to the JSON field name.
func fieldLabel(dest any, fe validator.FieldError) string {
	if field, ok := lookupField(reflect.TypeOf(dest), fe.StructNamespace()); ok {
		if label := field.Tag.Get("label"); label != "" {
			return label
		}
	}
	return fe.Field()
}

func lookupField(t reflect.Type, structNS string) (reflect.StructField, bool) {
	parts := strings.Split(structNS, ".")
	if len(parts) < 2 {
		return reflect.StructField{}, false
	}
	var field reflect.StructField
	for _, part := range parts[1:] {
		for t.Kind() == reflect.Pointer || t.Kind() == reflect.Slice {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct {
			return reflect.StructField{}, false
		}
		if i := strings.IndexByte(part, '['); i >= 0 {
			part = part[:i]
		}
		f, ok := t.FieldByName(part)
		if !ok {
			return reflect.StructField{}, false
		}
		field = f
		t = f.Type
	}
	return field, true
}
