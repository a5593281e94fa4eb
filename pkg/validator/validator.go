// Package validator decodes JSON request bodies and validates them with
// go-playground/validator tags, reporting one error entry per failing field.
package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/ghuser/inventory/pkg/httpx"
)

// ValidationFailedMessage is the envelope message for field-level failures.
const ValidationFailedMessage = "Validation failed"

// Normalizer is implemented by request types that clean their fields
// (trimming, for instance) before validation runs.
type Normalizer interface {
	Normalize()
}

// MessageProvider lets a request type supply its own human-readable message
// per field and tag, e.g. "Product name is required". Returning "" falls back
// to the generic message.
type MessageProvider interface {
	FieldMessage(field, tag, param string) string
}

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = validate.RegisterValidation("wholenumber", validateWholeNumber)
	_ = validate.RegisterValidation("maxrunes", validateMaxRunes)
	_ = validate.RegisterValidation("intmax", validateIntMax)
	_ = validate.RegisterValidation("notniluuid", validateNotNilUUID)
}

// validateWholeNumber accepts json.Number or string fields holding an integer >= 0.
func validateWholeNumber(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	n, err := strconv.ParseInt(s, 10, 64)
	return err == nil && n >= 0
}

// validateIntMax bounds an integer held in a json.Number or string field.
// Values that do not parse fail.
func validateIntMax(fl validator.FieldLevel) bool {
	limit, err := strconv.ParseInt(fl.Param(), 10, 64)
	if err != nil {
		return false
	}
	n, err := strconv.ParseInt(fl.Field().String(), 10, 64)
	return err == nil && n <= limit
}

// validateNotNilUUID rejects the all-zero UUID, which parses but names nothing.
func validateNotNilUUID(fl validator.FieldLevel) bool {
	id, err := uuid.Parse(fl.Field().String())
	return err == nil && id != uuid.Nil
}

// validateMaxRunes limits length in characters rather than bytes.
func validateMaxRunes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf8.RuneCountInString(fl.Field().String()) <= limit
}

// Validate runs struct-level validation using go-playground/validator tags.
func Validate(s any) error {
	return validate.Struct(s)
}

// FieldErrors converts validator.ValidationErrors into one FieldError per
// failing top-level field, in struct order. Element errors produced by `dive`
// ("categories[2]") collapse onto their parent field. A nil slice is returned
// for errors that are not validation errors.
func FieldErrors(err error, mp MessageProvider) []httpx.FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}

	out := make([]httpx.FieldError, 0, len(ve))
	seen := make(map[string]bool, len(ve))
	for _, e := range ve {
		field := rootField(e.Field())
		if seen[field] {
			continue
		}
		seen[field] = true

		msg := ""
		if mp != nil {
			msg = mp.FieldMessage(field, e.Tag(), e.Param())
		}
		if msg == "" {
			msg = formatFieldError(e)
		}
		out = append(out, httpx.FieldError{Field: field, Message: msg})
	}
	return out
}

func rootField(f string) string {
	if i := strings.IndexByte(f, '['); i >= 0 {
		return f[:i]
	}
	return f
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "uuid", "uuid4", "notniluuid":
		return "Must be a valid UUID"
	case "min":
		if e.Kind() == reflect.Slice {
			return fmt.Sprintf("Must contain at least %s entries", e.Param())
		}
		return fmt.Sprintf("Minimum length is %s", e.Param())
	case "max", "maxrunes":
		return fmt.Sprintf("Maximum length is %s", e.Param())
	case "email":
		return "Must be a valid email address"
	case "wholenumber":
		return "Must be a whole number of zero or more"
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", e.Param())
	case "lte", "intmax":
		return fmt.Sprintf("Must be less than or equal to %s", e.Param())
	default:
		return fmt.Sprintf("Validation failed on '%s'", e.Tag())
	}
}

// Check normalizes and validates an already-decoded request, returning the
// per-field errors. A nil slice means the request is valid.
func Check(req any) []httpx.FieldError {
	if n, ok := req.(Normalizer); ok {
		n.Normalize()
	}
	err := Validate(req)
	if err == nil {
		return nil
	}
	mp, _ := req.(MessageProvider)
	if fe := FieldErrors(err, mp); fe != nil {
		return fe
	}
	return []httpx.FieldError{{Field: "", Message: err.Error()}}
}

// ValidateRequest decodes the JSON request body into T, validates it, and
// writes a 400 error envelope if either step fails.
// Returns (parsedStruct, true) on success or (nil, false) on failure.
func ValidateRequest[T any](w http.ResponseWriter, r *http.Request) (*T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httpx.Fail(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return nil, false
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			httpx.FailFields(w, http.StatusBadRequest, ValidationFailedMessage, []httpx.FieldError{
				{Field: rootField(typeErr.Field), Message: fmt.Sprintf("Must be of type %s", typeErr.Type.Kind())},
			})
			return nil, false
		}
		httpx.Fail(w, http.StatusBadRequest, "Invalid JSON")
		return nil, false
	}
	if errs := Check(&req); errs != nil {
		httpx.FailFields(w, http.StatusBadRequest, ValidationFailedMessage, errs)
		return nil, false
	}
	return &req, true
}
