package content

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError describes one invalid profile field
type ValidationError struct {
	Field      string // Field path (e.g., "projects[0].link")
	Message    string // Error message
	Suggestion string // Helpful suggestion (optional)
	Line       int    // Line number in the profile file (if available)
}

// Error returns a formatted error message
func (e *ValidationError) Error() string {
	var msg string
	if e.Line > 0 {
		msg = fmt.Sprintf("validation error at %s (line %d): %s", e.Field, e.Line, e.Message)
	} else {
		msg = fmt.Sprintf("validation error at %s: %s", e.Field, e.Message)
	}
	if e.Suggestion != "" {
		msg += fmt.Sprintf(". Suggestion: %s", e.Suggestion)
	}
	return msg
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error returns all validation errors formatted with clear separation
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "found %d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, err.Error())
	}
	return b.String()
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their profile key rather than the Go field name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// tokens: a comma-separated list with at least one non-empty entry
	_ = v.RegisterValidation("tokens", func(fl validator.FieldLevel) bool {
		return len(SplitList(fl.Field().String())) > 0
	})

	return v
}

// Validate checks that a record is complete enough to generate from.
// It returns nil or ValidationErrors. Callers are expected to run it before
// generation; the generator assumes a valid record.
func Validate(rec *Record) error {
	if rec == nil {
		return ValidationErrors{{Field: "profile", Message: "profile is required"}}
	}

	err := validate.Struct(rec)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate profile: %w", err)
	}

	result := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fieldPath(fe.Namespace())
		result = append(result, ValidationError{
			Field:      field,
			Message:    messageFor(fe),
			Suggestion: suggestionFor(fe),
			Line:       rec.lines[lineKey(field)],
		})
	}
	return result
}

// fieldPath strips the struct name from a validator namespace:
// "Record.projects[0].link" → "projects[0].link"
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

// lineKey converts "projects[0].link" to the dotted form "projects.0.link"
func lineKey(field string) string {
	return strings.NewReplacer("[", ".", "]", "").Replace(field)
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("'%v' is not a valid email address", fe.Value())
	case "url":
		return fmt.Sprintf("'%v' is not a valid URL", fe.Value())
	case "tokens":
		return fmt.Sprintf("%s must list at least one comma-separated value", fe.Field())
	default:
		return fmt.Sprintf("%s failed the '%s' check", fe.Field(), fe.Tag())
	}
}

func suggestionFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "url":
		return "include the scheme, like 'https://github.com/you'"
	case "tokens":
		return "separate entries with commas, like 'Go, SQL, React'"
	default:
		return ""
	}
}
