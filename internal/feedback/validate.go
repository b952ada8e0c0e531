package feedback

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Field names one wizard input.
type Field string

const (
	FieldName         Field = "name"
	FieldEmail        Field = "email"
	FieldExpectations Field = "expectations"
	FieldExperience   Field = "experience"
	FieldKeyTakeaways Field = "keyTakeaways"
	FieldImprovements Field = "improvements"
)

// Fields lists every wizard input in form order.
func Fields() []Field {
	return []Field{FieldName, FieldEmail, FieldExpectations, FieldExperience, FieldKeyTakeaways, FieldImprovements}
}

// ParseField resolves a form input name.
func ParseField(name string) (Field, bool) {
	for _, field := range Fields() {
		if string(field) == name {
			return field, true
		}
	}
	return "", false
}

type rule struct {
	tag     string
	message string
}

var rules = map[Field]rule{
	FieldName:         {tag: "min=2", message: "Name must be at least 2 characters."},
	FieldEmail:        {tag: "required,email", message: "Invalid email address."},
	FieldExpectations: {tag: "min=10", message: "Expectations must be at least 10 characters."},
	FieldExperience:   {tag: "required,oneof=Excellent Good Fair Poor", message: "You need to select an experience rating."},
	FieldKeyTakeaways: {tag: "min=10", message: "Key takeaways must be at least 10 characters."},
	FieldImprovements: {tag: "min=10", message: "Improvements must be at least 10 characters."},
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func fieldValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateField checks one value against its field predicate and returns the
// user-facing message, or "" when the value is valid.
func ValidateField(field Field, value string) string {
	r, ok := rules[field]
	if !ok {
		return ""
	}
	if err := fieldValidator().Var(strings.TrimSpace(value), r.tag); err != nil {
		return r.message
	}
	return ""
}

// Values holds raw wizard input keyed by field.
type Values map[Field]string

// Clone returns an independent copy.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for field, value := range v {
		out[field] = value
	}
	return out
}

// FieldErrors holds per-field validation messages. A field without an entry
// is valid.
type FieldErrors map[Field]string

// Any reports whether any of the given fields has an error. With no fields it
// checks the whole set.
func (e FieldErrors) Any(fields ...Field) bool {
	if len(fields) == 0 {
		return len(e) > 0
	}
	for _, field := range fields {
		if e[field] != "" {
			return true
		}
	}
	return false
}

// ValidateFields checks the given fields of values and returns the errors
// found. Fields that pass are absent from the result.
func ValidateFields(values Values, fields ...Field) FieldErrors {
	errs := FieldErrors{}
	for _, field := range fields {
		if msg := ValidateField(field, values[field]); msg != "" {
			errs[field] = msg
		}
	}
	return errs
}
