package product

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Validator is the validation gate in front of the catalog service.
// It reports every violated constraint at once, not just the first.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator that reports field names by their
// JSON tag, matching what clients actually send.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// ValidateCreate checks a create payload against the full product shape.
// It returns the ordered list of violations, empty when valid.
func (v *Validator) ValidateCreate(data *CreateProductData) []string {
	return v.collect(v.validate.Struct(data))
}

// ValidateUpdate checks a partial update: every present field must satisfy
// its create-shape rule, absent fields are skipped.
func (v *Validator) ValidateUpdate(data *UpdateProductData) []string {
	if data.IsEmpty() {
		return []string{"no fields provided to update"}
	}
	return v.collect(v.validate.Struct(data))
}

// canonicalUUIDLength is the length of the hyphenated hex-text form,
// the only form ids are ever issued in.
const canonicalUUIDLength = 36

// ValidateID checks a path-supplied identifier against the format used at
// creation time: a canonical hyphenated UUID. uuid.Parse alone also accepts
// braced, URN and bare-hex forms, so the length is checked first.
func (v *Validator) ValidateID(id string) []string {
	if len(id) != canonicalUUIDLength {
		return []string{"invalid product ID format"}
	}
	if _, err := uuid.Parse(id); err != nil {
		return []string{"invalid product ID format"}
	}
	return nil
}

func (v *Validator) collect(err error) []string {
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	violations := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		violations = append(violations, formatFieldError(e))
	}
	return violations
}

// formatFieldError turns a single field violation into a client-facing message.
func formatFieldError(e validator.FieldError) string {
	field := e.Field()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gte":
		return fmt.Sprintf("%s cannot be negative", field)
	case "min":
		return fmt.Sprintf("%s cannot be empty", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
