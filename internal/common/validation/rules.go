// internal/common/validation/rules.go
package validation

import (
	stderrors "errors"
	"sort"
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
)

// FromRules converts the error returned by an ozzo-validation Validate
// method into a ValidationResult. A nil error is a valid result; an error
// that is not a field error map is reported against the empty field.
func FromRules(err error) *ValidationResult {
	if err == nil {
		return &ValidationResult{Valid: true}
	}

	var fieldErrs ozzo.Errors
	if !stderrors.As(err, &fieldErrs) {
		return &ValidationResult{Errors: []ValidationError{ruleError("", err)}}
	}

	fields := make([]string, 0, len(fieldErrs))
	for f := range fieldErrs {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	result := &ValidationResult{}
	for _, f := range fields {
		result.Errors = append(result.Errors, ruleError(f, fieldErrs[f]))
	}
	return result
}

func ruleError(field string, err error) ValidationError {
	ve := ValidationError{Field: field, Message: err.Error()}
	var coded ozzo.Error
	if stderrors.As(err, &coded) {
		ve.Code = strings.ToUpper(strings.TrimPrefix(coded.Code(), "validation_"))
	}
	return ve
}
