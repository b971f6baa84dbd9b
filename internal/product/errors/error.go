// Package errors provides custom error types for product-related operations.
package errors

import (
	"errors"
	"fmt"
)

var ErrProductNotFound = errors.New("product not found")
var ErrValidation = errors.New("invalid product")
var ErrDuplicateCode = errors.New("product code already exists")
var ErrStorageRead = errors.New("can't read products")
var ErrStorageWrite = errors.New("can't save products")

// ValidationError reports the first rule a product field failed on.
// Field is the JSON name of the field, Rule the validation tag.
type ValidationError struct {
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: field %s failed on rule: %s", ErrValidation, e.Field, e.Rule)
}

// Is matches ErrValidation, and ErrDuplicateCode for the uniqueness rule.
func (e *ValidationError) Is(target error) bool {
	if target == ErrValidation {
		return true
	}
	return target == ErrDuplicateCode && e.Rule == RuleUnique
}

// Rules reported in ValidationError.Rule besides the validator tags.
const (
	RuleUnique = "unique"
	RuleType   = "type"
)
