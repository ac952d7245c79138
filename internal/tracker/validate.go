package tracker

import (
	"fmt"

	"github.com/oselo/compass/model"
)

// fieldErrors accumulates field-level validation failures so every problem
// with a request is reported in one response.
type fieldErrors struct {
	details []model.FieldError
}

func (f *fieldErrors) add(field, code, message string) {
	f.details = append(f.details, model.FieldError{Field: field, Code: code, Message: message})
}

func (f *fieldErrors) required(field, value string) {
	if value == "" {
		f.add(field, "required", fmt.Sprintf("%s is required", field))
	}
}

func (f *fieldErrors) intRange(field string, value, min, max int) {
	if value < min || value > max {
		f.add(field, "out_of_range", fmt.Sprintf("%s must be between %d and %d", field, min, max))
	}
}

// err returns a VALIDATION_ERROR carrying the accumulated details, or nil
// when nothing failed.
func (f *fieldErrors) err() error {
	if len(f.details) == 0 {
		return nil
	}
	return model.NewValidationError(f.details)
}

func validRef(f *fieldErrors, field string, ref model.EntityRef) {
	if ref.Type == "" || ref.ID == "" {
		f.add(field, "required", fmt.Sprintf("%s must name an entity type and id", field))
		return
	}
	if !ref.Type.Valid() {
		f.add(field, "invalid", fmt.Sprintf("unknown entity type %q", ref.Type))
	}
}
