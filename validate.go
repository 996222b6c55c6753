package hdns

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate checks option structs before they are sent to the API, so obvious
// mistakes fail fast without a network round trip.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report field names as their wire names, not Go identifiers.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration on a fresh validator cannot fail for a non-empty tag.
	_ = v.RegisterValidation("rrtype", validRecordType)
	return v
}

// validRecordType validates that the field holds a record type the API accepts.
func validRecordType(fl validator.FieldLevel) bool {
	return RecordType(fl.Field().String()).IsValid()
}

// validateOpts runs struct validation and converts failures into a
// ValidationError carrying per-field reasons.
func validateOpts(opts any) error {
	err := validate.Struct(opts)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		return &ValidationError{Message: "invalid options", Fields: fields}
	}
	return &ValidationError{Message: err.Error()}
}
