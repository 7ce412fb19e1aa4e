package handlers

import (
	"fmt"

	"imageshare/internal/services"

	"github.com/go-playground/validator/v10"
)

// checkStruct evaluates a request struct's validate tags and folds any
// failures into the shared ValidationError shape. Returns nil when the
// struct is valid.
func checkStruct(v *validator.Validate, s interface{}) *services.ValidationError {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	fields := make(map[string]string)
	for _, e := range err.(validator.ValidationErrors) {
		fields[e.Field()] = fmt.Sprintf("failed on the '%s' rule", e.Tag())
	}
	return &services.ValidationError{Fields: fields}
}
