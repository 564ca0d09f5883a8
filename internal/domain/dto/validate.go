package dto

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Validate checks the struct tags of a request DTO.
func Validate(v interface{}) error {
	return validate.Struct(v)
}
