// Package validation validates configuration structs with go-playground
// struct tags and reports failures as INVALID_ARGUMENT app errors.
//
//	type Config struct {
//	    Provider string `mapstructure:"provider" validate:"oneof=static consul"`
//	}
//	err := validation.Validate(cfg)
package validation
