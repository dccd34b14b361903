package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Reportable content type validation
	validate.RegisterValidation("content_type", func(fl validator.FieldLevel) bool {
		ct := fl.Field().String()
		validTypes := []string{"review", "comment_reply", "group_message", "user"}
		for _, t := range validTypes {
			if ct == t {
				return true
			}
		}
		return false
	})

	// Moderation action validation
	validate.RegisterValidation("moderation_action", func(fl validator.FieldLevel) bool {
		action := fl.Field().String()
		validActions := []string{"delete", "warn", "ban", "no_action"}
		for _, a := range validActions {
			if action == a {
				return true
			}
		}
		return false
	})

	// Group member role validation
	validate.RegisterValidation("group_role", func(fl validator.FieldLevel) bool {
		role := fl.Field().String()
		validRoles := []string{"admin", "moderator", "member"}
		for _, r := range validRoles {
			if role == r {
				return true
			}
		}
		return false
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		case "url":
			errors[field] = "Invalid URL format"
		case "content_type":
			errors[field] = "Invalid content type. Must be: review, comment_reply, group_message, or user"
		case "moderation_action":
			errors[field] = "Invalid action. Must be: delete, warn, ban, or no_action"
		case "group_role":
			errors[field] = "Invalid role. Must be: admin, moderator, or member"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
