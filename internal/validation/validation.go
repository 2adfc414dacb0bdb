// Package validation holds the request input types and turns validator
// failures into field-level AppError messages.
package validation

import (
	"strings"
	"time"

	"qalam/internal/utils"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	// Slug fields must already be in slug form when supplied explicitly.
	_ = validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return utils.IsValidSlug(fl.Field().String())
	})
}

type RegisterUserInput struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=reader writer admin"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type PostInput struct {
	Title       string     `json:"title" validate:"required,max=255"`
	Slug        string     `json:"slug" validate:"omitempty,slug,max=255"`
	Content     string     `json:"content" validate:"required"`
	Excerpt     string     `json:"excerpt" validate:"omitempty,max=500"`
	Image       string     `json:"image" validate:"omitempty,max=2048"`
	PublishedAt *time.Time `json:"publishedAt"`
	CategoryID  string     `json:"categoryId" validate:"omitempty,uuid"`
}

type CategoryInput struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Slug        string `json:"slug" validate:"omitempty,slug,max=255"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
}

type CreateCommentInput struct {
	Content  string `json:"content" validate:"required"`
	ParentID string `json:"parentId" validate:"omitempty,uuid"`
}

type ToggleReactionInput struct {
	IsDislike bool `json:"isDislike"`
}

// Check validates an input struct and converts any failures into a
// VALIDATION AppError carrying one message per field.
func Check(input interface{}) *utils.AppError {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return utils.NewAppError(utils.ErrValidation, "validation failed", err)
	}

	fields := make(map[string]string, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields[fieldName(fieldErr)] = message(fieldErr)
	}
	return utils.NewValidationError(fields)
}

func fieldName(fe validator.FieldError) string {
	return strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "may not be greater than " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "slug":
		return "may only contain lowercase letters, numbers, and hyphens"
	case "hexcolor":
		return "must be a valid hex color code (e.g. #FF0000)"
	case "uuid":
		return "must be a valid id"
	default:
		return "is invalid"
	}
}
