// Package validation registers the pin/board field patterns as custom
// rules on gin's binding engine so request DTOs can declare them in
// binding tags.
package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	titleRe       = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	descriptionRe = regexp.MustCompile(`^[a-zA-Z0-9\s.,!?'-]+$`)
	imageURLRe    = regexp.MustCompile(`(?i)^(https?://.*\.(png|jpg|jpeg|gif|svg|webp))$`)
	tagRe         = regexp.MustCompile(`^[a-zA-Z0-9\s]+$`)
)

// Register installs the custom rules. Must run before any request binding
// uses them; server.Init and test setups call it.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected binding validator engine")
	}

	rules := map[string]*regexp.Regexp{
		"pin_title":       titleRe,
		"pin_description": descriptionRe,
		"image_url":       imageURLRe,
		"pin_tag":         tagRe,
	}
	for tag, re := range rules {
		re := re
		err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return re.MatchString(fl.Field().String())
		})
		if err != nil {
			return fmt.Errorf("register %s: %w", tag, err)
		}
	}
	return nil
}

// Message turns a binding error into the client-facing validation message.
// Only the first field error is reported.
func Message(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return "Invalid request"
	}

	fe := errs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", fe.Field(), fe.Param())
	case "email":
		return "Invalid email address"
	case "pin_title":
		return "Title can only contain letters and spaces"
	case "pin_description":
		return "Description can only contain letters, numbers, spaces, and basic punctuation"
	case "image_url":
		return "Invalid image URL format"
	case "pin_tag":
		return "Tags can only contain letters, numbers, and spaces"
	}
	return "Invalid request"
}
