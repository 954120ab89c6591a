// Package validation holds the custom binding rules used by request DTOs.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validation rule patterns
var (
	// TagPattern allows letters, digits, spaces, '+', '.', '&' and '-'
	TagPattern = `^[\p{L}\p{N}][\p{L}\p{N} +.&\-]*$`

	// PhonePattern is an optional '+' followed by digits, spaces, dashes or parentheses
	PhonePattern = `^\+?[0-9][0-9 ()\-]{5,30}$`

	TagMaxLength = 60
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Tag   *regexp.Regexp
	Phone *regexp.Regexp
}{
	Tag:   regexp.MustCompile(TagPattern),
	Phone: regexp.MustCompile(PhonePattern),
}

// IsValidTag reports whether s is an acceptable startup tag
func IsValidTag(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || len([]rune(s)) > TagMaxLength {
		return false
	}
	return CompiledPatterns.Tag.MatchString(s)
}

// IsValidPhone reports whether s looks like a phone number
func IsValidPhone(s string) bool {
	return CompiledPatterns.Phone.MatchString(strings.TrimSpace(s))
}

// Messages maps each custom tag to the message shown for a failed field
var Messages = map[string]string{
	"tag":   "must contain only letters, digits, spaces and + . & -",
	"phone": "must be a valid phone number",
}

// Register adds the custom rules to v
func Register(v *validator.Validate) error {
	rules := map[string]func(string) bool{
		"tag":   IsValidTag,
		"phone": IsValidPhone,
	}
	for name, fn := range rules {
		fn := fn
		err := v.RegisterValidation(name, func(fl validator.FieldLevel) bool {
			return fn(fl.Field().String())
		})
		if err != nil {
			return fmt.Errorf("register %s rule: %w", name, err)
		}
	}
	return nil
}
