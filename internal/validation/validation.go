// Package validation builds the shared validator instance with the custom
// rules the request DTOs and models rely on.
package validation

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"

	"kritika/internal/models"
)

var (
	usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)
	slugRe     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// New returns a validator with the project's custom rules registered:
//   - username: letters, digits and @/./+/-/_ only
//   - slug: letters, digits, hyphen and underscore only
//   - titleyear: 1900 up to the current calendar year, the upper bound
//     recomputed on every call
func New() *validator.Validate {
	v := validator.New()
	// Registration errors only occur for empty tag names; these are static.
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("titleyear", func(fl validator.FieldLevel) bool {
		year := int(fl.Field().Int())
		return year >= models.MinTitleYear && year <= time.Now().Year()
	})
	return v
}
