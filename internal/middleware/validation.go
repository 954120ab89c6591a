package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/launchpad/internal/app/models/dto"
	"github.com/yigit/launchpad/internal/pkg/logger"
	"github.com/yigit/launchpad/internal/pkg/validation"
)

var registerOnce sync.Once

// RegisterValidation makes binding errors report JSON field names instead of Go field names
// and installs the custom rules of the validation package
func RegisterValidation() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})
		if err := validation.Register(v); err != nil {
			logger.Error().Err(err).Msg("Failed to register custom validation rules")
		}
	})
}

// HandleValidationError converts a binding error into an error detail listing each failed field
func HandleValidationError(err error) *dto.ErrorDetail {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
	}

	fields := dto.NewValidationErrors()
	for _, e := range verrs {
		fields.AddError(e.Field(), formatValidationError(e))
	}

	detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").WithDetails(fields.Errors)
	if len(verrs) == 1 {
		detail.WithField(verrs[0].Field())
	}
	return detail
}

// BindJSON binds the request body into obj, writing a 400 response and returning false on failure
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(HandleValidationError(err)))
		return false
	}
	return true
}

// BindQuery binds query parameters into obj, writing a 400 response and returning false on failure
func BindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(HandleValidationError(err)))
		return false
	}
	return true
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "url":
		return e.Field() + " must be a valid URL"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "datetime":
		return e.Field() + " must match " + e.Param()
	case "tag", "phone":
		return e.Field() + " " + validation.Messages[e.Tag()]
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
