package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/launchpad/internal/app/models/dto"
	"github.com/yigit/launchpad/internal/pkg/apperrors"
	"github.com/yigit/launchpad/internal/pkg/logger"
)

type kindMapping struct {
	status  int
	code    dto.ErrorCode
	message string
}

var kindMappings = map[apperrors.Kind]kindMapping{
	apperrors.KindValidation:   {http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	apperrors.KindForbidden:    {http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"},
	apperrors.KindNotFound:     {http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},
	apperrors.KindConflict:     {http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"},
	apperrors.KindUnauthorized: {http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
	apperrors.KindUnexpected:   {http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error"},
}

// StatusFor returns the HTTP status an error maps to
func StatusFor(err error) int {
	return kindMappings[apperrors.KindOf(err)].status
}

// HandleAPIError writes the error envelope for err. The status follows the
// error's kind. Unexpected errors are logged and their text is never exposed.
func HandleAPIError(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)
	mapping, ok := kindMappings[kind]
	if !ok {
		kind = apperrors.KindUnexpected
		mapping = kindMappings[kind]
	}

	detail := dto.NewErrorDetail(mapping.code, mapping.message)

	switch {
	case kind == apperrors.KindUnexpected:
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Unexpected error while handling request")
	case errors.Is(err, apperrors.ErrTokenExpired):
		detail.Code = dto.ErrorCodeExpiredToken
		detail.Message = "Token expired"
	case errors.Is(err, apperrors.ErrTokenInvalid):
		detail.Code = dto.ErrorCodeInvalidToken
		detail.Message = "Invalid token"
	default:
		if msg, found := apperrors.MessageOf(err); found {
			detail.Message = msg
		}
		if details := apperrors.DetailsOf(err); details != nil {
			detail.WithDetails(details)
		}
	}

	c.JSON(mapping.status, dto.APIResponse{
		Success:   false,
		Error:     detail,
		Timestamp: time.Now(),
	})
}
