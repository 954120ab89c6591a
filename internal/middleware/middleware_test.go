package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/launchpad/internal/app/models/dto"
	"github.com/yigit/launchpad/internal/pkg/apperrors"
	"github.com/yigit/launchpad/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
	RegisterValidation()
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) dto.APIResponse {
	t.Helper()
	var resp dto.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandleAPIError(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		code    dto.ErrorCode
		message string
	}{
		{"validation", apperrors.NewValidationError("amount is required"), http.StatusBadRequest, dto.ErrorCodeValidationFailed, "amount is required"},
		{"forbidden", apperrors.NewForbiddenError("only registered investors may invest"), http.StatusForbidden, dto.ErrorCodeForbidden, "only registered investors may invest"},
		{"round not found", apperrors.NewCustomError(apperrors.ErrRoundNotFound, "funding round not found"), http.StatusNotFound, dto.ErrorCodeResourceNotFound, "funding round not found"},
		{"duplicate email", apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"},
		{"bad credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
		{"unexpected hides text", errors.New("pq: deadlock detected"), http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/invests", nil)

			HandleAPIError(c, tc.err)

			assert.Equal(t, tc.status, w.Code)
			resp := decodeEnvelope(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tc.code, resp.Error.Code)
			assert.Equal(t, tc.message, resp.Error.Message)
			assert.Equal(t, tc.status, StatusFor(tc.err))
		})
	}
}

func TestJWTAuth(t *testing.T) {
	jwtSvc := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "launchpad"})
	mw := NewAuthMiddleware(jwtSvc)

	router := gin.New()
	router.GET("/me", mw.JWTAuth(), func(c *gin.Context) {
		id, ok := CurrentUserID(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer not.a.jwt")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		resp := decodeEnvelope(t, w)
		assert.Equal(t, dto.ErrorCodeInvalidToken, resp.Error.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, _, err := jwtSvc.GenerateAccessToken(42, "ada@example.com", []string{"investor"})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id":42}`, w.Body.String())
	})
}

type sampleRequest struct {
	Email string `json:"email" binding:"required,email"`
	Score int    `json:"score" binding:"min=1,max=10"`
}

func TestBindJSON_ReportsJSONFieldNames(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"nope","score":11}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var req sampleRequest
	ok := BindJSON(c, &req)

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "email must be a valid email address")
	assert.Contains(t, body, "score must be at most 10")
}

func TestBindJSON_MalformedBody(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":`))
	c.Request.Header.Set("Content-Type", "application/json")

	var req sampleRequest
	assert.False(t, BindJSON(c, &req))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request format")
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	router := gin.New()
	router.Use(RequestLogger(zerolog.New(&buf)))
	router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "/missing", line["path"])
	assert.Equal(t, float64(404), line["status"])
}
