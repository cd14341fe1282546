// internal/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/hardwarehub/storefront-backend/internal/utils"
)

func authTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.GET("/me", AuthRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"subject": c.GetString("subject"),
			"role":    c.GetString("role"),
		})
	})
	router.GET("/admin", AuthRequired(), AdminRequired(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func doAuthRequest(router *gin.Engine, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthRequiredMissingHeader(t *testing.T) {
	w := doAuthRequest(authTestRouter(), "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredMalformedHeader(t *testing.T) {
	w := doAuthRequest(authTestRouter(), "/me", "Token abcdef")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredInvalidToken(t *testing.T) {
	w := doAuthRequest(authTestRouter(), "/me", "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredExpiredToken(t *testing.T) {
	token, err := utils.GenerateJWT("cognito-1", "customer", -time.Minute)
	assert.NoError(t, err)

	w := doAuthRequest(authTestRouter(), "/me", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredValidToken(t *testing.T) {
	token, err := utils.GenerateJWT("cognito-1", "customer", time.Hour)
	assert.NoError(t, err)

	w := doAuthRequest(authTestRouter(), "/me", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cognito-1")
	assert.Contains(t, w.Body.String(), "customer")
}

func TestAdminRequiredRejectsCustomer(t *testing.T) {
	token, err := utils.GenerateJWT("cognito-1", "customer", time.Hour)
	assert.NoError(t, err)

	w := doAuthRequest(authTestRouter(), "/admin", "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminRequiredAllowsAdmin(t *testing.T) {
	token, err := utils.GenerateJWT("cognito-9", "admin", time.Hour)
	assert.NoError(t, err)

	w := doAuthRequest(authTestRouter(), "/admin", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}
