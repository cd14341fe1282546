// internal/utils/jwt_test.go
package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT("cognito-abc", "admin", time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	assert.NoError(t, err)
	assert.Equal(t, "cognito-abc", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateJWTExpired(t *testing.T) {
	token, err := GenerateJWT("cognito-abc", "customer", -time.Minute)
	assert.NoError(t, err)

	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestValidateJWTMalformed(t *testing.T) {
	_, err := ValidateJWT("not-a-token")
	assert.Error(t, err)
}
