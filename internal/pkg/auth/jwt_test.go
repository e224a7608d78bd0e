package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormToken(t *testing.T) {
	secret := []byte("secret")

	token, err := GenerateFormToken("view-1", secret, time.Minute)
	require.NoError(t, err)

	assert.NoError(t, VerifyFormToken(token, "view-1", secret))
	assert.Error(t, VerifyFormToken(token, "view-2", secret), "页面ID不同")
	assert.Error(t, VerifyFormToken(token, "view-1", []byte("other")), "密钥不同")
	assert.Error(t, VerifyFormToken("garbage", "view-1", secret))
}

func TestFormTokenExpired(t *testing.T) {
	secret := []byte("secret")

	token, err := GenerateFormToken("view-1", secret, -time.Minute)
	require.NoError(t, err)
	assert.Error(t, VerifyFormToken(token, "view-1", secret))
}

func TestGenerateFormTokenValidation(t *testing.T) {
	_, err := GenerateFormToken("view-1", nil, time.Minute)
	assert.Error(t, err)

	_, err = GenerateFormToken("", []byte("secret"), time.Minute)
	assert.Error(t, err)
}
