package auth

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvProvider_GetToken_Success(t *testing.T) {
	// Set up test environment
	expectedToken := "ghp_test_token_123"
	os.Setenv("GITHUB_TOKEN", expectedToken)
	defer os.Unsetenv("GITHUB_TOKEN")

	provider := &EnvProvider{}
	token, err := provider.GetToken()

	require.NoError(t, err)
	assert.Equal(t, expectedToken, token)
}

func TestEnvProvider_GetToken_Missing(t *testing.T) {
	// Ensure env var is not set
	os.Unsetenv("GITHUB_TOKEN")

	provider := &EnvProvider{}
	token, err := provider.GetToken()

	assert.Error(t, err)
	assert.Empty(t, token)
	assert.Contains(t, err.Error(), "GITHUB_TOKEN")
}

func TestGhCliProvider_GetToken(t *testing.T) {
	provider := &GhCliProvider{}
	token, err := provider.GetToken()

	// This test will only pass fully if gh CLI is installed and authenticated
	// We can't reliably test this in CI without setup, so we just verify the interface
	if err != nil {
		// If gh CLI not available, error should be descriptive
		assert.Contains(t, err.Error(), "gh")
	} else {
		assert.NotEmpty(t, token)
	}
}

func TestGetToken_EnvFirst(t *testing.T) {
	// The environment variable wins over the gh CLI
	expectedToken := "ghp_env_token"
	os.Setenv("GITHUB_TOKEN", expectedToken)
	defer os.Unsetenv("GITHUB_TOKEN")

	token, err := GetToken()

	require.NoError(t, err)
	assert.Equal(t, expectedToken, token)
}

func TestGetToken_BothFail(t *testing.T) {
	// Ensure GITHUB_TOKEN is not set
	os.Unsetenv("GITHUB_TOKEN")

	// We can't reliably make gh CLI fail in tests, but we can verify
	// the error handling structure exists
	token, err := GetToken()

	// If both fail, should get clear error
	if err != nil {
		errMsg := err.Error()
		// Error should be actionable
		assert.NotEmpty(t, errMsg)
		assert.Contains(t, errMsg, "GITHUB_TOKEN")
	} else {
		// If we got a token (gh CLI available), verify it's valid
		assert.NotEmpty(t, token)
	}
}

func TestTokenProvider_Interface(t *testing.T) {
	// Verify both implementations satisfy the interface
	var _ TokenProvider = &GhCliProvider{}
	var _ TokenProvider = &EnvProvider{}
}
