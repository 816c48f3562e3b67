package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/vault/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyGeminiKeyToConfig(t *testing.T) {
	cfg := &Config{}
	applyGeminiKeyToConfig(cfg, "vault-gemini-key")

	assert.Equal(t, "vault-gemini-key", cfg.AI.APIKey)
	assert.Equal(t, "vault-gemini-key", cfg.AI.Detect.APIKey)
	assert.Equal(t, "vault-gemini-key", cfg.AI.Infer.APIKey)
	assert.Equal(t, "vault-gemini-key", cfg.AI.Generate.APIKey)
	assert.Equal(t, "vault-gemini-key", cfg.AI.Judge.APIKey)
}

func TestApplyGeminiKeyToConfigWithExistingKeys(t *testing.T) {
	cfg := &Config{}
	cfg.AI.Detect.APIKey = "detect-specific-key"

	applyGeminiKeyToConfig(cfg, "vault-gemini-key")

	// Operation-specific keys are not overwritten
	assert.Equal(t, "detect-specific-key", cfg.AI.Detect.APIKey)
	assert.Equal(t, "vault-gemini-key", cfg.AI.APIKey)
	assert.Equal(t, "vault-gemini-key", cfg.AI.Infer.APIKey)
}

func TestResolveVaultToken(t *testing.T) {
	t.Run("inline token", func(t *testing.T) {
		token, err := resolveVaultToken(VaultConfig{Token: "inline-token"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "inline-token", token)
	})

	t.Run("token from file", func(t *testing.T) {
		dir := t.TempDir()
		tokenFile := filepath.Join(dir, "token")
		require.NoError(t, os.WriteFile(tokenFile, []byte("  file-token\n"), 0o600))

		token, err := resolveVaultToken(VaultConfig{TokenFile: tokenFile}, nil)
		require.NoError(t, err)
		assert.Equal(t, "file-token", token)
	})

	t.Run("inline token wins over file", func(t *testing.T) {
		dir := t.TempDir()
		tokenFile := filepath.Join(dir, "token")
		require.NoError(t, os.WriteFile(tokenFile, []byte("file-token"), 0o600))

		token, err := resolveVaultToken(VaultConfig{Token: "inline-token", TokenFile: tokenFile}, nil)
		require.NoError(t, err)
		assert.Equal(t, "inline-token", token)
	})

	t.Run("missing token file", func(t *testing.T) {
		_, err := resolveVaultToken(VaultConfig{TokenFile: "/nonexistent/token"}, nil)
		assert.Error(t, err)
	})

	t.Run("no token configured", func(t *testing.T) {
		_, err := resolveVaultToken(VaultConfig{}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "vault token is required")
	})
}

func TestApplyVaultSecretsDisabled(t *testing.T) {
	cfg := &Config{}
	cfg.Vault.Enabled = false
	cfg.AI.APIKey = "existing-key"

	err := ApplyVaultSecrets(cfg, nil)
	require.NoError(t, err)

	// Config untouched when Vault is disabled
	assert.Equal(t, "existing-key", cfg.AI.APIKey)
	assert.Empty(t, cfg.Server.APIKeys)
}

func TestExtractSecretVersion(t *testing.T) {
	tests := []struct {
		name        string
		secret      *api.Secret
		expected    int64
		expectError bool
	}{
		{
			name: "int64 version",
			secret: &api.Secret{Data: map[string]any{
				"metadata": map[string]any{"version": int64(3)},
			}},
			expected: 3,
		},
		{
			name: "float64 version from JSON",
			secret: &api.Secret{Data: map[string]any{
				"metadata": map[string]any{"version": float64(7)},
			}},
			expected: 7,
		},
		{
			name: "string version",
			secret: &api.Secret{Data: map[string]any{
				"metadata": map[string]any{"version": "12"},
			}},
			expected: 12,
		},
		{
			name: "unparsable string version",
			secret: &api.Secret{Data: map[string]any{
				"metadata": map[string]any{"version": "not-a-number"},
			}},
			expectError: true,
		},
		{
			name: "missing metadata",
			secret: &api.Secret{Data: map[string]any{
				"data": map[string]any{},
			}},
			expectError: true,
		},
		{
			name: "missing version field",
			secret: &api.Secret{Data: map[string]any{
				"metadata": map[string]any{},
			}},
			expectError: true,
		},
		{
			name: "unexpected version type",
			secret: &api.Secret{Data: map[string]any{
				"metadata": map[string]any{"version": []string{"1"}},
			}},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			version, err := extractSecretVersion(tt.secret, "secret/data/test")

			if tt.expectError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, version)
			}
		})
	}
}
