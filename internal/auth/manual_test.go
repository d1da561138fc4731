package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedPrompt feeds canned answers in order.
func scriptedPrompt(answers ...string) TextPrompt {
	i := 0
	return func(string) (string, error) {
		if i >= len(answers) {
			return "", nil
		}
		a := answers[i]
		i++
		return a, nil
	}
}

func suppressBrowser(t *testing.T) {
	t.Helper()
	old := openURL
	openURL = func(string) bool { return false }
	t.Cleanup(func() { openURL = old })
}

func envFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), ".env")
}

func readEnvFile(t *testing.T, path string) string {
	t.Helper()
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return ""
	}
	require.NoError(t, err)
	return string(raw)
}

func TestSetupGoogle_SavesPastedKey(t *testing.T) {
	suppressBrowser(t)
	path := envFile(t)

	key := SetupGoogle(path, scriptedPrompt("AIzaSyExample123"))
	assert.Equal(t, "AIzaSyExample123", key)
	assert.Contains(t, readEnvFile(t, path), "GOOGLE_API_KEY=AIzaSyExample123\n")
}

func TestSetupGoogle_EmptyInputSkips(t *testing.T) {
	suppressBrowser(t)
	path := envFile(t)

	key := SetupGoogle(path, scriptedPrompt(""))
	assert.Empty(t, key)
	assert.Empty(t, readEnvFile(t, path))
}

func TestSetupGoogle_UnusualKeyDeclined(t *testing.T) {
	suppressBrowser(t)
	path := envFile(t)

	key := SetupGoogle(path, scriptedPrompt("not-a-gemini-key", "n"))
	assert.Empty(t, key)
	assert.Empty(t, readEnvFile(t, path))
}

func TestSetupGoogle_UnusualKeyConfirmed(t *testing.T) {
	suppressBrowser(t)
	path := envFile(t)

	key := SetupGoogle(path, scriptedPrompt("not-a-gemini-key", "y"))
	assert.Equal(t, "not-a-gemini-key", key)
	assert.Contains(t, readEnvFile(t, path), "GOOGLE_API_KEY=not-a-gemini-key\n")
}

func TestPromptOpenRouterKey(t *testing.T) {
	suppressBrowser(t)
	path := envFile(t)

	key := promptOpenRouterKey(path, scriptedPrompt("sk-or-v1-abc"))
	assert.Equal(t, "sk-or-v1-abc", key)
	assert.Contains(t, readEnvFile(t, path), "OPENROUTER_API_KEY=sk-or-v1-abc\n")
}

func TestPromptOpenRouterKey_UnusualDeclined(t *testing.T) {
	suppressBrowser(t)
	path := envFile(t)

	key := promptOpenRouterKey(path, scriptedPrompt("whatever", "no"))
	assert.Empty(t, key)
	assert.Empty(t, readEnvFile(t, path))
}
