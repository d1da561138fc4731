// Package registry resolves provider names and tracks the active provider.
//
// DESIGN: Provider configuration is static and compiled in. The active
// provider is a single pointer value, JARVIS_MODEL, written to both the
// credential file and the process environment so switching providers takes
// effect immediately in the running session and survives a restart.
package registry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"jarvis/internal/creds"
)

// Canonical provider ids. "all" is a reserved sentinel used only for bulk logout.
const (
	Gemini     = "gemini"
	OpenRouter = "openrouter"
	Ollama     = "ollama"
	All        = "all"
)

// Default model strings per provider.
const (
	GeminiModel     = "gemini-2.0-flash"
	OpenRouterModel = "openrouter/google/gemini-flash-1.5"
	OllamaModel     = "ollama/llama3.2"
)

// ModelVar is the env key holding the active model pointer.
const ModelVar = "JARVIS_MODEL"

var (
	ErrUnknownProvider  = errors.New("unknown provider")
	ErrNoActiveProvider = errors.New("no active provider found")
)

// envKeys maps each provider to the environment variables it owns.
var envKeys = map[string][]string{
	Gemini:     {"GOOGLE_API_KEY", "GEMINI_API_KEY"},
	OpenRouter: {"OPENROUTER_API_KEY"},
	Ollama:     {"OLLAMA_HOST"},
}

// models maps each provider to its compiled-in model string.
var models = map[string]string{
	Gemini:     GeminiModel,
	OpenRouter: OpenRouterModel,
	Ollama:     OllamaModel,
}

// Registry activates, detects, and logs out providers against a credential
// file and an Environment. Inject creds.MapEnv in tests to avoid mutating
// real process state.
type Registry struct {
	envPath string
	env     creds.Environment
}

// New creates a Registry bound to the credential file at envPath.
func New(envPath string, env creds.Environment) *Registry {
	return &Registry{envPath: envPath, env: env}
}

// Normalize maps provider-name synonyms to canonical ids. Unknown names are
// lower-cased and passed through so they surface as explicit errors
// downstream instead of being silently dropped.
func Normalize(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "gemini", "google", "google-gemini":
		return Gemini
	case "openrouter", "or":
		return OpenRouter
	case "ollama", "local":
		return Ollama
	case "all", "*":
		return All
	default:
		return strings.ToLower(strings.TrimSpace(name))
	}
}

// Activate writes JARVIS_MODEL for the given provider to both the credential
// file and the environment, and returns the model string.
func (r *Registry) Activate(name string) (string, error) {
	id := Normalize(name)
	model, ok := models[id]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownProvider, id)
	}

	creds.Write(r.envPath, ModelVar, model)
	r.env.Set(ModelVar, model)
	log.Debug().Str("provider", id).Str("model", model).Msg("provider activated")
	return model, nil
}

// Logout clears a provider's credentials from the environment and the
// credential file. An empty name resolves to the currently detected
// provider. The sentinel "all" clears every known provider plus the model
// pointer; a specific provider additionally clears the model pointer only
// when it is the active one.
func (r *Registry) Logout(name string) (string, error) {
	id := Normalize(name)
	if id == "" {
		id = r.DetectActive()
	}
	if id == "" {
		return "", ErrNoActiveProvider
	}

	var clear []string
	switch id {
	case All:
		for _, keys := range envKeys {
			clear = append(clear, keys...)
		}
		clear = append(clear, ModelVar)
	default:
		keys, ok := envKeys[id]
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownProvider, id)
		}
		clear = append(clear, keys...)
		if r.DetectActive() == id {
			clear = append(clear, ModelVar)
		}
	}

	for _, key := range clear {
		r.env.Unset(key)
	}
	creds.Clear(r.envPath, clear...)
	log.Debug().Str("provider", id).Msg("provider logged out")
	return id, nil
}

// DetectActive infers the active provider, preferring the JARVIS_MODEL
// prefix over key presence. Any non-empty model that is not openrouter/- or
// ollama/-prefixed counts as gemini. With no model set, configured API keys
// are checked in fixed priority order. Returns "" when nothing is detected.
func (r *Registry) DetectActive() string {
	model := strings.ToLower(strings.TrimSpace(r.env.Get(ModelVar)))
	switch {
	case strings.HasPrefix(model, "openrouter/"):
		return OpenRouter
	case strings.HasPrefix(model, "ollama/"):
		return Ollama
	case model != "":
		return Gemini
	}

	if r.env.Get("GOOGLE_API_KEY") != "" || r.env.Get("GEMINI_API_KEY") != "" {
		return Gemini
	}
	if r.env.Get("OPENROUTER_API_KEY") != "" {
		return OpenRouter
	}
	if r.env.Get("OLLAMA_HOST") != "" {
		return Ollama
	}
	return ""
}

// EnvKeys returns the environment variables owned by a canonical provider id.
func EnvKeys(id string) []string {
	return envKeys[id]
}
