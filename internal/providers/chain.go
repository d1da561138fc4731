package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"jarvis/internal/creds"
)

// Build returns the priority-ordered list of configured providers.
//
// An explicit JARVIS_MODEL routes to a single provider by prefix. Otherwise
// the chain is assembled from whatever is configured, in fixed priority:
// Gemini keys, then the OpenRouter key, then a reachable local Ollama.
func Build(ctx context.Context, env creds.Environment) ([]Provider, error) {
	if explicit := env.Get("JARVIS_MODEL"); explicit != "" {
		return buildExplicit(ctx, env, explicit)
	}

	var chain []Provider

	if key := firstOf(env, "GOOGLE_API_KEY", "GEMINI_API_KEY"); key != "" {
		p, err := NewGemini(ctx, key, "gemini-2.0-flash")
		if err != nil {
			log.Warn().Err(err).Msg("gemini provider unavailable")
		} else {
			chain = append(chain, p)
		}
	}

	if key := env.Get("OPENROUTER_API_KEY"); key != "" {
		chain = append(chain, NewOpenRouter(key, ""))
	}

	host := env.Get("OLLAMA_HOST")
	if OllamaReachable(host) {
		chain = append(chain, NewOllama(host, ""))
	}

	if len(chain) == 0 {
		return nil, fmt.Errorf("no provider configured: set GOOGLE_API_KEY, OPENROUTER_API_KEY, or start Ollama")
	}

	labels := make([]string, len(chain))
	for i, p := range chain {
		labels[i] = p.Label()
	}
	log.Debug().Strs("chain", labels).Msg("provider chain built")
	return chain, nil
}

// buildExplicit constructs a single-provider chain for a JARVIS_MODEL value.
func buildExplicit(ctx context.Context, env creds.Environment, model string) ([]Provider, error) {
	lower := strings.ToLower(model)

	switch {
	case strings.HasPrefix(lower, "openrouter/"):
		key := env.Get("OPENROUTER_API_KEY")
		if key == "" {
			return nil, fmt.Errorf("JARVIS_MODEL=%q requires OPENROUTER_API_KEY", model)
		}
		return []Provider{NewOpenRouter(key, model)}, nil

	case strings.HasPrefix(lower, "ollama/"):
		return []Provider{NewOllama(env.Get("OLLAMA_HOST"), model)}, nil

	case strings.HasPrefix(lower, "gemini"):
		key := firstOf(env, "GOOGLE_API_KEY", "GEMINI_API_KEY")
		if key == "" {
			return nil, fmt.Errorf("JARVIS_MODEL=%q requires GOOGLE_API_KEY or GEMINI_API_KEY", model)
		}
		p, err := NewGemini(ctx, key, model)
		if err != nil {
			return nil, err
		}
		return []Provider{p}, nil

	default:
		return nil, fmt.Errorf("unrecognized JARVIS_MODEL=%q (prefix with openrouter/, ollama/, or gemini)", model)
	}
}

func firstOf(env creds.Environment, keys ...string) string {
	for _, k := range keys {
		if v := env.Get(k); v != "" {
			return v
		}
	}
	return ""
}
