// Package generate produces the survey, user, and response documents that
// seeding later pushes into a Formbricks instance. All content comes from a
// text-generation backend; this package owns the prompts, the response
// cleanup, and the files under data/generated/.
package generate

import (
	"context"
	"fmt"
	"os"
)

// TextCompleter is a single-prompt text generation backend. One user
// message in, raw completion text out. Implementations are synchronous and
// single-shot; callers treat any error as fatal for the current step.
type TextCompleter interface {
	Complete(ctx context.Context, prompt string, temperature float32) (string, error)
	Model() string
}

// Provider identifies a text-generation backend.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// DetectProvider resolves which backend to use and its API key. An explicit
// name wins; otherwise the first set environment variable decides, OpenAI
// before Gemini.
func DetectProvider(name string) (Provider, string, error) {
	switch Provider(name) {
	case ProviderOpenAI:
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			return ProviderOpenAI, key, nil
		}
		return "", "", fmt.Errorf("OPENAI_API_KEY environment variable not set")
	case ProviderGemini:
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			return ProviderGemini, key, nil
		}
		return "", "", fmt.Errorf("GEMINI_API_KEY environment variable not set")
	case "":
	default:
		return "", "", fmt.Errorf("unknown provider: %s", name)
	}

	probes := []struct {
		envVar   string
		provider Provider
	}{
		{"OPENAI_API_KEY", ProviderOpenAI},
		{"GEMINI_API_KEY", ProviderGemini},
	}
	for _, p := range probes {
		if key := os.Getenv(p.envVar); key != "" {
			return p.provider, key, nil
		}
	}
	return "", "", fmt.Errorf("no API key found; set OPENAI_API_KEY or GEMINI_API_KEY")
}

// NewCompleterFromEnv builds the completer for the detected provider. model
// may be empty, in which case the provider's default is used.
func NewCompleterFromEnv(providerName, model string) (TextCompleter, error) {
	provider, apiKey, err := DetectProvider(providerName)
	if err != nil {
		return nil, err
	}

	switch provider {
	case ProviderOpenAI:
		return NewOpenAIClient(OpenAIConfig{
			APIKey:  apiKey,
			Model:   model,
			BaseURL: os.Getenv("OPENAI_BASE_URL"),
		}), nil
	case ProviderGemini:
		return NewGeminiClient(apiKey, model)
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}
