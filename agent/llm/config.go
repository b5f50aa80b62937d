package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	contractx "github.com/tanpawarit/Chative-Support-Agent/agent/contract"
	geminix "github.com/tanpawarit/Chative-Support-Agent/pkg/gemini"
	openrouterx "github.com/tanpawarit/Chative-Support-Agent/pkg/openrouter"
)

type Provider string

const (
	ProviderNone       Provider = "none"
	ProviderOpenRouter Provider = "openrouter"
	ProviderOpenAI     Provider = "openai"
	ProviderGemini     Provider = "gemini"
)

type Config struct {
	Provider           string        `envconfig:"PROVIDER" split_words:"true" default:"none"`
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"16"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	SiteURL            string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName           string        `envconfig:"SITE_NAME" split_words:"true"`
}

func (c Config) provider() Provider {
	p := Provider(strings.ToLower(strings.TrimSpace(c.Provider)))
	if p == "" {
		return ProviderNone
	}
	return p
}

func (c Config) Enabled() bool {
	return c.provider() != ProviderNone
}

func (c Config) Validate() error {
	switch c.provider() {
	case ProviderNone:
		return nil
	case ProviderOpenRouter, ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("%w: unsupported llm provider=%q", contractx.ErrValidation, c.Provider)
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: %s api key is required", contractx.ErrValidation, c.provider())
	}
	if c.provider() != ProviderGemini && strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: %s model is required", contractx.ErrValidation, c.provider())
	}
	return nil
}

func (c Config) OpenRouter() openrouterx.Config {
	maxCompletionToken := c.MaxCompletionToken
	return openrouterx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              strings.TrimSpace(c.Model),
		MaxCompletionToken: &maxCompletionToken,
		Temperature:        c.Temperature,
		Timeout:            c.Timeout,
		SiteURL:            strings.TrimSpace(c.SiteURL),
		SiteName:           strings.TrimSpace(c.SiteName),
	}
}

func (c Config) Gemini() geminix.Config {
	return geminix.Config{
		APIKey:      strings.TrimSpace(c.APIKey),
		Model:       strings.TrimSpace(c.Model),
		Temperature: c.Temperature,
	}
}

// NewGenerator builds the text backend for the configured provider. It returns
// a nil Generator when the provider is "none".
func NewGenerator(ctx context.Context, cfg Config) (contractx.Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.provider() {
	case ProviderOpenRouter:
		orCfg := cfg.OpenRouter()
		chatModel, err := orCfg.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
		}
		return NewEinoGenerator(ctx, chatModel)
	case ProviderOpenAI:
		gen, err := openrouterx.NewSDKGenerator(cfg.OpenRouter())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
		}
		return gen, nil
	case ProviderGemini:
		gen, err := geminix.NewClient(ctx, cfg.Gemini())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
		}
		return gen, nil
	default:
		return nil, nil
	}
}
