package infra

import (
	"github.com/checkmarble/llmberjack"
	"github.com/checkmarble/llmberjack/llms/aistudio"
	"github.com/checkmarble/llmberjack/llms/openai"
	"github.com/cockroachdb/errors"
)

func createOpenAIProvider(config LlmConfig) (llmberjack.Llm, error) {
	opts := []openai.Opt{}
	if config.BaseUrl != "" {
		opts = append(opts, openai.WithBaseUrl(config.BaseUrl))
	}
	if config.ApiKey != "" {
		opts = append(opts, openai.WithApiKey(config.ApiKey))
	}

	provider, err := openai.New(opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create OpenAI provider")
	}
	return provider, nil
}

func createAIStudioProvider(config LlmConfig) (llmberjack.Llm, error) {
	opts := []aistudio.Opt{}
	if config.ApiKey != "" {
		opts = append(opts, aistudio.WithApiKey(config.ApiKey))
	}
	if config.Project != "" {
		opts = append(opts, aistudio.WithProject(config.Project))
	}
	if config.Location != "" {
		opts = append(opts, aistudio.WithLocation(config.Location))
	}

	provider, err := aistudio.New(opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create AI Studio provider")
	}
	return provider, nil
}

func NewLlmClient(config LlmConfig) (*llmberjack.Llmberjack, error) {
	var provider llmberjack.Llm
	var err error

	switch config.ProviderType {
	case LlmProviderTypeOpenAI:
		provider, err = createOpenAIProvider(config)
	case LlmProviderTypeAIStudio:
		provider, err = createAIStudioProvider(config)
	default:
		return nil, errors.Errorf("unsupported provider type: %s", config.ProviderType)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create LLM provider")
	}

	adapter, err := llmberjack.New(llmberjack.WithProvider("main", provider))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create LLM adapter")
	}
	return adapter, nil
}
