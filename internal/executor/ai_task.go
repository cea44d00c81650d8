package executor

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/goswamishashwatpuri/nextract/internal/config"
	"github.com/goswamishashwatpuri/nextract/internal/task"
	"github.com/goswamishashwatpuri/nextract/internal/utils"
)

// extractionSystemPrompt constrains the model to emit machine-readable JSON
// only, so the output can feed straight into downstream JSON tasks.
const extractionSystemPrompt = `You are a webscraper helper that extracts data from HTML or text. You will be given a piece of text or HTML content as input and also the prompt with the data you have to extract. The response should always be only the extracted data as a JSON array or object, without any additional words or explanations. Analyze the input carefully and extract data precisely based on the prompt. If no data is found, return an empty JSON array. Work only with the provided content and ensure the output is always a valid JSON array without any surrounding text.`

// ExtractDataWithAIExecutor sends page content plus a user prompt to an LLM
// and stores the returned JSON. The API key comes from a stored credential,
// resolved to plaintext only for the duration of this call.
type ExtractDataWithAIExecutor struct {
	Config      config.AIConfig
	Credentials CredentialResolver
}

func (e *ExtractDataWithAIExecutor) Type() task.Type { return task.TypeExtractDataWithAI }

func (e *ExtractDataWithAIExecutor) Execute(ctx context.Context, env Environment) error {
	credentialID, err := requireInput(env, task.ParamCredentials)
	if err != nil {
		return err
	}
	prompt, err := requireInput(env, task.ParamPrompt)
	if err != nil {
		return err
	}
	content, err := requireInput(env, task.ParamContent)
	if err != nil {
		return err
	}

	apiKey, err := e.Credentials.ResolveCredential(ctx, credentialID)
	if err != nil {
		env.Log().Error("cannot resolve credential")
		return err
	}

	chatModel, err := e.createChatModel(ctx, apiKey)
	if err != nil {
		env.Log().Error(fmt.Sprintf("failed to create chat model: %v", err))
		return err
	}

	resp, err := chatModel.Generate(ctx, []*schema.Message{
		schema.SystemMessage(extractionSystemPrompt),
		schema.UserMessage(content),
		schema.UserMessage(prompt),
	})
	if err != nil {
		env.Log().Error(fmt.Sprintf("model call failed: %v", err))
		return err
	}

	if resp.ResponseMeta != nil && resp.ResponseMeta.Usage != nil {
		usage := resp.ResponseMeta.Usage
		env.Log().Info(fmt.Sprintf("prompt tokens: %d, completion tokens: %d",
			usage.PromptTokens, usage.CompletionTokens))
	}

	result := resp.Content
	if result == "" {
		env.Log().Error("empty response from AI")
		return fmt.Errorf("empty response from AI model")
	}
	if !utils.ValidString(result) {
		env.Log().Error("AI response is not valid JSON")
		return fmt.Errorf("AI response is not valid JSON")
	}

	env.SetOutput(task.ParamExtractedData, result)
	return nil
}

// createChatModel builds a chat model from the global AI config and the
// caller's credential.
func (e *ExtractDataWithAIExecutor) createChatModel(ctx context.Context, apiKey string) (model.ChatModel, error) {
	chatConfig := &openai.ChatModelConfig{
		Model:  e.Config.Model,
		APIKey: apiKey,
	}

	baseURL := e.Config.BaseURL
	if baseURL == "" {
		switch e.Config.Provider {
		case "openai":
			baseURL = "https://api.openai.com/v1"
		case "deepseek":
			baseURL = "https://api.deepseek.com/v1"
		}
	}
	if baseURL != "" {
		chatConfig.BaseURL = baseURL
	}

	return openai.NewChatModel(ctx, chatConfig)
}
