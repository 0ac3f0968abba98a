package ollamalocal

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"

	"uav-agent/internal/application/port/output"
	"uav-agent/internal/domain/entity"
)

var _ output.LLMPort = (*Adapter)(nil)

// Adapter runs chats against a local Ollama server through langchaingo,
// for setups without a cloud API key.
type Adapter struct {
	llm    *ollama.LLM
	logger output.LoggerPort
}

type Config struct {
	Model     string
	ServerURL string
	Logger    output.LoggerPort
}

func NewAdapter(cfg Config) (*Adapter, error) {
	opts := []ollama.Option{ollama.WithModel(cfg.Model)}
	if cfg.ServerURL != "" {
		opts = append(opts, ollama.WithServerURL(cfg.ServerURL))
	}

	llm, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create ollama client: %w", err)
	}

	return &Adapter{llm: llm, logger: cfg.Logger}, nil
}

func (a *Adapter) Chat(ctx context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	messages := convertMessages(req.Messages)

	opts := []llms.CallOption{
		llms.WithTemperature(float64(req.Temperature)),
	}
	if len(req.Tools) > 0 {
		opts = append(opts, llms.WithTools(convertTools(req.Tools)))
	}

	if a.logger != nil {
		a.logger.Debug("Generating content", "messagesCount", len(messages), "toolsCount", len(req.Tools))
	}

	resp, err := a.llm.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return nil, fmt.Errorf("generate content failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	choice := resp.Choices[0]
	msg := entity.Message{
		Role:    entity.RoleAssistant,
		Content: choice.Content,
	}

	for _, tc := range choice.ToolCalls {
		if tc.FunctionCall == nil {
			continue
		}
		id := tc.ID
		if id == "" {
			// Local models often omit call IDs.
			id = "call_" + uuid.NewString()
		}
		msg.ToolCalls = append(msg.ToolCalls, entity.ToolCall{
			ID:        id,
			Name:      tc.FunctionCall.Name,
			Arguments: tc.FunctionCall.Arguments,
		})
	}

	return &output.ChatResponse{Message: msg}, nil
}

func convertMessages(messages []entity.Message) []llms.MessageContent {
	result := make([]llms.MessageContent, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case entity.RoleSystem:
			result = append(result, llms.TextParts(llms.ChatMessageTypeSystem, msg.Content))
		case entity.RoleUser:
			result = append(result, llms.TextParts(llms.ChatMessageTypeHuman, msg.Content))
		case entity.RoleTool:
			result = append(result, llms.MessageContent{
				Role: llms.ChatMessageTypeTool,
				Parts: []llms.ContentPart{
					llms.ToolCallResponse{
						ToolCallID: msg.ToolCallID,
						Name:       msg.Name,
						Content:    msg.Content,
					},
				},
			})
		case entity.RoleAssistant:
			mc := llms.MessageContent{Role: llms.ChatMessageTypeAI}
			if msg.Content != "" {
				mc.Parts = append(mc.Parts, llms.TextContent{Text: msg.Content})
			}
			for _, tc := range msg.ToolCalls {
				mc.Parts = append(mc.Parts, llms.ToolCall{
					ID:   tc.ID,
					Type: "function",
					FunctionCall: &llms.FunctionCall{
						Name:      tc.Name,
						Arguments: tc.Arguments,
					},
				})
			}
			result = append(result, mc)
		}
	}
	return result
}

func convertTools(tools []entity.ToolDefinition) []llms.Tool {
	result := make([]llms.Tool, 0, len(tools))
	for _, t := range tools {
		result = append(result, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        t.Name.String(),
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}
	return result
}
