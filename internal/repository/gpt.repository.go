package repository

import (
	"context"
	"fmt"

	"github.com/ayush6624/go-chatgpt"
)

type GptRepository interface {
	DescribeSimulation(ctx context.Context, resultSummary string) (string, error)
}

type gptRepositoryHandler struct {
	GptClient *chatgpt.Client
}

func NewGptRepository(apiKey string) (GptRepository, error) {
	client, err := chatgpt.NewClient(apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to construct gpt client: %w", err)
	}

	return gptRepositoryHandler{
		GptClient: client,
	}, nil
}

const describePrompt = `
You are summarizing the outcome of a thematic portfolio simulation for an
end user. You will receive the per-asset results (ticker, allocated capital,
shares held, current value, gain/loss, return percentage) and the portfolio
totals as plain text.

Write 2-4 sentences in plain English: the overall return, the biggest
contributor and the biggest detractor, and anything notable about how
concentrated the gains or losses are. Do not give investment advice, do not
predict future performance, and do not invent numbers that are not in the
input.
`

func (h gptRepositoryHandler) DescribeSimulation(ctx context.Context, resultSummary string) (string, error) {
	res, err := h.GptClient.Send(ctx, &chatgpt.ChatCompletionRequest{
		Model: chatgpt.GPT35Turbo,
		Messages: []chatgpt.ChatMessage{
			{
				Role:    chatgpt.ChatGPTModelRoleSystem,
				Content: describePrompt,
			},
			{
				Role:    chatgpt.ChatGPTModelRoleUser,
				Content: resultSummary,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to describe simulation: %w", err)
	}
	if len(res.Choices) == 0 {
		return "", fmt.Errorf("gpt returned no choices")
	}

	return res.Choices[0].Message.Content, nil
}
