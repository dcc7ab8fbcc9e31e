package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"gameshelf/internal/constants"
)

type AIService struct {
	client *openai.Client
}

func NewAIService(apiKey string) *AIService {
	if apiKey == "" {
		return &AIService{}
	}
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// Enabled reports whether an API key was configured.
func (s *AIService) Enabled() bool {
	return s.client != nil
}

// SuggestTagsForGame asks the model for genre tags matching a game name.
// Suggestions outside the known tag list are discarded.
func (s *AIService) SuggestTagsForGame(ctx context.Context, gameName string) ([]string, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`You are a game-genre tagging assistant. Pick the tags that best describe the game %q.

Choose only from this list:
%s

Return a JSON array of at most 5 tag strings, nothing else. Return [] if none fit.`,
		gameName, strings.Join(constants.PopularTags, ", "))

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content

	var suggested []string
	if err := json.Unmarshal([]byte(content), &suggested); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	tags := make([]string, 0, len(suggested))
	for _, tag := range suggested {
		if constants.IsKnownTag(tag) {
			tags = append(tags, tag)
		}
	}

	return tags, nil
}
