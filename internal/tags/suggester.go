package tags

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"github.com/BruksfildServices01/inventory-api/internal/config"
)

const (
	maxTags = 3

	// DefaultTimeout bounds the single-shot generation call. A timeout is
	// treated like any other upstream failure and triggers the fallback.
	DefaultTimeout = 30 * time.Second
)

var leadingTagsLabel = regexp.MustCompile(`(?i)^\s*tags?:?`)

// Suggester asks an OpenAI-compatible endpoint for product tags and falls
// back to keyword extraction on any failure. Callers never see an error.
type Suggester struct {
	client  openai.Client
	model   string
	timeout time.Duration
}

func NewSuggester(cfg *config.Config) *Suggester {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.LLMAPIKey),
	}
	if cfg.LLMBaseURL != "" {
		// The SDK resolves request paths relative to the base URL, so a
		// missing trailing slash would swallow the /v1 path segment.
		baseURL := cfg.LLMBaseURL
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &Suggester{
		client:  openai.NewClient(opts...),
		model:   cfg.LLMModel,
		timeout: DefaultTimeout,
	}
}

func (s *Suggester) SetTimeout(timeout time.Duration) {
	s.timeout = timeout
}

// Suggest returns up to 3 cleaned tags for the given product details.
func (s *Suggester) Suggest(ctx context.Context, name, description string) []string {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"Suggest 3 relevant tags (as a comma-separated list) for a product with the following details:\nName: %s\nDescription: %s\nTags:",
		name, description,
	)

	completion, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		log.Printf("tag suggestion upstream error: %v", err)
		return ExtractBasicTags(name, description)
	}

	if len(completion.Choices) == 0 {
		return ExtractBasicTags(name, description)
	}

	parsed := ParseTagList(completion.Choices[0].Message.Content)
	if len(parsed) == 0 {
		return ExtractBasicTags(name, description)
	}

	return parsed
}

// ParseTagList turns raw generated text into at most 3 cleaned tags:
// strips a leading "Tags:" label, splits on commas or newlines, trims
// whitespace and surrounding quotes, and drops empty fragments.
func ParseTagList(text string) []string {
	text = leadingTagsLabel.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)

	fragments := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n'
	})

	cleaned := make([]string, 0, maxTags)
	for _, frag := range fragments {
		tag := strings.TrimSpace(frag)
		tag = strings.Trim(tag, `"'`)
		if tag == "" {
			continue
		}
		cleaned = append(cleaned, tag)
		if len(cleaned) == maxTags {
			break
		}
	}

	return cleaned
}
