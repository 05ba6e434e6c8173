package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/ptvinh/wordnest/config"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// GeminiService generates a dictionary-style meaning for a word. It is the
// only AI touchpoint of the core; everything downstream just sees a Meaning
// row tagged "ai".
type GeminiService interface {
	GenerateMeaning(word string) (definition string, exampleSentence string, synonyms []string, err error)
}

type geminiService struct {
	client *genai.GenerativeModel
	cfg    *config.Config
}

func NewGeminiService(cfg *config.Config) (GeminiService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. GeminiService will be non-functional.")
		return &geminiService{cfg: cfg, client: nil}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	model := client.GenerativeModel("gemini-1.5-flash")
	return &geminiService{client: model, cfg: cfg}, nil
}

const meaningPrompt = `You are a concise English dictionary for language learners.
For the word "%s", respond strictly in this format:

Definition: [one short learner-friendly definition]
Example: [one natural example sentence using the word]
Synonyms: [two or three close synonyms, comma separated]
`

func (s *geminiService) GenerateMeaning(word string) (string, string, []string, error) {
	if s.client == nil {
		return "", "", nil, fmt.Errorf("gemini client not initialized")
	}

	ctx := context.Background()
	resp, err := s.client.GenerateContent(ctx, genai.Text(fmt.Sprintf(meaningPrompt, word)))
	if err != nil {
		log.Error().Err(err).Str("word", word).Msg("Gemini API error during meaning generation")
		return "", "", nil, fmt.Errorf("gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", "", nil, fmt.Errorf("gemini returned no content")
	}

	var raw strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			raw.WriteString(string(txt))
		}
	}

	definition, example, synonyms, err := parseMeaningResponse(raw.String())
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", raw.String()).Msg("Failed to parse Gemini meaning response")
		return "", "", nil, err
	}
	return definition, example, synonyms, nil
}

func parseMeaningResponse(raw string) (string, string, []string, error) {
	var definition, example string
	var synonyms []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Definition:"):
			definition = strings.TrimSpace(strings.TrimPrefix(line, "Definition:"))
		case strings.HasPrefix(line, "Example:"):
			example = strings.TrimSpace(strings.TrimPrefix(line, "Example:"))
		case strings.HasPrefix(line, "Synonyms:"):
			for _, s := range strings.Split(strings.TrimPrefix(line, "Synonyms:"), ",") {
				if s = strings.TrimSpace(s); s != "" {
					synonyms = append(synonyms, s)
				}
			}
		}
	}
	if definition == "" {
		return "", "", nil, fmt.Errorf("response does not contain 'Definition:' prefix. Raw: %s", raw)
	}
	return definition, example, synonyms, nil
}
