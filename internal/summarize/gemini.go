package summarize

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"newsbrief/internal/core"
)

// DefaultModel is the default Gemini model used for summarization.
const DefaultModel = "gemini-flash-lite-latest"

// DefaultTemperature keeps generation near-deterministic so reviews stay
// grounded in the article text.
const DefaultTemperature = 0.2

// GeminiSummarizer produces structured reviews through the Gemini API,
// enforcing JSON output with a response schema.
type GeminiSummarizer struct {
	client      *genai.Client
	modelName   string
	temperature float32
}

// NewGeminiSummarizer builds a summarizer. An empty API key is an error;
// callers that want to run without a model should use Disabled instead.
func NewGeminiSummarizer(ctx context.Context, apiKey, modelName string, temperature float32) (*GeminiSummarizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if modelName == "" {
		modelName = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiSummarizer{client: client, modelName: modelName, temperature: clampTemperature(temperature)}, nil
}

// clampTemperature keeps the sampling temperature inside the API's valid
// range, substituting the default for unset or out-of-range values.
func clampTemperature(t float32) float32 {
	if t <= 0 || t > 2 {
		return DefaultTemperature
	}
	return t
}

// reviewSchema returns the response schema for a kind's review shape.
func reviewSchema(kind core.Kind) *genai.Schema {
	props := map[string]*genai.Schema{
		"headline_rewrite": {
			Type:        genai.TypeString,
			Description: "Rewritten headline, at most 14 words, no emojis",
		},
		"bullets": {
			Type:        genai.TypeArray,
			Description: "Factual bullet points grounded in the article text",
			Items:       &genai.Schema{Type: genai.TypeString},
		},
		"impact": {
			Type: genai.TypeString,
			Enum: core.ImpactSet(kind),
		},
		"impact_reason": {
			Type:        genai.TypeString,
			Description: "At most 2 sentences on why the impact skews that way",
		},
		"affected": {
			Type:        genai.TypeArray,
			Description: "Companies, products or sectors explicitly named in the article",
			Items:       &genai.Schema{Type: genai.TypeString},
		},
	}
	if kind == core.KindFinance {
		props["why_matters"] = &genai.Schema{
			Type:        genai.TypeString,
			Description: "One sentence on investor relevance",
		}
		props["watch_next"] = &genai.Schema{
			Type:        genai.TypeArray,
			Description: "1-2 concrete follow-ups",
			Items:       &genai.Schema{Type: genai.TypeString},
		}
	} else {
		props["motive"] = &genai.Schema{
			Type:        genai.TypeString,
			Description: "One sentence inferring the company's motive from the article text",
		}
	}
	return &genai.Schema{
		Type:       genai.TypeObject,
		Properties: props,
		Required:   []string{"headline_rewrite", "bullets", "impact"},
	}
}

// Review generates a structured review for one article. An empty or
// unparsable model reply reports absence rather than an error so the
// caller can fall back to the extractive path.
func (g *GeminiSummarizer) Review(ctx context.Context, req Request) (core.Review, bool, error) {
	prompt := BuildPrompt(req)

	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: prompt}},
		Role:  "user",
	}}
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   reviewSchema(req.Kind),
		Temperature:      genai.Ptr(g.temperature),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, cfg)
	if err != nil {
		return core.Review{}, false, fmt.Errorf("gemini summarize failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return core.Review{}, false, nil
	}

	var review core.Review
	if err := json.Unmarshal([]byte(text), &review); err != nil {
		return core.Review{}, false, fmt.Errorf("failed to parse review JSON: %w", err)
	}
	return review, true, nil
}
