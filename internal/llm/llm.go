// Package llm wraps the Gemini SDK behind the two service calls the engine
// needs: text completion and embeddings.
package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"google.golang.org/genai"

	"scholarly/internal/config"
)

const (
	// DefaultModel is the default Gemini model for completion calls.
	DefaultModel = "gemini-flash-lite-latest"
	// DefaultEmbeddingModel is the default model for generating embeddings.
	DefaultEmbeddingModel = "gemini-embedding-001"
	// DefaultEmbeddingDimensions is the output dimension for embeddings.
	DefaultEmbeddingDimensions = int32(768)
	// maxEmbeddingChars bounds the text sent to the embedding model.
	maxEmbeddingChars = 8000
)

// Client is a thin wrapper around the Gemini SDK.
type Client struct {
	modelName      string
	embeddingModel string
	dimensions     int32
	gClient        *genai.Client
}

// TextGenerationOptions contains options for a completion call.
type TextGenerationOptions struct {
	MaxTokens      int32         // Maximum number of tokens to generate
	Temperature    float32       // Sampling temperature (0.0 to 1.0)
	Model          string        // Model override (defaults to client's model)
	ResponseSchema *genai.Schema // Optional schema for structured JSON output
}

// NewClient creates a new LLM client. The API key is looked up from
// GEMINI_API_KEY, then GOOGLE_AI_API_KEY, then the ai.gemini.api_key config.
func NewClient(modelName string) (*Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		if apiKey = os.Getenv("GOOGLE_AI_API_KEY"); apiKey == "" {
			apiKey = viper.GetString("ai.gemini.api_key")
		}
	}
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required: set GEMINI_API_KEY or ai.gemini.api_key in the config file")
	}

	cfg := config.Get()
	if modelName == "" {
		modelName = cfg.AI.Gemini.Model
		if modelName == "" {
			modelName = DefaultModel
		}
	}
	embeddingModel := cfg.AI.Gemini.EmbeddingModel
	if embeddingModel == "" {
		embeddingModel = DefaultEmbeddingModel
	}
	dimensions := cfg.AI.Gemini.EmbeddingDimensions
	if dimensions <= 0 {
		dimensions = DefaultEmbeddingDimensions
	}

	gClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		modelName:      modelName,
		embeddingModel: embeddingModel,
		dimensions:     dimensions,
		gClient:        gClient,
	}, nil
}

// GenerateText generates text for the given prompt. When options carry a
// ResponseSchema the model is constrained to structured JSON output.
func (c *Client) GenerateText(ctx context.Context, prompt string, options TextGenerationOptions) (string, error) {
	model := options.Model
	if model == "" {
		model = c.modelName
	}

	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: prompt}},
		Role:  "user",
	}}

	var genConfig *genai.GenerateContentConfig
	if options.MaxTokens > 0 || options.Temperature > 0 || options.ResponseSchema != nil {
		genConfig = &genai.GenerateContentConfig{}
		if options.MaxTokens > 0 {
			genConfig.MaxOutputTokens = options.MaxTokens
		}
		if options.Temperature > 0 {
			temp := options.Temperature
			genConfig.Temperature = &temp
		}
		if options.ResponseSchema != nil {
			genConfig.ResponseMIMEType = "application/json"
			genConfig.ResponseSchema = options.ResponseSchema
		}
	}

	resp, err := c.gClient.Models.GenerateContent(ctx, model, contents, genConfig)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}

	return text, nil
}

// GenerateEmbedding generates a vector embedding for the given text. The text
// is truncated to the embedding model's practical input limit.
func (c *Client) GenerateEmbedding(ctx context.Context, text string) ([]float64, error) {
	if len(text) > maxEmbeddingChars {
		text = text[:maxEmbeddingChars]
	}

	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: text}},
		Role:  "user",
	}}

	dims := c.dimensions
	embedConfig := &genai.EmbedContentConfig{
		OutputDimensionality: &dims,
	}

	resp, err := c.gClient.Models.EmbedContent(ctx, c.embeddingModel, contents, embedConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}
	if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil {
		return nil, fmt.Errorf("no embedding values returned from API")
	}

	values := resp.Embeddings[0].Values
	embedding := make([]float64, len(values))
	for i, val := range values {
		embedding[i] = float64(val)
	}

	return embedding, nil
}

// Dimensions returns the embedding dimensionality this client produces.
func (c *Client) Dimensions() int {
	return int(c.dimensions)
}
