package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"firesec_estimator/internal/usecase/interfaces"

	"cloud.google.com/go/vertexai/genai"
)

const defaultModelName = "gemini-1.5-pro"

var errEmptyResponse = errors.New("model returned no usable text")

// VertexClient implements the generative service over Vertex AI Gemini.
// Three model handles share one connection: free-form text, JSON-
// constrained output and vision. The JSON model runs at temperature zero
// so structured extraction stays as deterministic as the service allows.
type VertexClient struct {
	client      *genai.Client
	textModel   *genai.GenerativeModel
	jsonModel   *genai.GenerativeModel
	visionModel *genai.GenerativeModel
}

var _ interfaces.IGenerativeClient = (*VertexClient)(nil)

func NewVertexClient(ctx context.Context, projectID, region, modelName string) (*VertexClient, error) {
	if modelName == "" {
		modelName = defaultModelName
	}

	client, err := genai.NewClient(ctx, projectID, region)
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}

	textModel := client.GenerativeModel(modelName)

	jsonModel := client.GenerativeModel(modelName)
	jsonModel.GenerationConfig = genai.GenerationConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0.0),
	}

	visionModel := client.GenerativeModel(modelName)

	return &VertexClient{
		client:      client,
		textModel:   textModel,
		jsonModel:   jsonModel,
		visionModel: visionModel,
	}, nil
}

func (c *VertexClient) Close() error {
	return c.client.Close()
}

func (c *VertexClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.textModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return extractText(resp)
}

func (c *VertexClient) CompleteJSON(ctx context.Context, prompt string) (string, error) {
	resp, err := c.jsonModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return extractText(resp)
}

func (c *VertexClient) AnalyzeImage(ctx context.Context, mimeType string, data []byte, prompt string) (string, error) {
	part := genai.Blob{MIMEType: mimeType, Data: data}
	resp, err := c.visionModel.GenerateContent(ctx, part, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return extractText(resp)
}

func (c *VertexClient) TranscribePDF(ctx context.Context, data []byte) (string, error) {
	part := genai.Blob{MIMEType: "application/pdf", Data: data}
	prompt := genai.Text("Transcribe the full text content of this document. Preserve headings, lists and tables as plain text. Output only the transcription.")
	resp, err := c.visionModel.GenerateContent(ctx, part, prompt)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return extractText(resp)
}

// extractText concatenates the text parts of the first candidate.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errEmptyResponse
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", errEmptyResponse
	}
	return out, nil
}
