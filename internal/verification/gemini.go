package verification

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Dias221467/tagwish/internal/models"
	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
	"google.golang.org/genai"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-2.5-flash"

const (
	analyzePrompt = "Analyze this product image for a cross-border shopping request. " +
		"Give a concise item name, a detailed description, an estimated retail price in USD, " +
		"the city or store where it is most likely sold, and a short uppercase location tag. Return JSON."
	verifyPrompt = "The buyer asked for: %q. Does the product in this photo match that request? " +
		"Give a match percentage from 0 to 100, a brief reasoning and whether it looks authentic. Return JSON."
	guidancePrompt = "A buyer wants %q and offers a $%s reward to the traveler who brings it. " +
		"Is this a fair reward? Answer with one sentence of advice."
)

var errEmptyResponse = errors.New("empty model response")

// generator is the part of the genai client the backend calls.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiBackend answers verification calls with a Gemini model.
type GeminiBackend struct {
	models generator
	model  string
}

var _ Backend = (*GeminiBackend)(nil)

// NewGeminiBackend creates a Gemini API client for the given key and model.
func NewGeminiBackend(ctx context.Context, apiKey, model string) (*GeminiBackend, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create gemini client")
	}
	return newGeminiBackend(client.Models, model), nil
}

func newGeminiBackend(g generator, model string) *GeminiBackend {
	if model == "" {
		model = DefaultModel
	}
	return &GeminiBackend{models: g, model: model}
}

var analysisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"itemName":          {Type: genai.TypeString},
		"description":       {Type: genai.TypeString},
		"estimatedPrice":    {Type: genai.TypeNumber},
		"suggestedLocation": {Type: genai.TypeString},
		"tag":               {Type: genai.TypeString},
	},
	Required: []string{"itemName", "description", "estimatedPrice", "suggestedLocation", "tag"},
}

var verificationSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"matchScore":  {Type: genai.TypeNumber},
		"reasoning":   {Type: genai.TypeString},
		"isAuthentic": {Type: genai.TypeBoolean},
	},
	Required: []string{"matchScore", "reasoning", "isAuthentic"},
}

// AnalyzeImage asks the model to describe a reference photo.
func (b *GeminiBackend) AnalyzeImage(ctx context.Context, image []byte) (*models.ImageAnalysis, error) {
	var analysis models.ImageAnalysis
	if err := b.generateJSON(ctx, imageContent(image, analyzePrompt), analysisSchema, &analysis); err != nil {
		return nil, errors.Wrap(err, "analyze image")
	}
	return &analysis, nil
}

// VerifyAuthenticity asks the model whether a proof photo matches the buyer's description.
func (b *GeminiBackend) VerifyAuthenticity(ctx context.Context, description string, photo []byte) (*models.VerificationResult, error) {
	var result models.VerificationResult
	prompt := fmt.Sprintf(verifyPrompt, description)
	if err := b.generateJSON(ctx, imageContent(photo, prompt), verificationSchema, &result); err != nil {
		return nil, errors.Wrap(err, "verify authenticity")
	}
	return &result, nil
}

// PriceGuidance asks the model for one sentence about the offered reward.
func (b *GeminiBackend) PriceGuidance(ctx context.Context, itemName string, reward float64) (string, error) {
	prompt := fmt.Sprintf(guidancePrompt, itemName, strconv.FormatFloat(reward, 'f', -1, 64))
	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: prompt}},
	}}

	resp, err := b.models.GenerateContent(ctx, b.model, contents, nil)
	if err != nil {
		return "", errors.Wrap(err, "price guidance")
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.Wrap(errEmptyResponse, "price guidance")
	}
	return text, nil
}

func (b *GeminiBackend) generateJSON(ctx context.Context, contents []*genai.Content, schema *genai.Schema, out any) error {
	resp, err := b.models.GenerateContent(ctx, b.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return err
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return errEmptyResponse
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return errors.Wrap(err, "decode model response")
	}
	return nil
}

func imageContent(image []byte, prompt string) []*genai.Content {
	return []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: ImageMIMEType(image), Data: image}},
			{Text: prompt},
		},
	}}
}

// ImageMIMEType sniffs the MIME type of an uploaded photo, falling back to image/jpeg
// when the bytes are not recognised as an image.
func ImageMIMEType(data []byte) string {
	mt := mimetype.Detect(data).String()
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	if !strings.HasPrefix(mt, "image/") {
		return "image/jpeg"
	}
	return mt
}
