package utils

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrUnparsable reports that a model reply could not be coerced into the
// expected shape even after the fallback parse.
var ErrUnparsable = errors.New("could not parse model response")

func NewAIClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	return genai.NewClient(ctx, option.WithAPIKey(apiKey))
}

func GenerateText(ctx context.Context, client *genai.Client, model string, parts ...genai.Part) (string, error) {
	m := client.GenerativeModel(model)
	m.SetTemperature(0.7)
	resp, err := m.GenerateContent(ctx, parts...)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if resp != nil {
		for _, c := range resp.Candidates {
			if c == nil || c.Content == nil {
				continue
			}
			for _, p := range c.Content.Parts {
				if t, ok := p.(genai.Text); ok {
					b.WriteString(string(t))
				}
			}
		}
	}
	return strings.TrimSpace(b.String()), nil
}

// GenerationItem is one design preview. Kind discriminates the payload:
// raster carries base64 data + mime type, vector carries raw SVG markup.
type GenerationItem struct {
	Kind string `json:"kind"` // "raster" | "vector"
	Data string `json:"data,omitempty"`
	Mime string `json:"mime,omitempty"`
	SVG  string `json:"svg,omitempty"`
}

type GenerationResult struct {
	Success bool             `json:"success"`
	Items   []GenerationItem `json:"items"`
	Errors  []string         `json:"errors,omitempty"`
	Error   string           `json:"error,omitempty"`
}

var logoStyles = []string{
	"Style: 'Modern Minimalist'. Focus on geometric precision, clean lines, and negative space. A singular, iconic symbol. Flat design, vector aesthetic. White background. Professional, tech-forward, scalable.",
	"Style: 'Abstract 3D Gradient'. Use vibrant glassmorphism, isometric shapes, and fluid gradients. Futuristic, dynamic, and glowing. Centered composition on a dark background for contrast.",
	"Style: 'Timeless Luxury'. Serif-inspired forms, gold or metallic textures, symmetrical balance. Sophisticated, elegant, and high-end. Monochromatic with one accent color.",
}

var flyerStyles = []string{
	"Style: 'Corporate Clean'. Swiss typography, grid-based layout, ample whitespace. vivid product photography feel. Professional, trustworthy, and organized.",
	"Style: 'Vibrant Marketing'. Bold typography overlay, energetic color palette, dynamic diagonal composition. Eye-catching, persuasive, and action-oriented.",
	"Style: 'Dark Mode editorial'. moody lighting, neon accents, cinematic depth of field. High-contrast, sleek, and modern.",
}

// BuildDesignPrompts returns one prompt per style variant for the asset type.
func BuildDesignPrompts(assetType, businessName, businessType, description string) []string {
	isLogo := strings.EqualFold(assetType, "logo")

	role := "Design a high-converting, premium marketing flyer with commercial-grade composition."
	if isLogo {
		role = "Design a world-class, vector-style logo suitable for a Fortune 500 brand identity."
	}
	if description == "" {
		description = "Create a market-leading visual identity."
	}
	context := fmt.Sprintf("Client: %q (%s). Requirements: %s", businessName, businessType, description)

	techSpecs := "8k resolution, trending on Behance, award-winning, masterwork, sharp details."
	negative := "Avoid: blurry text, chaotic layout, low resolution, amateur composition."
	styles := flyerStyles
	if isLogo {
		negative = "Avoid: photorealistic details, cluttered elements, shadowing, complex backgrounds, text distortions."
		styles = logoStyles
	}

	prompts := make([]string, len(styles))
	for i, style := range styles {
		prompts[i] = fmt.Sprintf("%s %s %s %s %s", role, context, style, techSpecs, negative)
	}
	return prompts
}

// VariantFunc produces one design from one prompt.
type VariantFunc func(ctx context.Context, prompt string) (GenerationItem, error)

// AggregateVariants issues every prompt concurrently and collects each outcome.
// A failed variant never cancels its siblings; the call only counts as a
// failure when every variant fails.
func AggregateVariants(ctx context.Context, prompts []string, generate VariantFunc) GenerationResult {
	items := make([]*GenerationItem, len(prompts))
	errs := make([]string, len(prompts))

	var wg sync.WaitGroup
	for i, p := range prompts {
		wg.Add(1)
		go func(i int, prompt string) {
			defer wg.Done()
			item, err := generate(ctx, prompt)
			if err != nil {
				errs[i] = err.Error()
				return
			}
			items[i] = &item
		}(i, p)
	}
	wg.Wait()

	res := GenerationResult{}
	for _, it := range items {
		if it != nil {
			res.Items = append(res.Items, *it)
		}
	}
	for _, e := range errs {
		if e != "" {
			res.Errors = append(res.Errors, e)
		}
	}
	if len(res.Items) == 0 && len(res.Errors) > 0 {
		res.Error = "Generation failed: " + strings.Join(res.Errors, ", ")
		return res
	}
	res.Success = true
	return res
}

// GenerateDesigns runs the three style-variant requests for a logo or flyer.
func GenerateDesigns(ctx context.Context, client *genai.Client, model, assetType, businessName, businessType, description string) GenerationResult {
	prompts := BuildDesignPrompts(assetType, businessName, businessType, description)
	return AggregateVariants(ctx, prompts, func(ctx context.Context, prompt string) (GenerationItem, error) {
		return generateImageVariant(ctx, client, model, prompt)
	})
}

func generateImageVariant(ctx context.Context, client *genai.Client, model, prompt string) (GenerationItem, error) {
	m := client.GenerativeModel(model)
	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return GenerationItem{}, err
	}
	for _, c := range resp.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			switch v := p.(type) {
			case genai.Blob:
				return GenerationItem{
					Kind: "raster",
					Data: base64.StdEncoding.EncodeToString(v.Data),
					Mime: v.MIMEType,
				}, nil
			case genai.Text:
				if svg := strings.TrimSpace(string(v)); strings.HasPrefix(svg, "<svg") {
					return GenerationItem{Kind: "vector", SVG: svg}, nil
				}
			}
		}
	}
	return GenerationItem{}, errors.New("no image data found in response")
}

// stripFences removes markdown code fences the model tends to wrap JSON in.
func stripFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// ParseSuggestions expects a JSON array of five names. When the strict parse
// fails the single fallback is line/comma splitting with numbering stripped.
func ParseSuggestions(text string) ([]string, error) {
	text = stripFences(text)

	var names []string
	if err := json.Unmarshal([]byte(text), &names); err == nil {
		return capSuggestions(names), nil
	}

	cleaned := strings.NewReplacer("[", "", "]", "", `"`, "").Replace(text)
	var out []string
	for _, line := range strings.FieldsFunc(cleaned, func(r rune) bool { return r == '\n' || r == ',' }) {
		s := strings.TrimSpace(line)
		s = strings.TrimLeft(s, "0123456789")
		s = strings.TrimLeft(s, ".) ")
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil, ErrUnparsable
	}
	return capSuggestions(out), nil
}

func capSuggestions(names []string) []string {
	out := make([]string, 0, 5)
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		out = append(out, n)
		if len(out) == 5 {
			break
		}
	}
	return out
}

type BusinessAnalysis struct {
	Name   string `json:"name"`
	Slogan string `json:"slogan"`
	Score  int    `json:"score"`
}

// ParseAnalysis requires the full {name, slogan, score} object; anything less
// is surfaced as ErrUnparsable rather than patched together.
func ParseAnalysis(text string) (BusinessAnalysis, error) {
	var a BusinessAnalysis
	if err := json.Unmarshal([]byte(stripFences(text)), &a); err != nil {
		return BusinessAnalysis{}, ErrUnparsable
	}
	if a.Name == "" || a.Slogan == "" {
		return BusinessAnalysis{}, ErrUnparsable
	}
	return a, nil
}

// SuggestionPrompt mirrors the naming-assistant prompt used by the dashboard.
func SuggestionPrompt(businessType, goal, clients, stage string) string {
	if clients == "" {
		clients = "general audience"
	}
	if stage == "" {
		stage = "unspecified"
	}
	return fmt.Sprintf(`You are a business naming assistant.
Suggest exactly 5 creative business names for a %s company.

Goal: %s.
Target clients: %s.
Stage: %s.

IMPORTANT: Return ONLY a valid JSON array of 5 strings.
Example:
["Name1", "Name2", "Name3", "Name4", "Name5"]`, businessType, goal, clients, stage)
}

func AnalysisPrompt(businessIdea string) string {
	return fmt.Sprintf(`You are an expert business consultant and brand strategist.
Analyze the following business idea: %q

Provide:
1. A creative, professional business Name.
2. A short, catchy Slogan.
3. A Viability Score (0-100) based on market trends.

IMPORTANT: Return ONLY a valid JSON object.
Example:
{
  "name": "EcoLogix",
  "slogan": "Sustainable shipping for a greener future.",
  "score": 88
}`, businessIdea)
}
