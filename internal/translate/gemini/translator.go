// Package gemini translates explanations with Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"errkb/internal/domain"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Translator implements domain.Translator at compile time.
var _ domain.Translator = (*Translator)(nil)

// Translator implements domain.Translator using Google Gemini.
type Translator struct {
	client *genai.Client
	model  string
}

// NewTranslator creates a new Translator.
func NewTranslator(client *genai.Client, model string) *Translator {
	if model == "" {
		model = DefaultModel
	}
	return &Translator{client: client, model: model}
}

// Translate translates text into targetLocale.
func (t *Translator) Translate(ctx context.Context, text, targetLocale string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", domain.Errorf(domain.EINVALID, "text required")
	}
	if strings.TrimSpace(targetLocale) == "" {
		return "", domain.Errorf(domain.EINVALID, "target locale required")
	}

	result, err := t.client.Models.GenerateContent(ctx, t.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildPrompt(text, targetLocale)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", domain.Errorf(domain.EINTERNAL, "gemini returned nil result")
	}

	out := strings.TrimSpace(result.Text())
	if out == "" {
		return "", domain.Errorf(domain.ETRANSLATION, "gemini returned an empty translation")
	}
	return out, nil
}

// BuildConfig returns the GenerateContentConfig for translation calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You translate database error message documentation. Keep error codes, SQL keywords, identifiers and placeholders such as %s unchanged. Reply with the translation only.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildPrompt builds the user prompt for translating text into targetLocale.
func BuildPrompt(text, targetLocale string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Translate the following text into the language with locale code %q.\n\n", targetLocale)
	sb.WriteString("<text>\n")
	sb.WriteString(text)
	sb.WriteString("\n</text>")
	return sb.String()
}
