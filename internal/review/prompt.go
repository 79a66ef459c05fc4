package review

import (
	"encoding/json"
	"fmt"
	"strings"
)

const systemPromptBase = `You are an empathetic and educational code reviewer. Your job is to transform blunt review comments into constructive, encouraging guidance that helps developers learn and grow.

%s

Key principles:
1. Always start with something positive or encouraging
2. Explain the 'why' behind each suggestion with clear technical reasoning
3. Provide concrete, improved code examples in the correct language syntax
4. Use inclusive language that builds confidence
5. Focus on learning opportunities rather than mistakes

You MUST respond with ONLY a JSON object. No markdown, no explanation, no preamble. The object must have this exact structure:
{
  "rewrites": [
    {
      "original": "the original comment, verbatim",
      "rephrasing": "a gentle, encouraging version that keeps the technical point",
      "why": "the underlying software principle, explained",
      "improvement": "a concrete code example demonstrating the fix (may be empty)"
    }
  ],
  "summary": "an encouraging overall assessment of the code and the developer's progress"
}

Return exactly one rewrite per original comment, in the same order.`

// toneAdjustments tailor the system prompt to the dominant severity of the
// incoming comments.
var toneAdjustments = map[Tier]string{
	TierHarsh: `The original feedback is blunt or discouraging. Pay special attention to softening harsh language and building the developer's confidence while still conveying the technical improvement needed.`,
	TierModerate: `Maintain a balanced, professional tone while being supportive and educational.`,
	TierMild: `The original feedback is already fairly gentle, so focus on making it more educational and adding the 'why' behind each suggestion.`,
}

// SystemPrompt builds the system prompt from the persona voice, the
// detected language, and the dominant severity tier.
func SystemPrompt(persona Persona, lang Language, tone Tier) string {
	var b strings.Builder
	fmt.Fprintf(&b, systemPromptBase, persona.Voice)
	if lang != LangUnknown {
		fmt.Fprintf(&b, "\n\nLanguage context: you are reviewing %s code. Use %s terminology, conventions, and idioms in your explanations.",
			lang.Display(), lang.Display())
	}
	if adj, ok := toneAdjustments[tone]; ok {
		b.WriteString("\n\n")
		b.WriteString(adj)
	}
	return b.String()
}

// BuildUserPrompt constructs the user prompt from the snippet and comments.
// The snippet must already be redacted by the caller.
func BuildUserPrompt(snippet string, comments []string, lang Language) string {
	var b strings.Builder

	b.WriteString("Transform the following code review comments into empathetic, educational feedback.\n\n")

	fence := "text"
	if lang != LangUnknown {
		fence = string(lang)
	}
	b.WriteString("Code snippet:\n")
	fmt.Fprintf(&b, "```%s\n%s\n```\n\n", fence, snippet)

	b.WriteString("Original comments:\n")
	// JSON-encode so comments with quotes or newlines survive intact.
	encoded, _ := json.MarshalIndent(comments, "", "  ")
	b.Write(encoded)
	b.WriteString("\n")

	return b.String()
}
