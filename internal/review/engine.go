package review

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/empath-review/empath/internal/cache"
	"github.com/empath-review/empath/internal/config"
	"github.com/empath-review/empath/internal/providers"
	"github.com/empath-review/empath/internal/redact"
)

const (
	toolName    = "empath"
	toolVersion = "0.2.0"
)

// llmPayload is the JSON structure the provider is instructed to return.
type llmPayload struct {
	Rewrites []rawRewrite `json:"rewrites"`
	Summary  string       `json:"summary"`
}

type rawRewrite struct {
	Original    string `json:"original"`
	Rephrasing  string `json:"rephrasing"`
	Why         string `json:"why"`
	Improvement string `json:"improvement"`
}

// Analyze runs the heuristic pipeline only: detect, classify, score. No
// network access, no provider, no failure modes.
func Analyze(req Request, source string) *Report {
	start := time.Now()

	lang := Detect(req.CodeSnippet)
	tiers := ClassifyAll(req.ReviewComments)
	score := Score(req.CodeSnippet, req.ReviewComments, lang)
	analysisMs := time.Since(start).Milliseconds()

	return &Report{
		Tool:    toolName,
		Version: toolVersion,
		RunID:   ulid.Make().String(),
		Language: lang,
		Inputs: InputInfo{
			Source:       source,
			SnippetBytes: len(req.CodeSnippet),
			Comments:     len(req.ReviewComments),
		},
		Severities: tiers,
		Breakdown:  ComputeBreakdown(tiers),
		Tone:       DominantTone(tiers),
		Score:      score,
		Resources:  RelevantResources(req.CodeSnippet, req.ReviewComments, lang),
		Timing: Timing{
			AnalysisMs: analysisMs,
			TotalMs:    time.Since(start).Milliseconds(),
		},
	}
}

// Run executes the full pipeline with the configured provider.
func Run(ctx context.Context, req Request, cfg config.Config, source string) (*Report, error) {
	provider, err := providers.New(cfg.Provider, cfg.Model)
	if err != nil {
		return nil, err
	}
	return RunWithProvider(ctx, req, cfg, provider, source)
}

// RunWithProvider executes the full pipeline: heuristics, prompt assembly,
// cached LLM call with one repair pass, and report assembly. The heuristic
// phase never fails; errors originate from configuration or the provider.
func RunWithProvider(ctx context.Context, req Request, cfg config.Config, provider providers.Rewriter, source string) (*Report, error) {
	start := time.Now()

	report := Analyze(req, source)

	personas, err := LoadPersonas(cfg.PersonaFile)
	if err != nil {
		return nil, err
	}
	persona, ok := personas[cfg.Persona]
	if !ok {
		return nil, fmt.Errorf("unknown persona: %s (available: %s)",
			cfg.Persona, strings.Join(PersonaNames(personas), ", "))
	}
	report.Persona = persona.Name

	snippet := req.CodeSnippet
	if cfg.Privacy.RedactSecrets {
		snippet = redact.Secrets(snippet)
	}

	systemPrompt := SystemPrompt(persona, report.Language, report.Tone)
	userPrompt := BuildUserPrompt(snippet, req.ReviewComments, report.Language)

	respCache, err := cache.New(cfg.Cache.Enabled, cfg.Cache.Dir, cfg.Cache.TTLSeconds)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	cacheKey := cache.BuildKey(provider.Name(), cfg.Model, persona.Name, snippet, req.ReviewComments)

	var content string
	var llmMs int64
	if cached, ok := respCache.Get(cacheKey); ok {
		content = cached
	} else {
		llmStart := time.Now()
		resp, err := provider.Rewrite(ctx, providers.RewriteRequest{
			SystemPrompt: systemPrompt,
			UserPrompt:   userPrompt,
			MaxTokens:    cfg.MaxTokens,
			Temperature:  cfg.Temperature,
		})
		if err != nil {
			return nil, fmt.Errorf("provider rewrite: %w", err)
		}
		llmMs = time.Since(llmStart).Milliseconds()
		content = resp.Content
	}

	payload, err := parsePayload(content, len(req.ReviewComments))
	if err != nil {
		// One repair pass: feed the parse error back to the provider.
		repairPrompt := fmt.Sprintf(
			"Your previous response was not valid. The error was: %s\n\nRespond again with ONLY the JSON object described in the system prompt, with exactly %d rewrites.\n\nYour previous response was:\n%s",
			err.Error(), len(req.ReviewComments), content,
		)
		llmStart := time.Now()
		resp2, err2 := provider.Rewrite(ctx, providers.RewriteRequest{
			SystemPrompt: systemPrompt,
			UserPrompt:   repairPrompt,
			MaxTokens:    cfg.MaxTokens,
		})
		if err2 != nil {
			return nil, fmt.Errorf("repair pass failed: %w (original error: %w)", err2, err)
		}
		llmMs += time.Since(llmStart).Milliseconds()
		content = resp2.Content
		payload, err = parsePayload(content, len(req.ReviewComments))
		if err != nil {
			return nil, fmt.Errorf("response validation failed after repair: %w", err)
		}
	}

	// A failed cache write is not worth failing the run over.
	_ = respCache.Put(cacheKey, content)

	report.Rewrites = make([]Rewrite, len(payload.Rewrites))
	for i, r := range payload.Rewrites {
		report.Rewrites[i] = Rewrite{
			// Keep our copy of the original; the model may paraphrase it.
			Original:    req.ReviewComments[i],
			Severity:    report.Severities[i],
			Rephrasing:  r.Rephrasing,
			Why:         r.Why,
			Improvement: r.Improvement,
		}
	}
	report.Summary = payload.Summary
	report.Timing.LLMMs = llmMs
	report.Timing.TotalMs = time.Since(start).Milliseconds()

	return report, nil
}

// parsePayload validates the LLM response shape: a JSON object with exactly
// one rewrite per original comment.
func parsePayload(content string, wantRewrites int) (*llmPayload, error) {
	content = stripFences(content)

	var payload llmPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("invalid JSON object: %w", err)
	}
	if len(payload.Rewrites) != wantRewrites {
		return nil, fmt.Errorf("expected %d rewrites, got %d", wantRewrites, len(payload.Rewrites))
	}
	for i, r := range payload.Rewrites {
		if strings.TrimSpace(r.Rephrasing) == "" {
			return nil, fmt.Errorf("rewrite %d has an empty rephrasing", i)
		}
	}
	return &payload, nil
}

// stripFences removes a surrounding markdown code fence if present. Models
// add one despite instructions often enough that prompting alone is not a
// fix.
func stripFences(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	lines := strings.Split(content, "\n")
	if len(lines) < 2 {
		return content
	}
	end := len(lines)
	if strings.TrimSpace(lines[end-1]) == "```" {
		end--
	}
	return strings.Join(lines[1:end], "\n")
}
