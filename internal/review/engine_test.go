package review

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/empath-review/empath/internal/config"
	"github.com/empath-review/empath/internal/providers"
)

// fakeRewriter returns canned responses in order, recording each request.
type fakeRewriter struct {
	responses []string
	errs      []error
	calls     []providers.RewriteRequest
}

func (f *fakeRewriter) Rewrite(_ context.Context, req providers.RewriteRequest) (providers.RewriteResponse, error) {
	i := len(f.calls)
	f.calls = append(f.calls, req)
	if i < len(f.errs) && f.errs[i] != nil {
		return providers.RewriteResponse{}, f.errs[i]
	}
	if i >= len(f.responses) {
		return providers.RewriteResponse{}, errors.New("no more responses")
	}
	return providers.RewriteResponse{Content: f.responses[i]}, nil
}

func (f *fakeRewriter) Name() string { return "fake" }

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Provider:  "fake",
		Model:     "fake-model",
		Persona:   DefaultPersona,
		Format:    "json",
		MaxTokens: 1024,
		Cache:     config.CacheConfig{Enabled: true, Dir: t.TempDir(), TTLSeconds: 3600},
		Privacy:   config.PrivacyConfig{RedactSecrets: true},
	}
}

func payloadFor(comments []string, summary string) string {
	p := llmPayload{Summary: summary}
	for _, c := range comments {
		p.Rewrites = append(p.Rewrites, rawRewrite{
			Original:    c,
			Rephrasing:  "Gentler: " + c,
			Why:         "Because readability matters.",
			Improvement: "better_code()",
		})
	}
	data, _ := json.Marshal(p)
	return string(data)
}

func TestAnalyze(t *testing.T) {
	req := Request{
		CodeSnippet:    "def f(u): return u.x == True",
		ReviewComments: []string{"Boolean comparison '== True' is redundant.", "This is terrible."},
	}

	report := Analyze(req, "test.json")

	if report.Tool != "empath" {
		t.Errorf("Tool = %q", report.Tool)
	}
	if report.RunID == "" {
		t.Error("RunID is empty")
	}
	if report.Language != LangPython {
		t.Errorf("Language = %q, want %q", report.Language, LangPython)
	}
	if len(report.Severities) != 2 {
		t.Fatalf("len(Severities) = %d, want 2", len(report.Severities))
	}
	if report.Severities[0] != TierModerate || report.Severities[1] != TierHarsh {
		t.Errorf("Severities = %v", report.Severities)
	}
	if report.Breakdown.Harsh != 1 || report.Breakdown.Moderate != 1 {
		t.Errorf("Breakdown = %+v", report.Breakdown)
	}
	if report.Tone != TierHarsh {
		t.Errorf("Tone = %q, want %q", report.Tone, TierHarsh)
	}
	if report.Inputs.Source != "test.json" || report.Inputs.Comments != 2 {
		t.Errorf("Inputs = %+v", report.Inputs)
	}
	if report.Score.BestPractices >= 10 {
		t.Errorf("BestPractices = %v, want < 10", report.Score.BestPractices)
	}
	if len(report.Rewrites) != 0 {
		t.Errorf("Analyze should not produce rewrites, got %d", len(report.Rewrites))
	}
}

func TestAnalyzeUniqueRunIDs(t *testing.T) {
	req := Request{CodeSnippet: "x", ReviewComments: []string{"ok"}}
	a := Analyze(req, "a")
	b := Analyze(req, "b")
	if a.RunID == b.RunID {
		t.Errorf("run IDs collided: %s", a.RunID)
	}
}

func TestRunWithProvider(t *testing.T) {
	comments := []string{"Bad naming.", "This loop is inefficient."}
	fake := &fakeRewriter{responses: []string{payloadFor(comments, "Solid work overall.")}}
	req := Request{CodeSnippet: "def f(u): pass", ReviewComments: comments}

	report, err := RunWithProvider(context.Background(), req, testConfig(t), fake, "stdin")
	if err != nil {
		t.Fatalf("RunWithProvider() error = %v", err)
	}

	if len(fake.calls) != 1 {
		t.Fatalf("provider calls = %d, want 1", len(fake.calls))
	}
	if report.Persona != DefaultPersona {
		t.Errorf("Persona = %q", report.Persona)
	}
	if len(report.Rewrites) != 2 {
		t.Fatalf("len(Rewrites) = %d, want 2", len(report.Rewrites))
	}
	for i, rw := range report.Rewrites {
		if rw.Original != comments[i] {
			t.Errorf("Rewrites[%d].Original = %q, want %q", i, rw.Original, comments[i])
		}
		if rw.Severity != report.Severities[i] {
			t.Errorf("Rewrites[%d].Severity = %q, want %q", i, rw.Severity, report.Severities[i])
		}
		if rw.Rephrasing == "" {
			t.Errorf("Rewrites[%d].Rephrasing is empty", i)
		}
	}
	if report.Summary != "Solid work overall." {
		t.Errorf("Summary = %q", report.Summary)
	}
}

func TestRunWithProviderFencedResponse(t *testing.T) {
	comments := []string{"Unclear."}
	fenced := "```json\n" + payloadFor(comments, "ok") + "\n```"
	fake := &fakeRewriter{responses: []string{fenced}}
	req := Request{CodeSnippet: "x = 1", ReviewComments: comments}

	report, err := RunWithProvider(context.Background(), req, testConfig(t), fake, "stdin")
	if err != nil {
		t.Fatalf("RunWithProvider() error = %v", err)
	}
	if len(report.Rewrites) != 1 {
		t.Errorf("len(Rewrites) = %d, want 1", len(report.Rewrites))
	}
}

func TestRunWithProviderRepairPass(t *testing.T) {
	comments := []string{"Messy."}
	fake := &fakeRewriter{responses: []string{
		"I think this code could be nicer!",
		payloadFor(comments, "ok"),
	}}
	req := Request{CodeSnippet: "x = 1", ReviewComments: comments}

	report, err := RunWithProvider(context.Background(), req, testConfig(t), fake, "stdin")
	if err != nil {
		t.Fatalf("RunWithProvider() error = %v", err)
	}
	if len(fake.calls) != 2 {
		t.Fatalf("provider calls = %d, want 2 (initial + repair)", len(fake.calls))
	}
	if !strings.Contains(fake.calls[1].UserPrompt, "previous response was not valid") {
		t.Error("repair prompt missing error feedback")
	}
	if len(report.Rewrites) != 1 {
		t.Errorf("len(Rewrites) = %d, want 1", len(report.Rewrites))
	}
}

func TestRunWithProviderRepairFails(t *testing.T) {
	fake := &fakeRewriter{responses: []string{"nope", "still nope"}}
	req := Request{CodeSnippet: "x", ReviewComments: []string{"ok"}}

	_, err := RunWithProvider(context.Background(), req, testConfig(t), fake, "stdin")
	if err == nil {
		t.Fatal("expected error after failed repair")
	}
	if len(fake.calls) != 2 {
		t.Errorf("provider calls = %d, want 2", len(fake.calls))
	}
}

func TestRunWithProviderWrongRewriteCount(t *testing.T) {
	comments := []string{"One.", "Two."}
	// Respond with one rewrite for two comments, twice.
	short := payloadFor(comments[:1], "ok")
	fake := &fakeRewriter{responses: []string{short, short}}
	req := Request{CodeSnippet: "x", ReviewComments: comments}

	_, err := RunWithProvider(context.Background(), req, testConfig(t), fake, "stdin")
	if err == nil {
		t.Fatal("expected error for rewrite count mismatch")
	}
}

func TestRunWithProviderCaches(t *testing.T) {
	comments := []string{"Slow."}
	cfg := testConfig(t)
	req := Request{CodeSnippet: "for i in range(len(x)): pass", ReviewComments: comments}

	first := &fakeRewriter{responses: []string{payloadFor(comments, "ok")}}
	if _, err := RunWithProvider(context.Background(), req, cfg, first, "stdin"); err != nil {
		t.Fatalf("first run error = %v", err)
	}

	// Same inputs hit the cache; the provider must not be called.
	second := &fakeRewriter{}
	report, err := RunWithProvider(context.Background(), req, cfg, second, "stdin")
	if err != nil {
		t.Fatalf("second run error = %v", err)
	}
	if len(second.calls) != 0 {
		t.Errorf("provider calls on cached run = %d, want 0", len(second.calls))
	}
	if len(report.Rewrites) != 1 {
		t.Errorf("len(Rewrites) = %d, want 1", len(report.Rewrites))
	}
}

func TestRunWithProviderRedactsSnippet(t *testing.T) {
	comments := []string{"Hardcoded credentials."}
	fake := &fakeRewriter{responses: []string{payloadFor(comments, "ok")}}
	req := Request{
		CodeSnippet:    `api_key = "sk-ant-REDACTED"`,
		ReviewComments: comments,
	}

	_, err := RunWithProvider(context.Background(), req, testConfig(t), fake, "stdin")
	if err != nil {
		t.Fatalf("RunWithProvider() error = %v", err)
	}
	if strings.Contains(fake.calls[0].UserPrompt, "sk-ant-abc123") {
		t.Error("secret leaked into the user prompt")
	}
}

func TestRunWithProviderUnknownPersona(t *testing.T) {
	cfg := testConfig(t)
	cfg.Persona = "nonexistent"
	fake := &fakeRewriter{}
	req := Request{CodeSnippet: "x", ReviewComments: []string{"ok"}}

	_, err := RunWithProvider(context.Background(), req, cfg, fake, "stdin")
	if err == nil {
		t.Fatal("expected error for unknown persona")
	}
	if !strings.Contains(err.Error(), "nonexistent") {
		t.Errorf("error = %v, want persona name in message", err)
	}
	if len(fake.calls) != 0 {
		t.Errorf("provider called despite persona error")
	}
}

func TestRunWithProviderProviderError(t *testing.T) {
	fake := &fakeRewriter{errs: []error{errors.New("boom")}}
	req := Request{CodeSnippet: "x", ReviewComments: []string{"ok"}}

	_, err := RunWithProvider(context.Background(), req, testConfig(t), fake, "stdin")
	if err == nil {
		t.Fatal("expected provider error")
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  ```json\n{\"a\":1}\n```  ", `{"a":1}`},
		{"```json\n{\"a\":1}", `{"a":1}`},
	}
	for _, tt := range tests {
		if got := stripFences(tt.in); got != tt.want {
			t.Errorf("stripFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParsePayload(t *testing.T) {
	good := payloadFor([]string{"a", "b"}, "s")
	p, err := parsePayload(good, 2)
	if err != nil {
		t.Fatalf("parsePayload() error = %v", err)
	}
	if p.Summary != "s" {
		t.Errorf("Summary = %q", p.Summary)
	}

	if _, err := parsePayload(good, 3); err == nil {
		t.Error("expected count mismatch error")
	}
	if _, err := parsePayload("not json", 1); err == nil {
		t.Error("expected JSON error")
	}
	if _, err := parsePayload(`{"rewrites":[{"rephrasing":"  "}],"summary":""}`, 1); err == nil {
		t.Error("expected empty rephrasing error")
	}
}
