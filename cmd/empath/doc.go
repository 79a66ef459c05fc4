// Empath is a local-first CLI that turns blunt code review comments into
// empathetic, educational feedback.
//
// It validates a JSON review request, detects the snippet's language,
// classifies each comment's severity, scores the snippet on four quality
// dimensions, and rewrites every comment through an LLM provider in a
// configurable reviewer persona, emitting text, JSON, or Markdown reports
// with deterministic exit codes suitable for CI gating.
//
// Usage:
//
//	empath review --input request.json   # full pipeline with LLM rewrites
//	empath analyze --input request.json  # heuristics only, no network
//	empath personas                      # list reviewer personas
//	empath models                        # list known models per provider
//	empath history list                  # inspect past runs
//	empath cache stats                   # inspect the response cache
//
// See https://github.com/empath-review/empath for full documentation.
package main
