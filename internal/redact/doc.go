// Package redact removes secrets from snippet content before it is sent to
// any LLM provider.
//
// Detection uses regex heuristics covering common secret shapes: API keys,
// JWTs, private keys, AWS access key IDs, bearer tokens, and
// provider-specific tokens (Anthropic, OpenAI, GitHub).
package redact
