// Package providers implements the Rewriter interface for each supported
// LLM provider.
//
// Supported providers: Anthropic (Claude) and OpenAI (GPT) via their
// official Go SDKs, Google (Gemini) via its REST API, and Ollama / LM
// Studio for local models via the OpenAI-compatible chat API.
//
// All providers share a common retry helper with exponential back-off on
// rate limits; auth errors surface immediately and are detectable with
// [IsAuthError]. The HTTP-based providers expose their base URL and client
// as fields so tests can point them at local httptest servers.
//
// Use [New] to obtain a Rewriter by provider name and model string.
package providers
