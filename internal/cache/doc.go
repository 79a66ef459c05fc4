// Package cache provides a file-based cache for LLM rewrite responses.
//
// Cache entries are keyed by a SHA-256 hash of the provider name, model,
// persona, snippet, and review comments. Each entry stores the raw LLM
// response string along with a creation timestamp and a TTL (in seconds).
// Expired entries are skipped on read and counted during stats collection.
//
// The default cache directory is $XDG_CACHE_HOME/empath (or the
// OS-appropriate equivalent). All payloads stored in the cache have already
// been through secret redaction.
package cache
