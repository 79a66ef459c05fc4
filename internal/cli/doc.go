// Package cli wires together the Cobra command tree for the empath binary.
//
// It defines the root command and all subcommands (review, analyze,
// personas, models, history, cache, config, version), binds flags, layers
// configuration, invokes the review engine, and returns deterministic exit
// codes for CI gating.
package cli
