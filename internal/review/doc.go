// Package review contains the core pipeline for empathetic code review.
//
// The pipeline is validate, detect, classify, score, rewrite: ParseRequest
// gates all input, Detect maps a snippet to a language label by keyword
// counting, Classify maps each comment to a severity tier in priority
// order, and Score computes four independent quality subscores plus their
// aggregate. Everything up to the provider call is a total, pure function:
// degenerate inputs (empty snippet, gentle comments) map to documented
// fallback values rather than errors.
//
// The engine assembles persona- and tone-aware prompts, demands a JSON
// object from the provider, and performs one repair pass when the response
// does not match the contract. Keyword, anti-pattern, and resource tables
// are named package-level variables so they can be tested and extended
// without touching control flow.
package review
