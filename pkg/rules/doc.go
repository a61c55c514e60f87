// Package rules implements clir's rule engine: persisted glob patterns,
// their expansion to concrete filesystem paths, and the orchestration that
// computes each rule's deduplicated disk usage via a shared path tree.
//
// Listing runs in four phases with distinct concurrency contracts:
// expansion (parallel, filesystem read-only), tree build (sequential,
// single writer, deterministic sorted rule order), size resolution
// (parallel, tree read-only) and deletion (parallel over disjoint path
// sets).
package rules
