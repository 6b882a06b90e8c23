// Package dispatcher maps a free-text task description onto exactly one task
// handler.
//
// Matching is literal: the description is lowercased and trimmed, then tested
// against a fixed, ordered list of keyword rules. The first rule that matches
// wins, so the order of the list is part of the contract. Callers that already
// know which task they want can bypass matching with Run and a Kind.
package dispatcher
