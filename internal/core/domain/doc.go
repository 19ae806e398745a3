// Package domain defines the core business entities for Been There.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Story: A first-person mentor story from the corpus
//   - MatchResult: A story paired with its similarity to a query
//   - RiskAssessment: The moderation verdict for a piece of text
//   - ChatTurn: One utterance in an intake conversation
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
