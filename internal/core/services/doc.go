// Package services implements the driving port interfaces.
// Services contain the core business logic - index building and
// similarity ranking, moderation, safety gating, and the conversation
// controller - and orchestrate calls to driven ports (adapters).
package services
