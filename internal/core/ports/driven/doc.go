// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - SessionStore: Conversation session persistence (per-key locking)
//   - SnapshotStore: Embedding index snapshot persistence
//   - StoryStore: Story corpus persistence (seeding and index builds)
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - EmbeddingService: Generates vector embeddings. Without it, an
//     index can still be loaded from a snapshot but not rebuilt, and
//     queries cannot be embedded.
//   - ReplyService: Conversational replies. Without it, the chat
//     surface is disabled; one-shot matching still works.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
