// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - CourseStore: Course, lesson and chunk persistence
//   - VectorIndex: Similarity search over embeddings (one instance per
//     logical collection: catalog and content)
//   - EmbeddingService: Generates vector embeddings
//   - LLMService: Tool-calling language model access
//   - SessionStore: Bounded conversation history
//   - SettingsStore: Application configuration persistence
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
