// Package driving defines the interfaces that external actors use to
// drive the core ("driving" or "primary" ports).
//
// CLI, TUI and MCP adapters depend on these interfaces; core services
// implement them.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driving
