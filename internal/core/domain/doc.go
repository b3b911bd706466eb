// Package domain defines the core business entities for Coursechat.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Course: A parsed course document with its ordered lessons
//   - CourseChunk: A searchable unit of course content
//   - SearchResult: A retrieval hit with provenance
//   - SourceCitation: Per-hit provenance shown to the end user
//   - Exchange: One user/assistant turn pair in a session
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
