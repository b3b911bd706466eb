// Package services contains the core business logic.
//
// Services implement the driving ports and depend on the driven ports.
// They never import adapter packages; all infrastructure arrives
// through constructor injection.
//
// # Services
//
//   - SearchService: metadata-filtered semantic retrieval with fuzzy
//     course-name resolution
//   - IngestService: document parsing, chunking, embedding and
//     replace-on-reingest indexing
//   - AskService: the two-phase tool-calling agent loop with bounded
//     session history
//   - ToolRegistry: the tools the model may call while answering
package services
