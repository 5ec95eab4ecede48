// Package docsearch maintains a semantically searchable index of a local
// markdown documentation corpus. It walks a directory tree of documents,
// splits each document into heading-delimited sections, generates vector
// embeddings for changed content only, and answers natural language queries
// by similarity search over the stored sections.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, fs/).
package docsearch
