// Package ultravox ingests documentation sites into a vector store.
// It crawls pages with a headless browser, converts them to markdown,
// splits them into bounded chunks, enriches each chunk with an LLM
// title/summary and an embedding, and persists the results for
// retrieval-augmented generation.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, openai/, postgres/).
package ultravox
