// Package embedder provides text embedding clients for vector representations.
//
// The Client interface abstracts the embedding model as a black-box function
// from texts to fixed-length float32 vectors. The OpenAI implementation works
// against api.openai.com or any OpenAI-compatible endpoint.
//
// EmbedDocuments chunks large document sets into fixed-size batches and
// validates that every model call returns exactly one vector per input text;
// a mismatch is a contract violation, never silently ignored.
package embedder
