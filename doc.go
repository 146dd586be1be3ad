// Package citegraph implements a semantic paper search and citation graph
// service: it backfills vector embeddings for a document corpus stored in a
// graph database, ranks candidate papers against a query embedding by cosine
// similarity, and persists each search as a project node connected to merged
// paper nodes by similarity-scored relationships.
//
// The Client is assembled from explicit collaborators: a GraphDriver for the
// graph store, an embedder.Client for the embedding model, a scholar.Client
// for the paper search API, and an optional nlp.Client for the chat
// assistant. All operations are synchronous and carry a context.
package citegraph
