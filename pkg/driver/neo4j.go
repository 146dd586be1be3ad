package driver

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"

	"github.com/soundprediction/citegraph/pkg/types"
)

// Neo4jDriver implements the GraphDriver interface for Neo4j databases.
type Neo4jDriver struct {
	client   neo4j.DriverWithContext
	database string
}

// NewNeo4jDriver creates a new Neo4j driver instance.
func NewNeo4jDriver(uri, username, password, database string) (*Neo4jDriver, error) {
	client, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}

	if database == "" {
		database = "neo4j"
	}

	return &Neo4jDriver{
		client:   client,
		database: database,
	}, nil
}

// DocumentsMissingEmbeddings returns up to limit un-embedded documents,
// highest quality first.
func (n *Neo4jDriver) DocumentsMissingEmbeddings(ctx context.Context, limit int) ([]types.Document, error) {
	if limit <= 0 {
		return nil, types.ErrInvalidLimit
	}

	session := n.client.NewSession(ctx, neo4j.SessionConfig{DatabaseName: n.database})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (d:Document)
			WHERE d.embedding IS NULL AND d.text IS NOT NULL AND d.text <> '' AND d.quality > 0.0
			RETURN d.id AS id, d.title AS title, d.text AS text, d.quality AS quality
			ORDER BY d.quality DESC
			LIMIT toInteger($limit)
		`
		res, err := tx.Run(ctx, query, map[string]any{"limit": limit})
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("fetching documents missing embeddings: %w", err)
	}

	records := result.([]*db.Record)
	docs := make([]types.Document, 0, len(records))
	for _, record := range records {
		doc, err := decodeDocument(recordAsMap(record))
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// SetDocumentEmbeddings writes embeddings back in one UNWIND statement.
func (n *Neo4jDriver) SetDocumentEmbeddings(ctx context.Context, docs []types.Document) error {
	if len(docs) == 0 {
		return nil
	}

	payload := make([]map[string]any, len(docs))
	for i, doc := range docs {
		payload[i] = map[string]any{
			"id":        doc.ID,
			"embedding": embeddingParam(doc.Embedding),
		}
	}

	session := n.client.NewSession(ctx, neo4j.SessionConfig{DatabaseName: n.database})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			UNWIND $documents AS doc
			MATCH (d:Document {id: doc.id})
			SET d.embedding = doc.embedding
		`
		res, err := tx.Run(ctx, query, map[string]any{"documents": payload})
		if err != nil {
			return nil, err
		}
		return res.Consume(ctx)
	})
	if err != nil {
		return fmt.Errorf("writing document embeddings: %w", err)
	}
	return nil
}

// CreateVectorIndex creates the document vector index if absent.
func (n *Neo4jDriver) CreateVectorIndex(ctx context.Context) error {
	session := n.client.NewSession(ctx, neo4j.SessionConfig{DatabaseName: n.database})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := "CREATE VECTOR INDEX `document-index` IF NOT EXISTS FOR (d:Document) ON (d.embedding)"
		res, err := tx.Run(ctx, query, nil)
		if err != nil {
			return nil, err
		}
		return res.Consume(ctx)
	})
	if err != nil {
		return fmt.Errorf("creating vector index: %w", err)
	}
	return nil
}

// SimilarDocuments runs a vector-index search anchored on the document with
// the given title.
func (n *Neo4jDriver) SimilarDocuments(ctx context.Context, title string, k int) ([]types.DocumentResult, error) {
	if title == "" {
		return nil, types.ErrEmptyTitle
	}
	if k <= 0 {
		return nil, types.ErrInvalidLimit
	}

	session := n.client.NewSession(ctx, neo4j.SessionConfig{DatabaseName: n.database})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (d:Document {title: $title})
			WHERE d.embedding IS NOT NULL
			CALL db.index.vector.queryNodes('document-index', $k, d.embedding)
			YIELD node AS found, score
			WITH * WHERE found <> d
			RETURN found.id AS id, found.title AS title, found.text AS text,
			       found.quality AS quality, score
		`
		res, err := tx.Run(ctx, query, map[string]any{"title": title, "k": k})
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("vector search for %q: %w", title, err)
	}

	records := result.([]*db.Record)
	results := make([]types.DocumentResult, 0, len(records))
	for _, record := range records {
		row := recordAsMap(record)
		doc, err := decodeDocument(row)
		if err != nil {
			return nil, err
		}
		score, err := floatValue(row, "score")
		if err != nil {
			return nil, err
		}
		results = append(results, types.DocumentResult{Document: doc, Score: score})
	}
	return results, nil
}

// CreateProject persists the project node, its merged papers, and the scored
// RELATED_TO relationships in one statement. FOREACH keeps a project with no
// citations from vanishing the way an UNWIND over an empty list would.
func (n *Neo4jDriver) CreateProject(ctx context.Context, project *types.Project) error {
	if err := project.Validate(); err != nil {
		return err
	}
	if project.ProjectID == "" {
		return types.ErrEmptyProjectID
	}

	citations := make([]map[string]any, len(project.Citations))
	for i, c := range project.Citations {
		citations[i] = map[string]any{
			"id":      c.Paper.ID,
			"title":   c.Paper.Title,
			"authors": c.Paper.Authors,
			"score":   c.Score,
		}
	}

	session := n.client.NewSession(ctx, neo4j.SessionConfig{DatabaseName: n.database})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			CREATE (s:Project {projectId: $projectId, userId: $userId, title: $title,
			                   keywords: $keywords, embedding: $embedding, createdAt: datetime()})
			WITH s
			FOREACH (cit IN $citations |
				MERGE (p:Paper {id: cit.id, title: cit.title, authors: cit.authors})
				CREATE (s)-[:RELATED_TO {score: cit.score}]->(p)
			)
		`
		res, err := tx.Run(ctx, query, map[string]any{
			"projectId": project.ProjectID,
			"userId":    project.UserID,
			"title":     project.Title,
			"keywords":  project.Keywords,
			"embedding": embeddingParam(project.Embedding),
			"citations": citations,
		})
		if err != nil {
			return nil, err
		}
		return res.Consume(ctx)
	})
	if err != nil {
		return fmt.Errorf("creating project: %w", err)
	}
	return nil
}

// ProjectsByUser returns all projects for the user with nested citations.
func (n *Neo4jDriver) ProjectsByUser(ctx context.Context, userID string) ([]*types.Project, error) {
	if userID == "" {
		return nil, types.ErrEmptyUserID
	}

	session := n.client.NewSession(ctx, neo4j.SessionConfig{DatabaseName: n.database})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, projectQuery("s.userId = $userId"), map[string]any{"userId": userID})
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("fetching projects for user %s: %w", userID, err)
	}

	records := result.([]*db.Record)
	projects := make([]*types.Project, 0, len(records))
	for _, record := range records {
		project, err := decodeProject(recordAsMap(record))
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, nil
}

// ProjectByID returns the project with the given projectId, or nil.
func (n *Neo4jDriver) ProjectByID(ctx context.Context, projectID string) (*types.Project, error) {
	if projectID == "" {
		return nil, types.ErrEmptyProjectID
	}

	session := n.client.NewSession(ctx, neo4j.SessionConfig{DatabaseName: n.database})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, projectQuery("s.projectId = $projectId"), map[string]any{"projectId": projectID})
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("fetching project %s: %w", projectID, err)
	}

	records := result.([]*db.Record)
	if len(records) == 0 {
		return nil, nil
	}
	return decodeProject(recordAsMap(records[0]))
}

// DeleteCitation removes exactly one RELATED_TO relationship matching all
// three keys. The paper node itself is left in place.
func (n *Neo4jDriver) DeleteCitation(ctx context.Context, userID, projectID, citationID string) (*types.Paper, error) {
	session := n.client.NewSession(ctx, neo4j.SessionConfig{DatabaseName: n.database})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (s:Project {projectId: $projectId, userId: $userId})-[r:RELATED_TO]->(p:Paper {id: $citationId})
			WITH r, p LIMIT 1
			DELETE r
			RETURN p.id AS id, p.title AS title, p.authors AS authors
		`
		res, err := tx.Run(ctx, query, map[string]any{
			"userId":     userID,
			"projectId":  projectID,
			"citationId": citationID,
		})
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("deleting citation %s: %w", citationID, err)
	}

	records := result.([]*db.Record)
	if len(records) == 0 {
		return nil, nil
	}
	paper, err := decodePaper(recordAsMap(records[0]))
	if err != nil {
		return nil, err
	}
	return paper, nil
}

// DeleteProject removes the project and all its relationships.
func (n *Neo4jDriver) DeleteProject(ctx context.Context, userID, projectID string) (*types.Project, error) {
	session := n.client.NewSession(ctx, neo4j.SessionConfig{DatabaseName: n.database})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (s:Project {projectId: $projectId, userId: $userId})
			WITH s, s.projectId AS projectId, s.userId AS userId, s.title AS title, s.keywords AS keywords
			DETACH DELETE s
			RETURN projectId, userId, title, keywords
		`
		res, err := tx.Run(ctx, query, map[string]any{
			"userId":    userID,
			"projectId": projectID,
		})
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("deleting project %s: %w", projectID, err)
	}

	records := result.([]*db.Record)
	if len(records) == 0 {
		return nil, nil
	}
	return decodeProject(recordAsMap(records[0]))
}

// Close releases all resources held by the driver.
func (n *Neo4jDriver) Close(ctx context.Context) error {
	return n.client.Close(ctx)
}

// projectQuery builds the shared project read query with the given filter
// predicate. Citations come back ordered by score descending.
func projectQuery(where string) string {
	return `
		MATCH (s:Project)
		WHERE ` + where + `
		OPTIONAL MATCH (s)-[r:RELATED_TO]->(p:Paper)
		WITH s, r, p ORDER BY r.score DESC
		WITH s, collect(CASE WHEN p IS NULL THEN NULL ELSE
			{id: p.id, title: p.title, authors: p.authors, score: r.score} END) AS citations
		RETURN s.projectId AS projectId, s.userId AS userId, s.title AS title,
		       s.keywords AS keywords, citations
		ORDER BY s.createdAt DESC
	`
}

// embeddingParam converts a float32 vector to the float64 form the bolt
// protocol serializes.
func embeddingParam(v []float32) []float64 {
	if v == nil {
		return nil
	}
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}

// recordAsMap flattens a record into a column-name keyed map for the decode
// functions.
func recordAsMap(record *db.Record) map[string]any {
	row := make(map[string]any, len(record.Keys))
	for _, key := range record.Keys {
		value, _ := record.Get(key)
		row[key] = value
	}
	return row
}
