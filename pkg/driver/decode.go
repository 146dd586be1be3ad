package driver

import (
	"errors"
	"fmt"

	"github.com/soundprediction/citegraph/pkg/types"
)

// ErrShapeMismatch is returned when a graph row does not match the expected
// entity shape. This is a contract violation; rows are never partially decoded.
var ErrShapeMismatch = errors.New("graph row does not match expected shape")

func stringValue(row map[string]any, key string) (string, error) {
	value, ok := row[key]
	if !ok || value == nil {
		return "", fmt.Errorf("%w: missing %q", ErrShapeMismatch, key)
	}
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q is %T, expected string", ErrShapeMismatch, key, value)
	}
	return s, nil
}

func floatValue(row map[string]any, key string) (float64, error) {
	value, ok := row[key]
	if !ok || value == nil {
		return 0, fmt.Errorf("%w: missing %q", ErrShapeMismatch, key)
	}
	switch v := value.(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("%w: %q is %T, expected float", ErrShapeMismatch, key, value)
	}
}

func stringSliceValue(row map[string]any, key string) ([]string, error) {
	value, ok := row[key]
	if !ok || value == nil {
		return nil, nil
	}
	list, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q is %T, expected list", ErrShapeMismatch, key, value)
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %q element is %T, expected string", ErrShapeMismatch, key, item)
		}
		out = append(out, s)
	}
	return out, nil
}

// decodeDocument maps a {id, title, text, quality} row onto a Document.
func decodeDocument(row map[string]any) (types.Document, error) {
	id, err := stringValue(row, "id")
	if err != nil {
		return types.Document{}, err
	}
	title, err := stringValue(row, "title")
	if err != nil {
		return types.Document{}, err
	}
	text, err := stringValue(row, "text")
	if err != nil {
		return types.Document{}, err
	}
	quality, err := floatValue(row, "quality")
	if err != nil {
		return types.Document{}, err
	}
	return types.Document{ID: id, Title: title, Text: text, Quality: quality}, nil
}

// decodePaper maps a {id, title, authors} row onto a Paper.
func decodePaper(row map[string]any) (*types.Paper, error) {
	id, err := stringValue(row, "id")
	if err != nil {
		return nil, err
	}
	title, err := stringValue(row, "title")
	if err != nil {
		return nil, err
	}
	authors, err := stringValue(row, "authors")
	if err != nil {
		return nil, err
	}
	return &types.Paper{ID: id, Title: title, Authors: authors}, nil
}

// decodeProject maps a {projectId, userId, title, keywords, citations} row
// onto a Project. The citations column is optional; deletes return projects
// without it.
func decodeProject(row map[string]any) (*types.Project, error) {
	projectID, err := stringValue(row, "projectId")
	if err != nil {
		return nil, err
	}
	userID, err := stringValue(row, "userId")
	if err != nil {
		return nil, err
	}
	title, err := stringValue(row, "title")
	if err != nil {
		return nil, err
	}
	keywords, err := stringSliceValue(row, "keywords")
	if err != nil {
		return nil, err
	}

	project := &types.Project{
		ProjectID: projectID,
		UserID:    userID,
		Title:     title,
		Keywords:  keywords,
		Citations: []types.Citation{},
	}

	value, ok := row["citations"]
	if !ok || value == nil {
		return project, nil
	}
	list, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: citations is %T, expected list", ErrShapeMismatch, value)
	}
	for _, item := range list {
		if item == nil {
			continue
		}
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: citation element is %T, expected map", ErrShapeMismatch, item)
		}
		paper, err := decodePaper(entry)
		if err != nil {
			return nil, err
		}
		score, err := floatValue(entry, "score")
		if err != nil {
			return nil, err
		}
		project.Citations = append(project.Citations, types.Citation{Paper: *paper, Score: score})
	}
	return project, nil
}
