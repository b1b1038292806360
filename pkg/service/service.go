package service

import (
	"context"
)

// CatalogAPI fetches table metadata from the external catalog backend.
type CatalogAPI interface {
	GetTables(ctx context.Context) ([]Table, error)
}

// DiagramService turns catalog tables into a renderable entity-relationship
// diagram, or just the inferred relationships when no coordinates are needed.
type DiagramService interface {
	BuildDiagram(ctx context.Context, tables []Table) (*Diagram, error)
	CatalogDiagram(ctx context.Context) (*Diagram, error)
	InferRelationships(ctx context.Context, tables []Table) (*RelationshipList, error)
	CatalogRelationships(ctx context.Context) (*RelationshipList, error)
}
