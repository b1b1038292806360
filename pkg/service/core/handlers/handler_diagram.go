package handlers

import (
	"context"
	"net/http"

	"github.com/talkdata/erd-backend/pkg/service"
)

type DiagramHandler struct {
	diagramService service.DiagramService
}

// BuildDiagram lays out the tables posted in the request body.
func (h *DiagramHandler) BuildDiagram(ctx context.Context, _ *http.Request, in service.BuildDiagramRequest) (*service.Diagram, error) {
	return h.diagramService.BuildDiagram(ctx, in.Tables)
}

// GetCatalogDiagram fetches the catalog's tables and lays them out.
func (h *DiagramHandler) GetCatalogDiagram(ctx context.Context, _ *http.Request, _ any) (*service.Diagram, error) {
	return h.diagramService.CatalogDiagram(ctx)
}

// BuildRelationships infers relationships for the posted tables without
// computing a layout.
func (h *DiagramHandler) BuildRelationships(ctx context.Context, _ *http.Request, in service.BuildDiagramRequest) (*service.RelationshipList, error) {
	return h.diagramService.InferRelationships(ctx, in.Tables)
}

func (h *DiagramHandler) GetCatalogRelationships(ctx context.Context, _ *http.Request, _ any) (*service.RelationshipList, error) {
	return h.diagramService.CatalogRelationships(ctx)
}

func NewDiagramHandler(service service.DiagramService) *DiagramHandler {
	return &DiagramHandler{diagramService: service}
}
