package routes

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/rs/zerolog"

	"github.com/talkdata/erd-backend/pkg/service/core/handlers"
	"github.com/talkdata/erd-backend/pkg/service/core/transport"
)

type DiagramEndpoints struct {
	BuildDiagram            http.HandlerFunc
	GetCatalogDiagram       http.HandlerFunc
	BuildRelationships      http.HandlerFunc
	GetCatalogRelationships http.HandlerFunc
}

func NewDiagramEndpoints(log zerolog.Logger, h *handlers.DiagramHandler) *DiagramEndpoints {
	return &DiagramEndpoints{
		BuildDiagram:            transport.For(h.BuildDiagram).RequestFromJSON().Build(log),
		GetCatalogDiagram:       transport.For(h.GetCatalogDiagram).Build(log),
		BuildRelationships:      transport.For(h.BuildRelationships).RequestFromJSON().Build(log),
		GetCatalogRelationships: transport.For(h.GetCatalogRelationships).Build(log),
	}
}

func NewDiagramRoutes(endpoints *DiagramEndpoints) AddRoutesFn {
	return func(router chi.Router) {
		router.Route("/api/diagram", func(r chi.Router) {
			r.Post("/", endpoints.BuildDiagram)
			r.Get("/", endpoints.GetCatalogDiagram)
		})

		router.Route("/api/relationships", func(r chi.Router) {
			r.Post("/", endpoints.BuildRelationships)
			r.Get("/", endpoints.GetCatalogRelationships)
		})
	}
}
