package core

import (
	"context"
	"fmt"
	"time"

	"github.com/talkdata/erd-backend/pkg/errs"
	"github.com/talkdata/erd-backend/pkg/layout"
	"github.com/talkdata/erd-backend/pkg/relation"
	"github.com/talkdata/erd-backend/pkg/service"
)

// Node dimensions used by the schema node renderer. Width is fixed; height
// grows with the column count so the layout can keep nodes from overlapping.
const (
	nodeWidth        = 300.0
	nodeBaseHeight   = 60.0
	nodeColumnHeight = 28.0
)

var _ service.DiagramService = &diagramService{}

type diagramService struct {
	catalogAPI service.CatalogAPI
	layoutCfg  layout.Config
	metrics    *Metrics
}

func (s *diagramService) BuildDiagram(_ context.Context, tables []service.Table) (*service.Diagram, error) {
	start := time.Now()

	rels := relation.Infer(relationTables(tables))

	// Each build gets its own graph; layout graphs are single use.
	g := layout.New(s.layoutCfg)

	for _, t := range tables {
		g.AddNode(nodeID(t.Name), nodeWidth, nodeHeight(t))
	}

	for _, rel := range rels {
		g.AddEdge(nodeID(rel.Source), nodeID(rel.Target))
	}

	centers := g.Layout()

	nodes := make([]service.DiagramNode, 0, len(tables))
	for _, t := range tables {
		id := nodeID(t.Name)
		height := nodeHeight(t)

		// Nodes the layout could not place stay at the origin instead of
		// failing the whole diagram.
		position := service.Position{}
		if center, ok := centers[id]; ok {
			position = service.Position{
				X: center.X - nodeWidth/2,
				Y: center.Y - height/2,
			}
		}

		nodes = append(nodes, service.DiagramNode{
			ID:       id,
			Type:     service.NodeType,
			Position: position,
			Data: service.DiagramNodeData{
				Label:       t.Name,
				RowCount:    t.RowCount,
				Description: t.Description,
				IsEnabled:   t.Enabled(),
				Columns:     t.Columns,
			},
		})
	}

	edges := make([]service.DiagramEdge, 0, len(rels))
	edgeIDs := map[string]int{}
	for _, rel := range rels {
		edges = append(edges, service.DiagramEdge{
			ID:        edgeID(edgeIDs, nodeID(rel.Source), nodeID(rel.Target), rel.Column),
			Source:    nodeID(rel.Source),
			Target:    nodeID(rel.Target),
			Label:     rel.Column,
			Type:      service.EdgeType,
			ClassName: service.EdgeClassName,
		})
	}

	if s.metrics != nil {
		s.metrics.DiagramsBuilt.Inc()
		s.metrics.RelationshipsInferred.Add(float64(len(rels)))
		s.metrics.BuildDuration.Observe(time.Since(start).Seconds())
	}

	return &service.Diagram{Nodes: nodes, Edges: edges}, nil
}

func (s *diagramService) CatalogDiagram(ctx context.Context) (*service.Diagram, error) {
	const op errs.Op = "diagramService.CatalogDiagram"

	tables, err := s.catalogAPI.GetTables(ctx)
	if err != nil {
		return nil, errs.E(errs.IO, op, err)
	}

	return s.BuildDiagram(ctx, tables)
}

func (s *diagramService) InferRelationships(_ context.Context, tables []service.Table) (*service.RelationshipList, error) {
	rels := relation.Infer(relationTables(tables))

	list := &service.RelationshipList{
		Relationships: make([]service.TableRelationship, 0, len(rels)),
	}

	for _, rel := range rels {
		list.Relationships = append(list.Relationships, service.TableRelationship{
			SourceTable: rel.Source,
			TargetTable: rel.Target,
			Column:      rel.Column,
		})
	}

	return list, nil
}

func (s *diagramService) CatalogRelationships(ctx context.Context) (*service.RelationshipList, error) {
	const op errs.Op = "diagramService.CatalogRelationships"

	tables, err := s.catalogAPI.GetTables(ctx)
	if err != nil {
		return nil, errs.E(errs.IO, op, err)
	}

	return s.InferRelationships(ctx, tables)
}

func nodeID(table string) string {
	return fmt.Sprintf("table-%s", table)
}

func nodeHeight(t service.Table) float64 {
	return nodeBaseHeight + nodeColumnHeight*float64(len(t.Columns))
}

// edgeID derives a unique edge id from its endpoints and label, appending an
// ordinal suffix when a build produces the same triple twice.
func edgeID(counts map[string]int, source, target, label string) string {
	id := fmt.Sprintf("edge-%s-%s-%s", source, target, label)

	counts[id]++
	if n := counts[id]; n > 1 {
		id = fmt.Sprintf("%s-%d", id, n)
	}

	return id
}

func relationTables(tables []service.Table) []relation.Table {
	out := make([]relation.Table, 0, len(tables))
	for _, t := range tables {
		out = append(out, relation.Table{
			Name:    t.Name,
			Columns: t.ColumnNames(),
		})
	}

	return out
}

func NewDiagramService(catalogAPI service.CatalogAPI, layoutCfg layout.Config, metrics *Metrics) *diagramService {
	return &diagramService{
		catalogAPI: catalogAPI,
		layoutCfg:  layoutCfg,
		metrics:    metrics,
	}
}
