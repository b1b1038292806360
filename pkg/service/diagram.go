package service

// Render hints consumed by the diagram component. NodeType targets the schema
// node renderer; edges use a smooth orthogonal curve and a shared CSS class.
const (
	NodeType      = "schemaNode"
	EdgeType      = "smoothstep"
	EdgeClassName = "catalog-edge"
)

// Position is the top-left corner of a rendered node.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type DiagramNodeData struct {
	Label       string   `json:"label"`
	RowCount    int64    `json:"rowCount"`
	Description string   `json:"description"`
	IsEnabled   bool     `json:"isEnabled"`
	Columns     []Column `json:"columns"`
}

type DiagramNode struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Position Position        `json:"position"`
	Data     DiagramNodeData `json:"data"`
}

type DiagramEdge struct {
	ID        string `json:"id"`
	Source    string `json:"source"`
	Target    string `json:"target"`
	Label     string `json:"label"`
	Type      string `json:"type"`
	ClassName string `json:"className"`
}

// Diagram is the render-ready projection of a table set: one node per table
// and one edge per inferred relationship, all freshly positioned.
type Diagram struct {
	Nodes []DiagramNode `json:"nodes"`
	Edges []DiagramEdge `json:"edges"`
}

type TableRelationship struct {
	SourceTable string `json:"source_table"`
	TargetTable string `json:"target_table"`
	Column      string `json:"column"`
}

type RelationshipList struct {
	Relationships []TableRelationship `json:"relationships"`
}

// BuildDiagramRequest is the body of diagram and relationship build requests.
type BuildDiagramRequest struct {
	Tables []Table `json:"tables"`
}
