// Package layout arranges a directed graph of sized nodes into
// non-overlapping positions using a layered layout: nodes are ranked by edge
// direction, ordered within ranks to reduce edge crossings, and spaced by
// configurable gaps. Cycles are tolerated; strongly connected components
// collapse into a single rank.
package layout

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

type Direction string

const (
	DirectionLeftRight Direction = "LR"
	DirectionTopBottom Direction = "TB"
)

type Config struct {
	// Direction of flow between ranks.
	Direction Direction
	// NodeSep is the gap between adjacent nodes within a rank.
	NodeSep float64
	// RankSep is the gap between adjacent ranks.
	RankSep float64
}

func DefaultConfig() Config {
	return Config{
		Direction: DirectionLeftRight,
		NodeSep:   50,
		RankSep:   120,
	}
}

// Point is the center coordinate of a placed node.
type Point struct {
	X float64
	Y float64
}

type node struct {
	id     string
	width  float64
	height float64
}

type edge struct {
	from int
	to   int
}

// Graph accumulates nodes and edges for a single layout pass. A Graph holds
// mutable state and is not safe for concurrent use; build a fresh one per
// invocation.
type Graph struct {
	cfg   Config
	nodes []node
	index map[string]int
	edges []edge
	dg    *simple.DirectedGraph
}

func New(cfg Config) *Graph {
	def := DefaultConfig()

	if cfg.Direction != DirectionLeftRight && cfg.Direction != DirectionTopBottom {
		cfg.Direction = def.Direction
	}

	if cfg.NodeSep <= 0 {
		cfg.NodeSep = def.NodeSep
	}

	if cfg.RankSep <= 0 {
		cfg.RankSep = def.RankSep
	}

	return &Graph{
		cfg:   cfg,
		index: map[string]int{},
		dg:    simple.NewDirectedGraph(),
	}
}

// AddNode registers a node with the dimensions it will be rendered at.
// Registering the same id twice keeps the first registration.
func (g *Graph) AddNode(id string, width, height float64) {
	if _, ok := g.index[id]; ok {
		return
	}

	g.index[id] = len(g.nodes)
	g.nodes = append(g.nodes, node{id: id, width: width, height: height})
	g.dg.AddNode(simple.Node(int64(len(g.nodes) - 1)))
}

// AddEdge registers a directed edge between two registered nodes. Edges
// referencing unknown nodes and self loops are dropped rather than failing
// the layout.
func (g *Graph) AddEdge(from, to string) {
	fi, ok := g.index[from]
	if !ok {
		return
	}

	ti, ok := g.index[to]
	if !ok {
		return
	}

	if fi == ti {
		return
	}

	g.edges = append(g.edges, edge{from: fi, to: ti})
	g.dg.SetEdge(g.dg.NewEdge(simple.Node(int64(fi)), simple.Node(int64(ti))))
}

// Layout computes a center coordinate for every registered node. The result
// is deterministic for a given registration order, and every node is present
// in the returned map: a node the algorithm cannot place stays at the origin.
func (g *Graph) Layout() map[string]Point {
	positions := make(map[string]Point, len(g.nodes))
	if len(g.nodes) == 0 {
		return positions
	}

	for _, n := range g.nodes {
		positions[n.id] = Point{}
	}

	ranks := g.rank()
	layers := g.order(ranks)
	g.assign(layers, positions)

	return positions
}

// rank assigns each node to a rank by taking the longest path to its
// strongly connected component in the condensation of the graph. Collapsing
// components first is what makes cyclic inputs safe.
func (g *Graph) rank() []int {
	comp := make([]int, len(g.nodes))

	sccs := topo.TarjanSCC(g.dg)
	for ci, scc := range sccs {
		for _, n := range scc {
			comp[int(n.ID())] = ci
		}
	}

	preds := make([]map[int]bool, len(sccs))
	for _, e := range g.edges {
		cf, ct := comp[e.from], comp[e.to]
		if cf == ct {
			continue
		}

		if preds[ct] == nil {
			preds[ct] = map[int]bool{}
		}

		preds[ct][cf] = true
	}

	depths := make([]int, len(sccs))
	for i := range depths {
		depths[i] = -1
	}

	var depth func(c int) int
	depth = func(c int) int {
		if depths[c] >= 0 {
			return depths[c]
		}

		d := 0
		for p := range preds[c] {
			if v := depth(p) + 1; v > d {
				d = v
			}
		}

		depths[c] = d

		return d
	}

	ranks := make([]int, len(g.nodes))
	for i := range g.nodes {
		ranks[i] = depth(comp[i])
	}

	return ranks
}

// order groups nodes into layers by rank, then runs alternating downward and
// upward barycenter sweeps to reduce edge crossings. The initial order within
// a layer is registration order, which keeps the result deterministic.
func (g *Graph) order(ranks []int) [][]int {
	maxRank := 0
	for _, r := range ranks {
		if r > maxRank {
			maxRank = r
		}
	}

	layers := make([][]int, maxRank+1)
	for i := range g.nodes {
		layers[ranks[i]] = append(layers[ranks[i]], i)
	}

	in := make([][]int, len(g.nodes))
	out := make([][]int, len(g.nodes))
	for _, e := range g.edges {
		out[e.from] = append(out[e.from], e.to)
		in[e.to] = append(in[e.to], e.from)
	}

	position := make([]int, len(g.nodes))
	updatePositions := func() {
		for _, layer := range layers {
			for p, n := range layer {
				position[n] = p
			}
		}
	}
	updatePositions()

	const sweeps = 4

	for s := 0; s < sweeps; s++ {
		neighbors := in
		if s%2 == 1 {
			neighbors = out
		}

		for i := range layers {
			layer := layers[i]
			if s%2 == 1 {
				layer = layers[len(layers)-1-i]
			}

			sortByBarycenter(layer, neighbors, position)
			updatePositions()
		}
	}

	return layers
}

// sortByBarycenter stably reorders a layer by the mean position of each
// node's neighbors. Nodes without neighbors keep their current position as
// their barycenter so they stay put.
func sortByBarycenter(layer []int, neighbors [][]int, position []int) {
	barycenter := make(map[int]float64, len(layer))

	for _, n := range layer {
		ns := neighbors[n]
		if len(ns) == 0 {
			barycenter[n] = float64(position[n])
			continue
		}

		sum := 0.0
		for _, m := range ns {
			sum += float64(position[m])
		}

		barycenter[n] = sum / float64(len(ns))
	}

	sort.SliceStable(layer, func(i, j int) bool {
		return barycenter[layer[i]] < barycenter[layer[j]]
	})
}

// assign spaces ranks along the flow axis and nodes along the cross axis.
// Every node in a rank is centered on the rank's thickness, the largest
// extent of any of its nodes along the flow axis.
func (g *Graph) assign(layers [][]int, positions map[string]Point) {
	horizontal := g.cfg.Direction == DirectionLeftRight

	offset := 0.0
	for _, layer := range layers {
		if len(layer) == 0 {
			continue
		}

		thickness := 0.0
		for _, i := range layer {
			span := g.nodes[i].height
			if horizontal {
				span = g.nodes[i].width
			}

			if span > thickness {
				thickness = span
			}
		}

		cross := 0.0
		for _, i := range layer {
			n := g.nodes[i]

			if horizontal {
				positions[n.id] = Point{X: offset + thickness/2, Y: cross + n.height/2}
				cross += n.height + g.cfg.NodeSep
			} else {
				positions[n.id] = Point{X: cross + n.width/2, Y: offset + thickness/2}
				cross += n.width + g.cfg.NodeSep
			}
		}

		offset += thickness + g.cfg.RankSep
	}
}
