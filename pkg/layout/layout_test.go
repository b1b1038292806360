package layout_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/talkdata/erd-backend/pkg/layout"
)

func TestLayoutEmptyGraph(t *testing.T) {
	g := layout.New(layout.DefaultConfig())

	got := g.Layout()

	assert.Empty(t, got)
}

func TestLayoutSingleNode(t *testing.T) {
	g := layout.New(layout.DefaultConfig())
	g.AddNode("only", 300, 144)

	got := g.Layout()

	expect := map[string]layout.Point{
		"only": {X: 150, Y: 72},
	}

	if diff := cmp.Diff(expect, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLayoutLeftRight(t *testing.T) {
	g := layout.New(layout.Config{Direction: layout.DirectionLeftRight, NodeSep: 50, RankSep: 120})

	g.AddNode("clients", 300, 144)
	g.AddNode("orders", 300, 200)
	g.AddNode("products", 300, 116)

	g.AddEdge("orders", "clients")
	g.AddEdge("orders", "products")

	got := g.Layout()

	// orders has no incoming edges so it takes the first rank; clients and
	// products land on the second rank in registration order.
	expect := map[string]layout.Point{
		"orders":   {X: 150, Y: 100},
		"clients":  {X: 570, Y: 72},
		"products": {X: 570, Y: 252},
	}

	if diff := cmp.Diff(expect, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLayoutTopBottom(t *testing.T) {
	g := layout.New(layout.Config{Direction: layout.DirectionTopBottom, NodeSep: 50, RankSep: 120})

	g.AddNode("clients", 300, 144)
	g.AddNode("orders", 300, 200)
	g.AddNode("products", 300, 116)

	g.AddEdge("orders", "clients")
	g.AddEdge("orders", "products")

	got := g.Layout()

	expect := map[string]layout.Point{
		"orders":   {X: 150, Y: 100},
		"clients":  {X: 150, Y: 392},
		"products": {X: 500, Y: 392},
	}

	if diff := cmp.Diff(expect, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLayoutChain(t *testing.T) {
	g := layout.New(layout.Config{Direction: layout.DirectionLeftRight, NodeSep: 50, RankSep: 120})

	g.AddNode("a", 100, 100)
	g.AddNode("b", 100, 100)
	g.AddNode("c", 100, 100)

	g.AddEdge("a", "b")
	g.AddEdge("b", "c")

	got := g.Layout()

	expect := map[string]layout.Point{
		"a": {X: 50, Y: 50},
		"b": {X: 270, Y: 50},
		"c": {X: 490, Y: 50},
	}

	if diff := cmp.Diff(expect, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLayoutToleratesCycles(t *testing.T) {
	g := layout.New(layout.DefaultConfig())

	g.AddNode("a", 100, 100)
	g.AddNode("b", 100, 100)
	g.AddNode("c", 100, 100)

	g.AddEdge("a", "b")
	g.AddEdge("b", "a")
	g.AddEdge("b", "c")

	got := g.Layout()

	assert.Len(t, got, 3)

	// a and b form a cycle and collapse into the same rank; c follows.
	assert.Equal(t, got["a"].X, got["b"].X)
	assert.Greater(t, got["c"].X, got["a"].X)
	assert.NotEqual(t, got["a"], got["b"])
}

func TestLayoutDropsInvalidEdges(t *testing.T) {
	g := layout.New(layout.DefaultConfig())

	g.AddNode("a", 100, 100)
	g.AddEdge("a", "a")
	g.AddEdge("a", "missing")
	g.AddEdge("missing", "a")

	got := g.Layout()

	expect := map[string]layout.Point{
		"a": {X: 50, Y: 50},
	}

	if diff := cmp.Diff(expect, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLayoutIsDeterministic(t *testing.T) {
	build := func() map[string]layout.Point {
		g := layout.New(layout.DefaultConfig())

		g.AddNode("clients", 300, 144)
		g.AddNode("orders", 300, 200)
		g.AddNode("products", 300, 116)
		g.AddNode("invoices", 300, 88)

		g.AddEdge("orders", "clients")
		g.AddEdge("orders", "products")
		g.AddEdge("invoices", "orders")
		g.AddEdge("invoices", "clients")

		return g.Layout()
	}

	first := build()
	for i := 0; i < 20; i++ {
		if diff := cmp.Diff(first, build()); diff != "" {
			t.Fatalf("layout changed between runs (-first +rerun):\n%s", diff)
		}
	}
}

func TestLayoutDuplicateNodeKeepsFirstDimensions(t *testing.T) {
	g := layout.New(layout.DefaultConfig())

	g.AddNode("a", 100, 100)
	g.AddNode("a", 900, 900)

	got := g.Layout()

	assert.Equal(t, layout.Point{X: 50, Y: 50}, got["a"])
}
