package dag

import (
	"io"

	"github.com/emicklei/dot"
)

// Style controls the colours of a rendered graph.
type Style struct {
	NodeColor string
	EdgeColor string
}

// DefaultStyle matches the palette used for run graphs so far.
var DefaultStyle = Style{NodeColor: "#FF3621", EdgeColor: "#00A972"}

// Render writes the graph in Graphviz DOT format. Tables without a script
// are drawn dashed.
func (g *Graph) Render(w io.Writer, style Style) error {
	if style.NodeColor == "" {
		style.NodeColor = DefaultStyle.NodeColor
	}
	if style.EdgeColor == "" {
		style.EdgeColor = DefaultStyle.EdgeColor
	}

	out := dot.NewGraph(dot.Directed)
	out.Attr("rankdir", "LR")

	nodes := make(map[string]dot.Node)
	for _, id := range g.Nodes() {
		n := out.Node(id).
			Attr("shape", "box").
			Attr("style", "filled,rounded").
			Attr("fillcolor", style.NodeColor).
			Attr("fontcolor", "white")
		if !g.HasScript(id) {
			n.Attr("style", "filled,rounded,dashed")
		}
		nodes[id] = n
	}
	for _, e := range g.Edges() {
		out.Edge(nodes[e.From], nodes[e.To]).Attr("color", style.EdgeColor)
	}

	_, err := io.WriteString(w, out.String())
	return err
}
