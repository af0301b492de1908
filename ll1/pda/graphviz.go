package pda

import (
	"fmt"
	"io"
	"os"
)

// TreeAsGraphViz exports a parse tree to the Graphviz Dot format. Leaves
// are drawn as filled boxes, inner nodes as filled ellipses.
func TreeAsGraphViz(root *TreeNode, w io.Writer) {
	io.WriteString(w, `digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [style=filled, fontname=Helvetica, fontsize=14];
edge [fontname=Helvetica, fontsize=10];

`)
	serial := 0
	writeTreeNode(root, -1, &serial, w)
	io.WriteString(w, "}\n")
}

func writeTreeNode(node *TreeNode, parent int, serial *int, w io.Writer) {
	id := *serial
	*serial++
	if node.Leaf {
		fmt.Fprintf(w, "n%03d [shape=box, fillcolor=lightgreen, label=\"%s\"]\n", id, node.Label)
	} else {
		fmt.Fprintf(w, "n%03d [shape=ellipse, fillcolor=yellow, label=\"%s\"]\n", id, node.Sym)
	}
	if parent >= 0 {
		fmt.Fprintf(w, "n%03d -> n%03d\n", parent, id)
	}
	for _, child := range node.Children {
		writeTreeNode(child, id, serial, w)
	}
}

// TreeToGraphVizFile exports a parse tree to a Dot file, given a filename.
func TreeToGraphVizFile(root *TreeNode, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		tracer().Errorf("file open error: %v", err)
		return err
	}
	defer f.Close()
	TreeAsGraphViz(root, f)
	return nil
}

// AsGraphViz exports the automaton's state graph to the Graphviz Dot
// format, transitions as edge labels.
func (d *Automaton) AsGraphViz(w io.Writer) {
	io.WriteString(w, `digraph {
graph [rankdir=LR, splines=true, fontname=Helvetica, fontsize=10];
node [shape=circle, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range d.states {
		shape := "circle"
		if d.accepting[s] {
			shape = "doublecircle"
		}
		fmt.Fprintf(w, "%s [shape=%s]\n", s, shape)
	}
	d.EachTransition(func(key TransKey, value TransValue) {
		fmt.Fprintf(w, "%s -> %s [label=\"%s, %s / %s\"]\n",
			key.State, value.Next, key.Input, key.Top, pushString(value.Push))
	})
	io.WriteString(w, "}\n")
}
