package pda

import (
	"fmt"

	"github.com/npillmayer/pushdown"
)

// TreeNode is a node of a parse tree: a grammar symbol, its children in RHS
// order, and a leaf flag. Leaves carry the surface lexeme of the matched
// input token as their label; ε-leaves carry "ε". Children storage is
// per-node from construction.
type TreeNode struct {
	Sym      pushdown.Symbol
	Label    string
	Children []*TreeNode
	Leaf     bool
}

func newTreeNode(sym pushdown.Symbol) *TreeNode {
	return &TreeNode{Sym: sym}
}

// IsEpsilonLeaf returns true for the leaves attached under non-terminals
// deriving the empty string.
func (node *TreeNode) IsEpsilonLeaf() bool {
	return node.Leaf && node.Sym == pushdown.Epsilon
}

// Yield returns the leaf labels of the tree in left-to-right order,
// ignoring ε-leaves. For a tree built from an accepted input, the yield
// equals the input lexemes.
func (node *TreeNode) Yield() []string {
	var yield []string
	node.walkYield(&yield)
	return yield
}

func (node *TreeNode) walkYield(yield *[]string) {
	if node.Leaf {
		if !node.IsEpsilonLeaf() {
			*yield = append(*yield, node.Label)
		}
		return
	}
	for _, child := range node.Children {
		child.walkYield(yield)
	}
}

// ParseTree reconstructs the leftmost-derivation parse tree for an input
// the automaton accepts. It is a second pass: the run mirrors AcceptsInput,
// but alongside the symbol stack a parallel node stack is maintained — as a
// single stack of pairs, so the two cannot diverge.
//
// On an expand move, the top node receives fresh children, one per pushed
// symbol in RHS order; an ε-production attaches a single ε-leaf child. On a
// match move, the top node becomes a leaf labelled with the surface lexeme.
// The returned root is the start-symbol subtree.
//
// ParseTree is intended to be called after an accepting run; handing it a
// rejected input yields an error.
func (d *Automaton) ParseTree(tokens []pushdown.Token) (*TreeNode, error) {
	type pair struct {
		sym  pushdown.Symbol
		node *TreeNode
	}
	state := d.start
	root := newTreeNode(d.bottom)
	pairs := []pair{{sym: d.bottom, node: root}}
	i, n := 0, len(tokens)
	budget := StepBudget(n)
	for step := 1; len(pairs) > 0; step++ {
		if step > budget {
			return nil, fmt.Errorf("parse tree requested for input exceeding the step budget")
		}
		la := pushdown.EndMarker
		if i < n {
			la = pushdown.Terminal(tokens[i].Terminal())
		}
		top := pairs[len(pairs)-1]
		class, tv, _ := d.selectTransition(state, la, top.sym)
		if class == noTransition {
			return nil, fmt.Errorf("parse tree requested for rejected input (no transition at token %d)", i)
		}
		pairs = pairs[:len(pairs)-1]
		state = tv.Next
		if class == matchConsume {
			top.node.Leaf = true
			top.node.Label = tokens[i].Lexeme()
			i++
		} else {
			push := withoutEpsilon(tv.Push)
			if len(push) == 0 {
				if top.sym.IsNonTerm() { // an ε-production gets a single ε-leaf child
					eps := newTreeNode(pushdown.Epsilon)
					eps.Leaf = true
					eps.Label = pushdown.Epsilon.String()
					top.node.Children = []*TreeNode{eps}
				}
			} else {
				children := make([]*TreeNode, len(push))
				for k, sym := range push {
					children[k] = newTreeNode(sym)
				}
				top.node.Children = children
				for k := len(children) - 1; k >= 0; k-- {
					pairs = append(pairs, pair{sym: push[k], node: children[k]})
				}
			}
		}
		if i == n && d.accepting[state] && len(pairs) == 0 {
			break
		}
	}
	if i != n || !d.accepting[state] {
		return nil, fmt.Errorf("parse tree requested for rejected input")
	}
	if len(root.Children) == 0 {
		return root, nil
	}
	tracer().Infof("parse tree for %d tokens reconstructed", n)
	return root.Children[0], nil
}

func withoutEpsilon(push []pushdown.Symbol) []pushdown.Symbol {
	filtered := push[:0:0]
	for _, sym := range push {
		if sym == pushdown.Epsilon {
			continue
		}
		filtered = append(filtered, sym)
	}
	return filtered
}
