package scene

import (
	"strings"

	"blendshape-presets/core/reconcile"
)

// PathSeparator joins object names into hierarchy paths.
const PathSeparator = "/"

// Node is an in-memory scene-graph object.
type Node struct {
	name     string
	parent   *Node
	children []*Node
	mesh     reconcile.Mesh
}

// NewNode creates a detached node without a mesh.
func NewNode(name string) *Node {
	return &Node{name: name}
}

// SetMesh binds a mesh to the node and returns the node.
func (n *Node) SetMesh(mesh reconcile.Mesh) *Node {
	n.mesh = mesh
	return n
}

// AddChild attaches child under n and returns the child.
func (n *Node) AddChild(child *Node) *Node {
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	return child
}

func (n *Node) removeChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// Name returns the node's name.
func (n *Node) Name() string {
	return n.name
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the direct children in insertion order.
func (n *Node) Children() []*Node {
	return n.children
}

// Path returns the names from the scene root down to n joined by "/".
func (n *Node) Path() string {
	var parts []string
	for cur := n; cur != nil; cur = cur.parent {
		parts = append(parts, cur.name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, PathSeparator)
}

// Mesh returns the bound mesh.
func (n *Node) Mesh() (reconcile.Mesh, bool) {
	return n.mesh, n.mesh != nil
}

// Descendants returns every node below n, depth-first in child order.
func (n *Node) Descendants() []reconcile.Object {
	var out []reconcile.Object
	n.visit(func(d *Node) {
		if d != n {
			out = append(out, d)
		}
	})
	return out
}

func (n *Node) visit(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.visit(fn)
	}
}

// Find returns the first node in depth-first order, starting at roots, whose
// name equals query or, when query contains a "/", whose path equals query.
func Find(roots []*Node, query string) *Node {
	byPath := strings.Contains(query, PathSeparator)
	var found *Node
	for _, root := range roots {
		root.visit(func(d *Node) {
			if found != nil {
				return
			}
			if (byPath && d.Path() == query) || (!byPath && d.name == query) {
				found = d
			}
		})
		if found != nil {
			return found
		}
	}
	return nil
}

var _ reconcile.Object = (*Node)(nil)
var _ reconcile.Mesh = (*MorphMesh)(nil)
