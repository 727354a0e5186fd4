package tree

// Node is a node of a perfect binary tree. Node with both children
// absent is a leaf. Every node owns its children exclusively,
// trees are never shared or modified after Build returns.
type Node struct {
	Left  *Node
	Right *Node
}

// Build allocates perfect binary tree of specified depth.
// Depth 0 (or less) is a single leaf.
func Build(depth int) *Node {
	if depth <= 0 {
		return &Node{}
	}
	depth--

	return &Node{
		Left:  Build(depth),
		Right: Build(depth),
	}
}

// Check returns number of nodes in the tree.
func (n *Node) Check() int {
	if n == nil {
		return 0
	}
	if n.Left == nil && n.Right == nil {
		return 1
	}

	return 1 + n.Left.Check() + n.Right.Check()
}

// MakeCheck builds tree of specified depth and returns its checksum.
// Tree is released right after.
func MakeCheck(depth int) int {
	return Build(depth).Check()
}

// Checksum is the expected Check() result for tree of specified depth.
func Checksum(depth int) int {
	if depth < 0 {
		depth = 0
	}
	return 1<<(depth+1) - 1
}
