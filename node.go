package rtree

// newNode appends an empty node to the arena and returns its index. The node
// has no parent until it is added under another node.
func (t *RTree[T]) newNode(isLeaf bool) int {
	t.nodes = append(t.nodes, Node{IsLeaf: isLeaf, Parent: -1})
	return len(t.nodes) - 1
}

// addEntry appends an entry to node n and extends its bounding box to cover
// the entry. If n is an intermediate node, the child becomes parented by n.
func (t *RTree[T]) addEntry(n int, e Entry) {
	node := &t.nodes[n]
	if len(node.Entries) == 0 {
		node.box = e.BBox
	} else {
		node.box = combine(node.box, e.BBox)
	}
	node.Entries = append(node.Entries, e)
	if !node.IsLeaf {
		t.nodes[e.Index].Parent = n
	}
}

// removeEntry removes the i'th entry of node n. The bounding box of the node
// is left as is, so callers must recalculate it once they are done.
func (t *RTree[T]) removeEntry(n, i int) {
	es := t.nodes[n].Entries
	t.nodes[n].Entries = append(es[:i:i], es[i+1:]...)
}

// setEntries replaces the entries of node n, rebuilding its bounding box from
// scratch.
func (t *RTree[T]) setEntries(n int, entries []Entry) {
	t.clearNode(n)
	for _, e := range entries {
		t.addEntry(n, e)
	}
}

func (t *RTree[T]) clearNode(n int) {
	t.nodes[n].Entries = nil
}

func (t *RTree[T]) isRoot(n int) bool {
	return t.nodes[n].Parent == -1
}

// calculateBound calculates the smallest bounding box that fits a node.
func (t *RTree[T]) calculateBound(n int) BBox {
	bb := t.nodes[n].Entries[0].BBox
	for _, entry := range t.nodes[n].Entries[1:] {
		bb = combine(bb, entry.BBox)
	}
	return bb
}
