package rtree

import "github.com/cockroachdb/errors"

// Check verifies the structural invariants of the tree and returns an error
// describing the first violation found. It is intended for tests and
// debugging, and walks the whole tree.
//
// The following are checked:
//   - every node's cached box is the union of its entry boxes, and each
//     intermediate entry carries the box of the child it points to;
//   - parent links agree with the entries pointing at each node;
//   - all leaves are at the same depth;
//   - every non-root node has between the minimum and maximum number of
//     entries, and the root has no more than the maximum;
//   - every node in the arena is reachable exactly once;
//   - each registered item appears in exactly one leaf, with its current box.
func (t *RTree[T]) Check() error {
	if !t.isRoot(t.rootIndex) {
		return errors.AssertionFailedf("root %d has parent %d", t.rootIndex, t.nodes[t.rootIndex].Parent)
	}

	visited := make(map[int]bool, len(t.nodes))
	seen := make(map[int]bool, len(t.items))
	leafDepth := -1

	var recurse func(n, depth int) error
	recurse = func(n, depth int) error {
		if visited[n] {
			return errors.AssertionFailedf("node %d reached more than once", n)
		}
		visited[n] = true
		node := &t.nodes[n]

		count := len(node.Entries)
		if count > t.policy.maxChildren {
			return errors.AssertionFailedf("node %d has %d entries, more than %d", n, count, t.policy.maxChildren)
		}
		if n != t.rootIndex && count < t.policy.minChildren {
			return errors.AssertionFailedf("node %d has %d entries, fewer than %d", n, count, t.policy.minChildren)
		}
		if count == 0 {
			if n != t.rootIndex || !node.IsLeaf {
				return errors.AssertionFailedf("node %d is empty", n)
			}
			leafDepth = depth
			return nil
		}
		if bb := t.calculateBound(n); bb != node.box {
			return errors.AssertionFailedf("node %d has box %v, but its entries cover %v", n, node.box, bb)
		}

		if node.IsLeaf {
			if leafDepth == -1 {
				leafDepth = depth
			} else if leafDepth != depth {
				return errors.AssertionFailedf("leaf %d at depth %d, expected depth %d", n, depth, leafDepth)
			}
			for _, e := range node.Entries {
				if e.Index < 0 || e.Index >= len(t.items) {
					return errors.AssertionFailedf("leaf %d refers to unknown item %d", n, e.Index)
				}
				if seen[e.Index] {
					return errors.AssertionFailedf("item %d is stored more than once", e.Index)
				}
				seen[e.Index] = true
				if bb, _ := boundsOf(t.items[e.Index]); bb != e.BBox {
					return errors.AssertionFailedf("item %d has box %v, but is indexed under %v", e.Index, bb, e.BBox)
				}
			}
			return nil
		}

		for _, e := range node.Entries {
			if e.Index < 0 || e.Index >= len(t.nodes) {
				return errors.AssertionFailedf("node %d refers to unknown node %d", n, e.Index)
			}
			child := &t.nodes[e.Index]
			if child.Parent != n {
				return errors.AssertionFailedf("node %d has parent %d, expected %d", e.Index, child.Parent, n)
			}
			if err := recurse(e.Index, depth+1); err != nil {
				return err
			}
			if e.BBox != child.box {
				return errors.AssertionFailedf("node %d records box %v for child %d, which has box %v", n, e.BBox, e.Index, child.box)
			}
		}
		return nil
	}
	if err := recurse(t.rootIndex, 0); err != nil {
		return err
	}

	if len(visited) != len(t.nodes) {
		return errors.AssertionFailedf("%d of %d nodes are reachable from the root", len(visited), len(t.nodes))
	}
	if len(seen) != len(t.items) {
		return errors.AssertionFailedf("%d of %d items are stored in leaves", len(seen), len(t.items))
	}
	return nil
}
