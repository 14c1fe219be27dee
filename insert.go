package rtree

import "github.com/sirupsen/logrus"

// Insert adds a new item to the RTree. Nil items and items whose Bounds
// reports no box are silently ignored.
func (t *RTree[T]) Insert(item T) {
	bb, ok := boundsOf(item)
	if !ok {
		return
	}
	t.items = append(t.items, item)
	t.insertEntry(Entry{BBox: bb, Index: len(t.items) - 1})
}

// InsertAll inserts each of the items in turn, with the same rules as Insert.
func (t *RTree[T]) InsertAll(items []T) {
	for _, item := range items {
		t.Insert(item)
	}
}

// insertEntry places an entry for an already registered item into the tree.
func (t *RTree[T]) insertEntry(e Entry) {
	leaf := t.chooseLeafNode(e.BBox)
	split := t.addToNode(leaf, e)
	t.adjustTree(leaf, split)
}

// addToNode adds the entry to node n if it has room. Otherwise n is split, and
// the index of the new sibling is returned. The return value is -1 if no split
// occurred.
func (t *RTree[T]) addToNode(n int, e Entry) int {
	if len(t.nodes[n].Entries) < t.policy.maxChildren {
		t.addEntry(n, e)
		return -1
	}
	return t.splitNode(n, e)
}

// adjustTree ascends from node n to the root, refreshing bounding boxes and
// propagating the split sibling nn (or -1) upwards. If the root splits, the
// tree grows by a level.
func (t *RTree[T]) adjustTree(n, nn int) {
	for {
		t.nodes[n].box = t.calculateBound(n)

		if t.isRoot(n) {
			if nn != -1 {
				t.joinRoots(n, nn)
			}
			return
		}

		parent := t.nodes[n].Parent
		for i := range t.nodes[parent].Entries {
			e := &t.nodes[parent].Entries[i]
			if e.Index == n {
				e.BBox = t.nodes[n].box
				break
			}
		}

		// AT4
		pp := -1
		if nn != -1 {
			pp = t.addToNode(parent, Entry{BBox: t.nodes[nn].box, Index: nn})
		}

		n, nn = parent, pp
	}
}

func (t *RTree[T]) joinRoots(r1, r2 int) {
	root := t.newNode(false)
	t.addEntry(root, Entry{BBox: t.nodes[r1].box, Index: r1})
	t.addEntry(root, Entry{BBox: t.nodes[r2].box, Index: r2})
	t.rootIndex = root
	t.log.WithFields(logrus.Fields{
		"root":   root,
		"height": t.Height(),
	}).Debug("rtree: grew new root")
}

// chooseLeafNode descends from the root, at each level following the entry
// whose box needs the least enlargement to include bb.
func (t *RTree[T]) chooseLeafNode(bb BBox) int {
	node := t.rootIndex

	for {
		if t.nodes[node].IsLeaf {
			return node
		}
		entries := t.nodes[node].Entries
		bestDelta := enlargement(entries[0].BBox, bb)
		bestEntry := 0
		for i := 1; i < len(entries); i++ {
			delta := enlargement(entries[i].BBox, bb)
			if delta < bestDelta {
				bestDelta = delta
				bestEntry = i
			} else if delta == bestDelta && area(entries[i].BBox) < area(entries[bestEntry].BBox) {
				// Area is used as a tie breaking if the enlargements are the same.
				bestEntry = i
			}
		}
		node = entries[bestEntry].Index
	}
}
