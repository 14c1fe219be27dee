package rtree

import "github.com/sirupsen/logrus"

// group is one half of a node that is being split.
type group struct {
	entries []Entry
	box     BBox
}

func newGroup(seed Entry) *group {
	return &group{entries: []Entry{seed}, box: seed.BBox}
}

func (g *group) add(e Entry) {
	g.entries = append(g.entries, e)
	g.box = combine(g.box, e.BBox)
}

// splitNode splits the full node n, which would overflow by adding the entry
// extra, into two nodes using Guttman's linear split. The first group replaces
// the entries of n, and the second group is put into a newly created node.
// The return value is the index of the new node.
func (t *RTree[T]) splitNode(n int, extra Entry) int {
	// LS1
	i, j := t.pickSeeds(n)
	seedA, seedB := t.nodes[n].Entries[i], t.nodes[n].Entries[j]
	if i < j {
		i, j = j, i
	}
	t.removeEntry(n, i)
	t.removeEntry(n, j)
	a, b := newGroup(seedA), newGroup(seedB)

	// The entry causing the overflow is distributed last, but it still counts
	// towards what is left for a group to reach the minimum.
	rest := make([]Entry, 0, len(t.nodes[n].Entries)+1)
	rest = append(rest, t.nodes[n].Entries...)
	rest = append(rest, extra)

	// LS2
	for k, e := range rest {
		remaining := len(rest) - k
		if len(a.entries)+remaining <= t.policy.minChildren {
			for _, r := range rest[k:] {
				a.add(r)
			}
			break
		}
		if len(b.entries)+remaining <= t.policy.minChildren {
			for _, r := range rest[k:] {
				b.add(r)
			}
			break
		}
		// LS3
		assignToGroup(a, b, e)
	}

	isLeaf := t.nodes[n].IsLeaf
	t.setEntries(n, a.entries)
	sibling := t.newNode(isLeaf)
	t.setEntries(sibling, b.entries)

	t.log.WithFields(logrus.Fields{
		"node":    n,
		"sibling": sibling,
		"leaf":    isLeaf,
		"sizes":   []int{len(a.entries), len(b.entries)},
	}).Debug("rtree: split node")
	return sibling
}

// pickSeeds selects the two entries of node n that become the first members
// of each group. Along each axis it finds the entry with the highest low side
// and the entry with the lowest high side, normalizes their separation by the
// extent of the node along that axis, and picks the pair from the axis with
// the greatest normalized separation. The two returned indexes always differ.
func (t *RTree[T]) pickSeeds(n int) (int, int) {
	entries := t.nodes[n].Entries

	// LPS1
	var hlsX, lhsX, hlsY, lhsY int
	for i := 1; i < len(entries); i++ {
		bb := entries[i].BBox
		if bb.MinX > entries[hlsX].BBox.MinX {
			hlsX = i
		}
		if bb.MaxX < entries[lhsX].BBox.MaxX {
			lhsX = i
		}
		if bb.MinY > entries[hlsY].BBox.MinY {
			hlsY = i
		}
		if bb.MaxY < entries[lhsY].BBox.MaxY {
			lhsY = i
		}
	}

	// LPS2
	bound := t.calculateBound(n)
	sepX := normalizedSeparation(entries[hlsX].BBox.MinX-entries[lhsX].BBox.MaxX, bound.Width())
	sepY := normalizedSeparation(entries[hlsY].BBox.MinY-entries[lhsY].BBox.MaxY, bound.Height())

	// LPS3
	if sepX > sepY {
		return distinctSeeds(lhsX, hlsX)
	}
	return distinctSeeds(lhsY, hlsY)
}

func normalizedSeparation(separation, extent float64) float64 {
	if extent == 0 {
		return 0
	}
	return separation / extent
}

// distinctSeeds replaces the second seed when one entry is the extreme on both
// sides of an axis.
func distinctSeeds(i, j int) (int, int) {
	if i != j {
		return i, j
	}
	if i == 0 {
		return i, 1
	}
	return i, 0
}

// assignToGroup adds the entry to the group whose box has to be enlarged
// least, then the group whose enlarged box has the smaller area, then the group
// with fewer entries.
func assignToGroup(a, b *group, e Entry) {
	enlargementA := enlargement(a.box, e.BBox)
	enlargementB := enlargement(b.box, e.BBox)
	switch {
	case enlargementA < enlargementB:
		a.add(e)
	case enlargementB < enlargementA:
		b.add(e)
	default:
		areaA := area(combine(a.box, e.BBox))
		areaB := area(combine(b.box, e.BBox))
		switch {
		case areaA < areaB:
			a.add(e)
		case areaB < areaA:
			b.add(e)
		case len(a.entries) < len(b.entries):
			a.add(e)
		default:
			b.add(e)
		}
	}
}
