package rtree

import (
	"sort"

	"github.com/sirupsen/logrus"
)

// Load inserts multiple items at once. The items are registered in the given
// order (so Items reports them in that order), but are placed into the tree
// sorted by the centre of their boxes along the longer axis of the batch. This
// tends to put neighbouring items into the same leaves. Nil items and items
// without a box are skipped, as with Insert.
func (t *RTree[T]) Load(items []T) {
	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		bb, ok := boundsOf(item)
		if !ok {
			continue
		}
		t.items = append(t.items, item)
		entries = append(entries, Entry{BBox: bb, Index: len(t.items) - 1})
	}
	if len(entries) == 0 {
		return
	}

	bbox := entries[0].BBox
	for _, e := range entries[1:] {
		bbox = combine(bbox, e.BBox)
	}

	var sortBy func(i, j int) bool
	if bbox.MaxX-bbox.MinX > bbox.MaxY-bbox.MinY {
		sortBy = func(i, j int) bool {
			bi := entries[i].BBox
			bj := entries[j].BBox
			return bi.MinX+bi.MaxX < bj.MinX+bj.MaxX
		}
	} else {
		sortBy = func(i, j int) bool {
			bi := entries[i].BBox
			bj := entries[j].BBox
			return bi.MinY+bi.MaxY < bj.MinY+bj.MaxY
		}
	}
	sort.SliceStable(entries, sortBy)

	for _, e := range entries {
		t.insertEntry(e)
	}
	t.log.WithFields(logrus.Fields{
		"loaded": len(entries),
		"height": t.Height(),
	}).Debug("rtree: bulk load")
}
