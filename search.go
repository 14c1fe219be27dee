package rtree

import (
	"math"

	"github.com/cockroachdb/errors"
)

// Stop is a special sentinel error that can be used to stop a search operation
// without any error.
var Stop = errors.New("stop")

// Search looks for any items in the tree that overlap with the given region.
// The callback is called with each found item. If an error is returned from
// the callback then the search is terminated early. Any error returned from
// the callback is returned by Search, except for the case where the special
// Stop sentinel error is returned (in which case nil will be returned).
func (t *RTree[T]) Search(region Spatial, callback func(item T) error) error {
	r, err := regionBounds(region)
	if err != nil {
		return err
	}
	err = t.walk(t.rootIndex,
		func(child BBox) bool { return overlap(child, r) },
		func(item BBox) bool { return overlap(item, r) },
		callback,
	)
	if errors.Is(err, Stop) {
		return nil
	}
	return err
}

// ContainedBy returns the items whose boxes lie completely inside the region.
func (t *RTree[T]) ContainedBy(region Spatial) ([]T, error) {
	r, err := regionBounds(region)
	if err != nil {
		return nil, err
	}
	// A node may hold items inside the region even if its own box isn't, so
	// subtrees are pruned by overlap rather than containment.
	return t.collect(
		func(child BBox) bool { return overlap(child, r) },
		func(item BBox) bool { return r.Contains(item) },
	), nil
}

// Contain returns the items whose boxes completely contain the region.
func (t *RTree[T]) Contain(region Spatial) ([]T, error) {
	r, err := regionBounds(region)
	if err != nil {
		return nil, err
	}
	return t.collect(
		func(child BBox) bool { return child.Contains(r) },
		func(item BBox) bool { return item.Contains(r) },
	), nil
}

// OverlappedBy returns the items whose boxes overlap the region.
func (t *RTree[T]) OverlappedBy(region Spatial) ([]T, error) {
	return t.OverlappedByRatio(region, 0)
}

// OverlappedByRatio returns the items for which at least minRatio of their own
// area is covered by the region (see BBox.OverlapRatio). A minRatio of 0 is
// the same as OverlappedBy, and selects every item that overlaps the region
// at all.
func (t *RTree[T]) OverlappedByRatio(region Spatial, minRatio float64) ([]T, error) {
	r, err := regionBounds(region)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(minRatio) || minRatio < 0 || minRatio > 1 {
		return nil, errors.Wrapf(ErrInvalidRatio, "got %v", minRatio)
	}
	accept := func(item BBox) bool { return overlap(item, r) }
	if minRatio != 0 {
		accept = func(item BBox) bool { return item.OverlapRatio(r) >= minRatio }
	}
	return t.collect(func(child BBox) bool { return overlap(child, r) }, accept), nil
}

func (t *RTree[T]) collect(descend, accept func(BBox) bool) []T {
	var found []T
	_ = t.walk(t.rootIndex, descend, accept, func(item T) error {
		found = append(found, item)
		return nil
	})
	return found
}

// walk visits the subtree rooted at node n depth first. Intermediate entries
// are followed if descend accepts their box, and leaf items are passed to the
// callback if accept accepts their box.
func (t *RTree[T]) walk(n int, descend, accept func(BBox) bool, callback func(T) error) error {
	node := &t.nodes[n]
	for _, entry := range node.Entries {
		if node.IsLeaf {
			if !accept(entry.BBox) {
				continue
			}
			if err := callback(t.items[entry.Index]); err != nil {
				return err
			}
			continue
		}
		if !descend(entry.BBox) {
			continue
		}
		if err := t.walk(entry.Index, descend, accept, callback); err != nil {
			return err
		}
	}
	return nil
}

func regionBounds(region Spatial) (BBox, error) {
	r, ok := boundsOf(region)
	if !ok {
		return BBox{}, errors.WithStack(ErrInvalidRegion)
	}
	return r, nil
}
