// Package rtree provides an in-memory R-Tree over axis-aligned rectangles,
// following "R-Trees: A Dynamic Index Structure for Spatial Searching" by
// Antonin Guttman (1984).
//
// The tree supports incremental insertion and four query families: items
// contained by a region, items containing a region, items overlapping a
// region, and items overlapping a region by at least a given ratio.
//
// An RTree is not safe for concurrent use. Callers must serialize inserts and
// clears against each other and against queries.
package rtree

import (
	"io"
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultMinEntries is the minimum number of entries per node used by
	// NewDefault.
	DefaultMinEntries = 2
	// DefaultMaxEntries is the maximum number of entries per node used by
	// NewDefault.
	DefaultMaxEntries = 50
)

var (
	// ErrInvalidArgument is returned when a tree is configured with
	// inconsistent node size parameters.
	ErrInvalidArgument = errors.New("rtree: invalid argument")
	// ErrInvalidRegion is returned when a query region is nil or has no
	// bounding box.
	ErrInvalidRegion = errors.New("rtree: query region has no bounding box")
	// ErrInvalidRatio is returned when a minimum overlap ratio is outside of
	// the range [0, 1].
	ErrInvalidRatio = errors.New("rtree: overlap ratio must be within [0, 1]")
	// ErrNotImplemented is returned by operations the tree doesn't support.
	ErrNotImplemented = errors.New("rtree: not implemented")
)

// Spatial is implemented by anything that has a bounding box. Both indexed
// items and query regions are Spatial. The second return value is false when
// the value currently has no bounding box.
type Spatial interface {
	Bounds() (BBox, bool)
}

// Node is a node in an R-Tree. Nodes can either be leaf nodes holding entries
// for indexed items, or intermediate nodes holding entries for more nodes.
type Node struct {
	IsLeaf  bool
	Entries []Entry

	// Parent is the index of the parent node, or -1 for the root.
	Parent int

	// box is the union of all entry boxes. It is meaningless while the node
	// has no entries.
	box BBox
}

// Entry is an entry under a node, leading either to indexed items, or more
// nodes. For leaf nodes, Index refers to the item registry. For intermediate
// nodes, it is the index of the child node.
type Entry struct {
	BBox  BBox
	Index int
}

// NewInsertionPolicy creates a new insertion policy with the given node size
// parameters.
func NewInsertionPolicy(minChildren, maxChildren int) (InsertionPolicy, error) {
	if minChildren < 0 {
		return InsertionPolicy{}, errors.Wrapf(ErrInvalidArgument,
			"min children must not be negative (got %d)", minChildren)
	}
	if maxChildren < 2 {
		return InsertionPolicy{}, errors.Wrapf(ErrInvalidArgument,
			"max children must be at least 2 (got %d)", maxChildren)
	}
	if float64(minChildren) > float64(maxChildren)/2 {
		return InsertionPolicy{}, errors.Wrapf(ErrInvalidArgument,
			"min children must be less than or equal to half of the max children (got %d and %d)",
			minChildren, maxChildren)
	}
	return InsertionPolicy{minChildren, maxChildren}, nil
}

// InsertionPolicy alters the behaviour when inserting new data to an RTree.
type InsertionPolicy struct {
	minChildren int
	maxChildren int
}

// MinChildren is the minimum number of entries in a non-root node.
func (p InsertionPolicy) MinChildren() int { return p.minChildren }

// MaxChildren is the maximum number of entries in any node.
func (p InsertionPolicy) MaxChildren() int { return p.maxChildren }

// Option configures an RTree.
type Option func(*options)

type options struct {
	log logrus.FieldLogger
}

// WithLogger sets the logger that receives debug events about structural
// changes (node splits, root growth, clears). By default nothing is logged.
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// RTree is an in-memory R-Tree data structure. Besides the tree of nodes it
// keeps a flat registry of every inserted item, in insertion order.
type RTree[T Spatial] struct {
	rootIndex int
	nodes     []Node
	items     []T
	policy    InsertionPolicy
	log       logrus.FieldLogger
}

// New creates an empty R-Tree whose nodes hold between minEntries and
// maxEntries entries. It fails if minEntries is greater than half of
// maxEntries.
func New[T Spatial](minEntries, maxEntries int, opts ...Option) (*RTree[T], error) {
	policy, err := NewInsertionPolicy(minEntries, maxEntries)
	if err != nil {
		return nil, err
	}
	return newTree[T](policy, opts), nil
}

// NewDefault creates an empty R-Tree with DefaultMinEntries and
// DefaultMaxEntries.
func NewDefault[T Spatial](opts ...Option) *RTree[T] {
	return newTree[T](InsertionPolicy{DefaultMinEntries, DefaultMaxEntries}, opts)
}

func newTree[T Spatial](policy InsertionPolicy, opts []Option) *RTree[T] {
	o := options{log: discardLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	t := &RTree[T]{policy: policy, log: o.log}
	t.reset()
	return t
}

func (t *RTree[T]) reset() {
	t.nodes = []Node{{IsLeaf: true, Parent: -1}}
	t.rootIndex = 0
	t.items = nil
}

// Policy returns the node size parameters of the tree.
func (t *RTree[T]) Policy() InsertionPolicy {
	return t.policy
}

// Len is the number of items in the tree.
func (t *RTree[T]) Len() int {
	return len(t.items)
}

// Items returns every indexed item in insertion order. The returned slice is
// a copy and may be modified by the caller.
func (t *RTree[T]) Items() []T {
	items := make([]T, len(t.items))
	copy(items, t.items)
	return items
}

// EntriesOf returns the indexed items of the tree that have dynamic type S,
// in insertion order. S may be a concrete type or an interface.
func EntriesOf[S any, T Spatial](t *RTree[T]) []S {
	var result []S
	for _, item := range t.items {
		if s, ok := any(item).(S); ok {
			result = append(result, s)
		}
	}
	return result
}

// Bounds gives the smallest box that covers every item in the tree. The second
// return value is false if the tree is empty. Since an RTree is Spatial it can
// be used as a query region itself.
func (t *RTree[T]) Bounds() (BBox, bool) {
	root := &t.nodes[t.rootIndex]
	if len(root.Entries) == 0 {
		return BBox{}, false
	}
	return root.box, true
}

// Height is the number of node levels in the tree. An empty tree has a height
// of 1 (a single empty leaf).
func (t *RTree[T]) Height() int {
	n := t.rootIndex
	h := 1
	for !t.nodes[n].IsLeaf {
		n = t.nodes[n].Entries[0].Index
		h++
	}
	return h
}

// Clear removes every item from the tree, leaving a single empty leaf as the
// root.
func (t *RTree[T]) Clear() {
	t.log.WithFields(logrus.Fields{
		"items": len(t.items),
		"nodes": len(t.nodes),
	}).Debug("rtree: clear")
	t.reset()
}

// Delete is not supported and always returns an error wrapping
// ErrNotImplemented. The tree is left unchanged.
func (t *RTree[T]) Delete(item T) error {
	return errors.Wrap(ErrNotImplemented, "delete")
}

// boundsOf extracts the box of an item. Nil items (including typed nil
// pointers) and items without a box report false.
func boundsOf(s Spatial) (BBox, bool) {
	if isNil(s) {
		return BBox{}, false
	}
	return s.Bounds()
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
