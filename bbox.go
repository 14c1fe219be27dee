package rtree

import "math"

// BBox is an axis-aligned bounding box. Its bounds are inclusive, so two boxes
// that share only an edge overlap.
type BBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// Bounds returns the box itself. It allows a BBox to be used directly as a
// query region.
func (b BBox) Bounds() (BBox, bool) {
	return b, true
}

// Width is the extent of the box along the X axis.
func (b BBox) Width() float64 {
	return b.MaxX - b.MinX
}

// Height is the extent of the box along the Y axis.
func (b BBox) Height() float64 {
	return b.MaxY - b.MinY
}

// Area is the area covered by the box.
func (b BBox) Area() float64 {
	return area(b)
}

// Union gives the smallest box covering both b and o.
func (b BBox) Union(o BBox) BBox {
	return combine(b, o)
}

// Overlaps reports whether b and o share at least one point.
func (b BBox) Overlaps(o BBox) bool {
	return overlap(b, o)
}

// Contains reports whether o lies completely inside b.
func (b BBox) Contains(o BBox) bool {
	return true &&
		b.MinX <= o.MinX && o.MaxX <= b.MaxX &&
		b.MinY <= o.MinY && o.MaxY <= b.MaxY
}

// Intersection returns the box shared by b and o. The second return value is
// false if the boxes don't overlap.
func (b BBox) Intersection(o BBox) (BBox, bool) {
	if !overlap(b, o) {
		return BBox{}, false
	}
	return BBox{
		MinX: math.Max(b.MinX, o.MinX),
		MinY: math.Max(b.MinY, o.MinY),
		MaxX: math.Min(b.MaxX, o.MaxX),
		MaxY: math.Min(b.MaxY, o.MaxY),
	}, true
}

// OverlapRatio gives the fraction of b's area that is covered by o, in the
// range [0, 1]. A box with zero area has a ratio of 1 if o contains it and 0
// otherwise.
func (b BBox) OverlapRatio(o BBox) float64 {
	a := area(b)
	if a == 0 {
		if o.Contains(b) {
			return 1
		}
		return 0
	}
	inter, ok := b.Intersection(o)
	if !ok {
		return 0
	}
	return math.Min(1, area(inter)/a)
}

// combine gives the smallest bounding box containing both bbox1 and bbox2.
func combine(bbox1, bbox2 BBox) BBox {
	return BBox{
		MinX: math.Min(bbox1.MinX, bbox2.MinX),
		MinY: math.Min(bbox1.MinY, bbox2.MinY),
		MaxX: math.Max(bbox1.MaxX, bbox2.MaxX),
		MaxY: math.Max(bbox1.MaxY, bbox2.MaxY),
	}
}

// enlargement returns how much additional area the existing BBox would have to
// enlarge by to accommodate the additional BBox.
func enlargement(existing, additional BBox) float64 {
	return area(combine(existing, additional)) - area(existing)
}

func area(bb BBox) float64 {
	return (bb.MaxX - bb.MinX) * (bb.MaxY - bb.MinY)
}

func overlap(bbox1, bbox2 BBox) bool {
	return true &&
		(bbox1.MinX <= bbox2.MaxX) && (bbox1.MaxX >= bbox2.MinX) &&
		(bbox1.MinY <= bbox2.MaxY) && (bbox1.MaxY >= bbox2.MinY)
}
