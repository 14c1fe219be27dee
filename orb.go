package rtree

import "github.com/paulmach/orb"

// FromBound converts an orb bound into a BBox.
func FromBound(b orb.Bound) BBox {
	return BBox{
		MinX: b.Min.X(),
		MinY: b.Min.Y(),
		MaxX: b.Max.X(),
		MaxY: b.Max.Y(),
	}
}

// ToBound converts the box into an orb bound, for use with the rest of the orb
// geometry package.
func (b BBox) ToBound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.MinX, b.MinY},
		Max: orb.Point{b.MaxX, b.MaxY},
	}
}
