package geo

import (
	"errors"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
)

var errUnsupportedGeometry = errors.New("geo: unsupported or malformed geometry")

// Intersects reports whether two polygon or multipolygon geometries share
// any area or boundary. go-geom provides no polygon overlay predicate, so
// the check is composed from its primitives: bounding-box rejection, vertex
// containment and edge crossing. Malformed geometry returns an error rather
// than panicking; callers degrade that to an unknown eligibility signal.
func Intersects(a, b geom.T) (bool, error) {
	as, err := asPolygons(a)
	if err != nil {
		return false, err
	}
	bs, err := asPolygons(b)
	if err != nil {
		return false, err
	}

	for _, p := range as {
		for _, q := range bs {
			if polygonsIntersect(p, q) {
				return true, nil
			}
		}
	}
	return false, nil
}

// asPolygons flattens a geometry into its component polygons.
func asPolygons(g geom.T) ([]*geom.Polygon, error) {
	switch t := g.(type) {
	case *geom.Polygon:
		if t.NumLinearRings() == 0 || len(t.LinearRing(0).FlatCoords()) < 3*t.Stride() {
			return nil, errUnsupportedGeometry
		}
		return []*geom.Polygon{t}, nil
	case *geom.MultiPolygon:
		if t.NumPolygons() == 0 {
			return nil, errUnsupportedGeometry
		}
		polys := make([]*geom.Polygon, 0, t.NumPolygons())
		for i := 0; i < t.NumPolygons(); i++ {
			p := t.Polygon(i)
			if p.NumLinearRings() == 0 || len(p.LinearRing(0).FlatCoords()) < 3*p.Stride() {
				return nil, errUnsupportedGeometry
			}
			polys = append(polys, p)
		}
		return polys, nil
	default:
		return nil, errUnsupportedGeometry
	}
}

func polygonsIntersect(p, q *geom.Polygon) bool {
	if !p.Bounds().Overlaps(geom.XY, q.Bounds()) {
		return false
	}

	// One polygon fully inside the other, or partial overlap: some vertex
	// of one lies inside the other.
	if anyVertexInside(p, q) || anyVertexInside(q, p) {
		return true
	}

	// Boundary-only contact: some pair of ring edges crosses or touches.
	for pi := 0; pi < p.NumLinearRings(); pi++ {
		for qi := 0; qi < q.NumLinearRings(); qi++ {
			if ringsCross(p.LinearRing(pi), q.LinearRing(qi)) {
				return true
			}
		}
	}
	return false
}

// anyVertexInside reports whether any exterior-ring vertex of p lies
// within q (inside the shell and outside every hole).
func anyVertexInside(p, q *geom.Polygon) bool {
	ring := p.LinearRing(0)
	flat := ring.FlatCoords()
	stride := ring.Stride()
	for i := 0; i+1 < len(flat); i += stride {
		if pointInPolygon(geom.Coord{flat[i], flat[i+1]}, q) {
			return true
		}
	}
	return false
}

func pointInPolygon(pt geom.Coord, poly *geom.Polygon) bool {
	if !xy.IsPointInRing(poly.Layout(), pt, poly.LinearRing(0).FlatCoords()) {
		return false
	}
	for i := 1; i < poly.NumLinearRings(); i++ {
		if xy.IsPointInRing(poly.Layout(), pt, poly.LinearRing(i).FlatCoords()) {
			return false
		}
	}
	return true
}

func ringsCross(a, b *geom.LinearRing) bool {
	af, as := a.FlatCoords(), a.Stride()
	bf, bs := b.FlatCoords(), b.Stride()
	for i := 0; i+as+1 < len(af); i += as {
		for j := 0; j+bs+1 < len(bf); j += bs {
			if segmentsIntersect(
				af[i], af[i+1], af[i+as], af[i+as+1],
				bf[j], bf[j+1], bf[j+bs], bf[j+bs+1],
			) {
				return true
			}
		}
	}
	return false
}

// segmentsIntersect reports whether segments (x1,y1)-(x2,y2) and
// (x3,y3)-(x4,y4) intersect, including collinear touching.
func segmentsIntersect(x1, y1, x2, y2, x3, y3, x4, y4 float64) bool {
	d1 := orientation(x3, y3, x4, y4, x1, y1)
	d2 := orientation(x3, y3, x4, y4, x2, y2)
	d3 := orientation(x1, y1, x2, y2, x3, y3)
	d4 := orientation(x1, y1, x2, y2, x4, y4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	switch {
	case d1 == 0 && onSegment(x3, y3, x4, y4, x1, y1):
		return true
	case d2 == 0 && onSegment(x3, y3, x4, y4, x2, y2):
		return true
	case d3 == 0 && onSegment(x1, y1, x2, y2, x3, y3):
		return true
	case d4 == 0 && onSegment(x1, y1, x2, y2, x4, y4):
		return true
	}
	return false
}

func orientation(ax, ay, bx, by, cx, cy float64) float64 {
	return (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
}

func onSegment(ax, ay, bx, by, px, py float64) bool {
	return px >= min(ax, bx) && px <= max(ax, bx) &&
		py >= min(ay, by) && py <= max(ay, by)
}
