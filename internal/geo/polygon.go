package geo

import (
	"errors"
	"fmt"

	"github.com/UnknownOlympus/distancer/internal/models"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
	"github.com/twpayne/go-geom/xy/location"
)

// Location is the result of classifying a point against a polygon.
type Location int

const (
	// Outside means the point lies strictly outside the polygon.
	Outside Location = iota
	// Inside means the point lies strictly inside the polygon.
	Inside
	// OnBorder means the point lies exactly on an edge or a vertex of the polygon.
	OnBorder
)

// String returns a lower-case name of the location, suitable for logs and metric labels.
func (l Location) String() string {
	switch l {
	case Inside:
		return "inside"
	case OnBorder:
		return "on_border"
	case Outside:
		return "outside"
	default:
		return fmt.Sprintf("location(%d)", int(l))
	}
}

// Within reports whether the location counts as inside the boundary (strictly inside or on the border).
func (l Location) Within() bool {
	return l == Inside || l == OnBorder
}

// ErrTooFewVertices is returned when a polygon is built from fewer than three distinct vertices.
var ErrTooFewVertices = errors.New("polygon needs at least three vertices")

// Polygon is an immutable simple ring of longitude/latitude vertices.
// Coordinates are treated as planar x/y, which holds for regions a few tens of kilometers across.
type Polygon struct {
	vertices []models.Coordinates // open ring, as supplied
	ring     []float64            // closed ring in geom.XY flat layout
}

// NewPolygon builds a polygon from an ordered vertex list. The ring may be given in either orientation
// and may or may not repeat the first vertex at the end. The input slice is copied.
func NewPolygon(vertices []models.Coordinates) (*Polygon, error) {
	const minVertices = 3

	open := make([]models.Coordinates, len(vertices))
	copy(open, vertices)

	if len(open) > 1 && open[0] == open[len(open)-1] {
		open = open[:len(open)-1]
	}

	if len(open) < minVertices {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewVertices, len(open))
	}

	ring := make([]float64, 0, (len(open)+1)*geom.XY.Stride())
	for _, v := range open {
		ring = append(ring, v.Longitude, v.Latitude)
	}
	ring = append(ring, open[0].Longitude, open[0].Latitude)

	return &Polygon{vertices: open, ring: ring}, nil
}

// Vertices returns a copy of the polygon vertices without the closing vertex.
func (p *Polygon) Vertices() []models.Coordinates {
	out := make([]models.Coordinates, len(p.vertices))
	copy(out, p.vertices)

	return out
}

// Classify determines whether the point lies strictly inside, on the border of, or outside the polygon.
// The ring is traversed once per call.
func (p *Polygon) Classify(point models.Coordinates) Location {
	switch xy.LocatePointInRing(geom.XY, geom.Coord{point.Longitude, point.Latitude}, p.ring) {
	case location.Interior:
		return Inside
	case location.Boundary:
		return OnBorder
	default:
		return Outside
	}
}
