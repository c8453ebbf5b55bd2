package centerline

import (
	"fmt"

	"github.com/paulmach/orb"

	beratools "github.com/appliedgrg/bera-tools"
	"github.com/appliedgrg/bera-tools/geometry"
	"github.com/appliedgrg/bera-tools/skeleton"
)

// Find returns the centerline of poly guided by ref, and how it was
// obtained. On Failed and RegenerateFailed the geometry is ref itself. A
// multi-part skeleton is returned as an orb.MultiLineString with Success.
func Find(poly geometry.Shape, ref orb.LineString, p Params) (cl orb.Geometry, st Status) {
	defer func() {
		if r := recover(); r != nil {
			beratools.Logger().Warn("centerline: recovered panic", "panic", fmt.Sprint(r))
			cl, st = ref, Failed
		}
	}()
	return find(poly, ref, p, 0)
}

func find(poly geometry.Shape, ref orb.LineString, p Params, depth int) (orb.Geometry, Status) {
	log := beratools.Logger().With("depth", depth)
	if len(ref) < 2 {
		log.Debug("centerline: reference line too short")
		return ref, Failed
	}
	if depth >= p.MaxDepth {
		log.Debug("centerline: regeneration depth reached")
		return ref, Failed
	}

	pg, err := prepare(poly, p)
	if err != nil {
		log.Debug("centerline: polygon rejected", "err", err)
		return ref, Failed
	}

	opts := p.Skeleton
	opts.SmoothSigma = p.SmoothSigma
	lines, err := skeleton.Centerline(pg, opts)
	if err != nil {
		log.Debug("centerline: no skeleton", "err", err)
		return ref, Failed
	}
	if len(lines) > 1 {
		log.Debug("centerline: multiple skeleton parts", "parts", len(lines))
		return orb.MultiLineString(lines), Success
	}

	parts := geometry.TrimEnds(lines[0], p.BufferClip)
	if len(parts) == 0 {
		log.Debug("centerline: skeleton shorter than the end clip")
		return ref, Failed
	}

	if cl, ok := SnapEndToEnd(geometry.Merge(parts, p.Epsilon), ref, p.Epsilon); ok && IsValid(cl, ref, p.Epsilon) {
		return cl, Success
	}

	log.Debug("centerline: regenerating")
	g, err := regenerate(pg, ref, p, depth)
	if err != nil {
		log.Debug("centerline: regeneration failed", "err", err)
		return ref, RegenerateFailed
	}
	return g, RegenerateSuccess
}

// prepare turns poly into a single cleaned polygon ready for the skeleton.
// Every polygon is grown by SmallBuffer to absorb slivers; several parts
// that stay apart after that give ErrMultiPolygon.
func prepare(poly geometry.Shape, p Params) (orb.Polygon, error) {
	switch poly.Kind() {
	case geometry.KindEmpty:
		return nil, geometry.ErrEmptyGeometry
	case geometry.KindMulti:
		welded, err := weld(poly, p.SmallBuffer)
		if err != nil {
			return nil, err
		}
		poly = welded
	default:
		if welded, err := weld(poly, p.SmallBuffer); err == nil {
			poly = welded
		} else {
			beratools.Logger().Debug("centerline: small buffer skipped", "err", err)
		}
	}

	pg, _ := poly.Polygon()
	if p.DeleteHoles {
		pg = geometry.RemoveHoles(pg)
	}
	if p.SimplifyPolygon {
		pg = geometry.Simplify(pg, p.SimplifyLength)
	}
	if p.SegmentizeLength > 0 {
		pg = geometry.Segmentize(pg, p.SegmentizeLength)
	}
	return pg, nil
}

func weld(s geometry.Shape, d float64) (geometry.Shape, error) {
	grown := make([]orb.Polygon, 0, len(s.Parts()))
	for _, part := range s.Parts() {
		b, err := geometry.Buffer(part, d)
		if err != nil {
			return geometry.Empty(), err
		}
		grown = append(grown, b.Parts()...)
	}
	u, err := geometry.Union(grown...)
	if err != nil {
		return geometry.Empty(), err
	}
	if u.Kind() != geometry.KindSingle {
		return geometry.Empty(), fmt.Errorf("%w: %d parts", geometry.ErrMultiPolygon, len(u.Parts()))
	}
	return u, nil
}
