package seedline

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Layer selects which geometry of a SeedLine is exported.
type Layer int

const (
	LayerCenterline Layer = iota
	LayerLCPath
	LayerCorridor
)

// Property names shared with the input data.
const (
	PropFID    = "OLnFID"
	PropSEG    = "OLnSEG"
	PropStatus = "status"
)

// ReadGeoJSON parses a FeatureCollection of LineString or MultiLineString
// features. A feature without OLnFID takes its index; the parts of a
// MultiLineString without OLnSEG are numbered from 0.
func ReadGeoJSON(rd io.Reader) ([]*SeedLine, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("seedline: parse geojson: %w", err)
	}

	var out []*SeedLine
	for i, f := range fc.Features {
		fid, ok := number(f.Properties[PropFID])
		if !ok {
			fid = int64(i)
		}
		seg, hasSEG := number(f.Properties[PropSEG])

		switch g := f.Geometry.(type) {
		case orb.LineString:
			out = append(out, &SeedLine{Line: g, Keys: Keys{OLnFID: fid, OLnSEG: seg, HasSEG: hasSEG}})
		case orb.MultiLineString:
			for j, part := range g {
				k := Keys{OLnFID: fid, OLnSEG: int64(j), HasSEG: true}
				if hasSEG {
					k.OLnSEG = seg
				}
				out = append(out, &SeedLine{Line: part, Keys: k})
			}
		default:
			return nil, fmt.Errorf("%w: feature %d has no line geometry", ErrInvalidGeometry, i)
		}
	}
	return out, nil
}

func number(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

// Features exports one layer of lines as a FeatureCollection carrying the
// join keys and the status. Lines without the requested geometry are
// skipped.
func Features(lines []*SeedLine, layer Layer) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, s := range lines {
		var g orb.Geometry
		switch layer {
		case LayerLCPath:
			if s.LCPath != nil {
				g = s.LCPath
			}
		case LayerCorridor:
			g = s.Corridor.Geometry()
		default:
			g = s.Centerline
		}
		if g == nil {
			continue
		}
		f := geojson.NewFeature(g)
		f.Properties[PropFID] = s.Keys.OLnFID
		if s.Keys.HasSEG {
			f.Properties[PropSEG] = s.Keys.OLnSEG
		}
		f.Properties[PropStatus] = int(s.Status)
		fc.Append(f)
	}
	return fc
}

// WriteGeoJSON encodes one layer of lines to w.
func WriteGeoJSON(w io.Writer, lines []*SeedLine, layer Layer) error {
	data, err := Features(lines, layer).MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
