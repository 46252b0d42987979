package geo

import (
	"encoding/json"
	"os"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// DecodeFeatures parses raw GeoJSON entries into geometries. Each entry may
// be a bare geometry or a Feature wrapper. Malformed entries are skipped
// rather than failing the submission; an empty result leaves service-area
// membership unknown downstream.
func DecodeFeatures(raw []json.RawMessage) []geom.T {
	features := make([]geom.T, 0, len(raw))
	for _, entry := range raw {
		if g, err := decodeOne(entry); err == nil && g != nil {
			features = append(features, g)
		}
	}
	return features
}

func decodeOne(data []byte) (geom.T, error) {
	var g geom.T
	if err := geojson.Unmarshal(data, &g); err == nil {
		return g, nil
	}

	var feature geojson.Feature
	if err := json.Unmarshal(data, &feature); err != nil {
		return nil, err
	}
	return feature.Geometry, nil
}

// LoadServiceArea reads the auto-quote service area from a GeoJSON file.
// The file may hold a bare geometry, a Feature or a FeatureCollection; a
// multi-feature collection is merged into a single multipolygon. The
// result is loaded once at startup and treated as immutable.
func LoadServiceArea(path string) (geom.T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeServiceArea(data)
}

func DecodeServiceArea(data []byte) (geom.T, error) {
	if g, err := decodeOne(data); err == nil && g != nil {
		return g, nil
	}

	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, err
	}

	var geoms []geom.T
	for _, feature := range fc.Features {
		if feature != nil && feature.Geometry != nil {
			geoms = append(geoms, feature.Geometry)
		}
	}
	if len(geoms) == 0 {
		return nil, errUnsupportedGeometry
	}
	if len(geoms) == 1 {
		return geoms[0], nil
	}
	return mergePolygons(geoms)
}

func mergePolygons(geoms []geom.T) (geom.T, error) {
	merged := geom.NewMultiPolygon(geom.XY)
	for _, g := range geoms {
		polys, err := asPolygons(g)
		if err != nil {
			return nil, err
		}
		for _, p := range polys {
			np := geom.NewPolygonFlat(geom.XY, flatXY(p), endsXY(p))
			if err := merged.Push(np); err != nil {
				return nil, err
			}
		}
	}
	return merged, nil
}

// flatXY re-flattens a polygon's coordinates to plain XY, dropping any
// extra dimensions so mixed-layout inputs can share one multipolygon.
func flatXY(p *geom.Polygon) []float64 {
	stride := p.Stride()
	src := p.FlatCoords()
	flat := make([]float64, 0, len(src)/stride*2)
	for i := 0; i+1 < len(src); i += stride {
		flat = append(flat, src[i], src[i+1])
	}
	return flat
}

func endsXY(p *geom.Polygon) []int {
	stride := p.Stride()
	ends := make([]int, 0, p.NumLinearRings())
	total := 0
	for i := 0; i < p.NumLinearRings(); i++ {
		total += len(p.LinearRing(i).FlatCoords()) / stride * 2
		ends = append(ends, total)
	}
	return ends
}
