package raster

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// ReadASCIIGrid parses an ESRI ASCII grid. Both the *corner and *center
// origin conventions are accepted; NODATA_value defaults to DefaultNodata.
// The CRS is left empty since the format does not carry one.
func ReadASCIIGrid(rd io.Reader) (*Raster, error) {
	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	sc.Split(bufio.ScanWords)

	header := make(map[string]float64, 6)
	var first string
	for sc.Scan() {
		key := strings.ToLower(sc.Text())
		if _, err := strconv.ParseFloat(key, 64); err == nil {
			first = key // header done, this is the first cell value
			break
		}
		if !sc.Scan() {
			return nil, fmt.Errorf("%w: missing value for %q", ErrBadHeader, key)
		}
		v, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrBadHeader, key, err)
		}
		header[key] = v
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("raster: read ASCII grid: %w", err)
	}

	cols, rows := int(header["ncols"]), int(header["nrows"])
	size, ok := header["cellsize"]
	if cols <= 0 || rows <= 0 || !ok || size <= 0 {
		return nil, fmt.Errorf("%w: ncols=%d nrows=%d cellsize=%v", ErrBadHeader, cols, rows, size)
	}
	nodata, ok := header["nodata_value"]
	if !ok {
		nodata = DefaultNodata
	}

	var x0, y0 float64
	switch {
	case hasKeys(header, "xllcorner", "yllcorner"):
		x0, y0 = header["xllcorner"], header["yllcorner"]
	case hasKeys(header, "xllcenter", "yllcenter"):
		x0, y0 = header["xllcenter"]-size/2, header["yllcenter"]-size/2
	default:
		return nil, fmt.Errorf("%w: missing lower-left origin", ErrBadHeader)
	}

	data := make([]float64, 0, rows*cols)
	if first != "" {
		v, _ := strconv.ParseFloat(first, 64)
		data = append(data, v)
	}
	for len(data) < rows*cols && sc.Scan() {
		v, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			return nil, fmt.Errorf("raster: cell %d: %w", len(data), err)
		}
		data = append(data, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("raster: read ASCII grid: %w", err)
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("raster: got %d cells, want %d", len(data), rows*cols)
	}

	return New(mat.NewDense(rows, cols, data), Metadata{
		Transform: NorthUp(x0, y0+float64(rows)*size, size),
		Nodata:    nodata,
	})
}

// LoadASCIIGrid opens path and reads it with ReadASCIIGrid.
func LoadASCIIGrid(path string) (*Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("raster: open %s: %w", path, err)
	}
	defer f.Close()

	return ReadASCIIGrid(f)
}

func hasKeys(m map[string]float64, keys ...string) bool {
	for _, k := range keys {
		if _, ok := m[k]; !ok {
			return false
		}
	}
	return true
}
