package tracks

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/lineage"
)

// document is the JSON interchange format:
//
//	{
//	  "points": [[id, t, y, x], ...],
//	  "graph":  {"<child>": [<parent>, ...], ...}
//	}
type document struct {
	Points [][]json.Number   `json:"points"`
	Graph  map[int64][]int64 `json:"graph,omitempty"`
}

// ReadFile loads tracks from a .json or .csv file.
func ReadFile(path string, opts ...Option) (*Tracks, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "tracks file %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return decode(f, path, opts...)
}

// decode picks the reader from the extension of name.
func decode(r io.Reader, name string, opts ...Option) (*Tracks, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".json":
		return ReadJSON(r, opts...)
	case ".csv":
		return ReadCSV(r, opts...)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported tracks file extension %q (want .json or .csv)", ext)
	}
}

// ReadJSON decodes the JSON interchange format.
func ReadJSON(r io.Reader, opts ...Option) (*Tracks, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode tracks JSON")
	}

	points := make([]Point, 0, len(doc.Points))
	for i, row := range doc.Points {
		if len(row) < 2 {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "point %d: want at least [id, t], got %d values", i, len(row))
		}
		var (
			p   Point
			err error
		)
		if p.ID, err = parseInteger(row[0].String()); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "point %d: id", i)
		}
		if p.T, err = parseInteger(row[1].String()); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "point %d: t", i)
		}
		if len(row) > 2 {
			if p.Y, err = row[2].Float64(); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "point %d: y", i)
			}
		}
		if len(row) > 3 {
			if p.X, err = row[3].Float64(); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "point %d: x", i)
			}
		}
		points = append(points, p)
	}
	return New(points, lineage.RawGraph(doc.Graph), opts...), nil
}

// WriteJSON encodes t in the JSON interchange format.
func WriteJSON(w io.Writer, t *Tracks) error {
	doc := document{
		Points: make([][]json.Number, 0, len(t.points)),
		Graph:  t.graph,
	}
	for _, p := range t.points {
		doc.Points = append(doc.Points, []json.Number{
			json.Number(strconv.FormatInt(p.ID, 10)),
			json.Number(strconv.FormatInt(p.T, 10)),
			json.Number(strconv.FormatFloat(p.Y, 'g', -1, 64)),
			json.Number(strconv.FormatFloat(p.X, 'g', -1, 64)),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// ReadCSV decodes a point table with a header row. Required columns are
// track_id (or id) and t; y, x and parent are optional. A parent column
// builds the lineage graph; empty or negative values mean no parent.
func ReadCSV(r io.Reader, opts ...Option) (*Tracks, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read CSV header")
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	idCol, ok := cols["track_id"]
	if !ok {
		idCol, ok = cols["id"]
	}
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "CSV header lacks a track_id column")
	}
	tCol, ok := cols["t"]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "CSV header lacks a t column")
	}

	var points []Point
	graph := lineage.RawGraph{}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "CSV line %d", line)
		}

		var p Point
		if p.ID, err = parseInt(rec, idCol); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "CSV line %d: track_id", line)
		}
		if p.T, err = parseInt(rec, tCol); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "CSV line %d: t", line)
		}
		if i, ok := cols["y"]; ok {
			if p.Y, err = parseFloat(rec, i); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "CSV line %d: y", line)
			}
		}
		if i, ok := cols["x"]; ok {
			if p.X, err = parseFloat(rec, i); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "CSV line %d: x", line)
			}
		}
		points = append(points, p)

		if i, ok := cols["parent"]; ok && i < len(rec) && strings.TrimSpace(rec[i]) != "" {
			parent, err := parseInt(rec, i)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "CSV line %d: parent", line)
			}
			if parent >= 0 && !slices.Contains(graph[p.ID], parent) {
				graph[p.ID] = append(graph[p.ID], parent)
			}
		}
	}
	return New(points, graph, opts...), nil
}

func parseInt(rec []string, i int) (int64, error) {
	if i >= len(rec) {
		return 0, fmt.Errorf("missing column %d", i)
	}
	return parseInteger(strings.TrimSpace(rec[i]))
}

// Below maxExactFloat every float64 integer maps back to one decimal
// integer; at 2^53 and beyond neighbouring ids share a float.
const maxExactFloat = 1 << 53

// parseInteger parses a track id or frame. Integral floats ("12.0", "1e3")
// are accepted since tracking tools often write frames that way; fractions,
// NaN, infinities and floats beyond exact integer precision are rejected.
func parseInteger(s string) (int64, error) {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) >= maxExactFloat {
		return 0, fmt.Errorf("%q is not an exact integer", s)
	}
	return int64(f), nil
}

func parseFloat(rec []string, i int) (float64, error) {
	if i >= len(rec) {
		return 0, fmt.Errorf("missing column %d", i)
	}
	return strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
}
