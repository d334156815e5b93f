// Package seed parses node and edge CSV files and loads them into the graph
// idempotently. It runs at server startup when SEED_DIR is set and backs the
// CLI import command.
package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pathfinderhq/pathfinder/internal/models"
)

// File names looked up by LoadDir.
const (
	NodesFile = "nodes.csv"
	EdgesFile = "edges.csv"
)

// ErrMissingColumn is returned when a required header column is absent.
var ErrMissingColumn = errors.New("seed: missing column")

// EdgeRow is one parsed line of edges.csv.
type EdgeRow struct {
	Line    int
	SrcName string
	DstName string
	Weight  float64
}

// ParseNodes reads node names from a CSV with a "name" column. Blank names are
// skipped; duplicates are kept in order and resolved by the loader.
func ParseNodes(r io.Reader) ([]string, error) {
	rows, cols, err := readTable(r, "name")
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(rows))
	for _, row := range rows {
		name := strings.TrimSpace(row.fields[cols["name"]])
		if name == "" {
			continue
		}
		names = append(names, name)
	}

	return names, nil
}

// ParseEdges reads src_name, dst_name and weight columns. A weight that does
// not parse or is not strictly positive fails the whole file with its line number.
func ParseEdges(r io.Reader) ([]EdgeRow, error) {
	rows, cols, err := readTable(r, "src_name", "dst_name", "weight")
	if err != nil {
		return nil, err
	}

	edges := make([]EdgeRow, 0, len(rows))
	for _, row := range rows {
		src := strings.TrimSpace(row.fields[cols["src_name"]])
		dst := strings.TrimSpace(row.fields[cols["dst_name"]])
		if src == "" && dst == "" {
			continue
		}

		raw := strings.TrimSpace(row.fields[cols["weight"]])
		w, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: weight %q: %w", row.line, raw, models.ErrInvalidWeight)
		}

		if err := models.ValidateWeight(w); err != nil {
			return nil, fmt.Errorf("line %d: %w", row.line, err)
		}

		edges = append(edges, EdgeRow{Line: row.line, SrcName: src, DstName: dst, Weight: w})
	}

	return edges, nil
}

type record struct {
	line   int
	fields []string
}

// readTable reads the header, maps each required column to its index and
// returns the data records.
func readTable(r io.Reader, required ...string) ([]record, map[string]int, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("%w: empty file", ErrMissingColumn)
		}
		return nil, nil, fmt.Errorf("reading header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}

	cols := make(map[string]int, len(required))
	width := 0
	for _, name := range required {
		i, ok := index[name]
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
		cols[name] = i
		width = max(width, i+1)
	}

	var rows []record
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading record: %w", err)
		}

		line, _ := cr.FieldPos(0)
		if len(fields) < width {
			return nil, nil, fmt.Errorf("line %d: expected at least %d fields, got %d", line, width, len(fields))
		}

		rows = append(rows, record{line: line, fields: fields})
	}

	return rows, cols, nil
}
