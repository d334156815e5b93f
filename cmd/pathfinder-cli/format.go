package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pathfinderhq/pathfinder/client"
)

func formatJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error: encode json: %v\n", err)
		os.Exit(1)
	}
}

func formatTable(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	printRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			w := 0
			if i < len(widths) {
				w = widths[i]
			}
			parts[i] = fmt.Sprintf("%-*s", w, cell)
		}
		fmt.Println(strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	printRow(headers)
	seps := make([]string, len(headers))
	for i, w := range widths {
		seps[i] = strings.Repeat("-", w)
	}
	printRow(seps)
	for _, row := range rows {
		printRow(row)
	}
}

// output prints v as JSON, or as a table when --format=table and a table
// rendering is given.
func output(v any, table func()) {
	if flagFmt == "table" && table != nil {
		table()
		return
	}
	formatJSON(v)
}

func id(v int64) string { return strconv.FormatInt(v, 10) }

func weight(w float64) string { return strconv.FormatFloat(w, 'g', -1, 64) }

func nodeRows(nodes []client.Node) [][]string {
	rows := make([][]string, 0, len(nodes))
	for _, n := range nodes {
		rows = append(rows, []string{id(n.ID), n.Name, n.CreatedAt.Format("2006-01-02 15:04:05")})
	}
	return rows
}

func edgeRows(edges []client.Edge) [][]string {
	rows := make([][]string, 0, len(edges))
	for _, e := range edges {
		rows = append(rows, []string{id(e.ID), id(e.SrcID), id(e.DstID), weight(e.Weight)})
	}
	return rows
}

func bfsRows(res *client.BFSResult) [][]string {
	rows := make([][]string, 0, len(res.Tree))
	for _, t := range res.Tree {
		parent := "-"
		if t.ParentID != nil {
			parent = id(*t.ParentID)
		}
		rows = append(rows, []string{id(t.NodeID), parent, strconv.Itoa(t.Depth)})
	}
	return rows
}

func pathString(path []int64) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = id(p)
	}
	return strings.Join(parts, " -> ")
}

var (
	nodeHeaders = []string{"ID", "NAME", "CREATED"}
	edgeHeaders = []string{"ID", "SRC", "DST", "WEIGHT"}
	bfsHeaders  = []string{"NODE", "PARENT", "DEPTH"}
)
