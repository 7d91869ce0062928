package io

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/graphdraw/pkg/errors"
	"github.com/matzehuels/graphdraw/pkg/graph"
)

const maxLineSize = 1 << 20

// ReadText parses the text format from r into a new graph.
//
// Nodes are registered with the existence check disabled once the reader has
// verified they are new, and edges are only added after both endpoints are
// known, so the returned graph never contains implicit nodes.
//
// ReadText does not close r.
func ReadText(r io.Reader, directed bool) (*graph.Graph, error) {
	g := graph.New(directed)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	line := 0
	for sc.Scan() {
		line++
		parts := strings.Fields(sc.Text())
		switch n := len(parts); {
		case n == 0:
			continue
		case n == 1:
			if err := errors.ValidateNodeID(parts[0]); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "Node in line %d is invalid.", line).AtLine(line)
			}
			if g.HasNode(parts[0]) {
				return nil, errors.New(errors.ErrCodeDuplicateNode, "Node in line %d is repeated.", line).AtLine(line)
			}
			g.AddNode(parts[0], false)
		case n <= 3:
			weight := graph.DefaultWeight
			if n == 3 {
				w, err := strconv.ParseFloat(parts[2], 64)
				if err == nil && (math.IsInf(w, 0) || math.IsNaN(w)) {
					err = fmt.Errorf("weight %q is not finite", parts[2])
				}
				if err != nil {
					return nil, errors.Wrap(errors.ErrCodeInvalidWeight, err, "weight in line %d is invalid.", line).AtLine(line)
				}
				weight = w
			}
			if !g.HasNode(parts[0]) || !g.HasNode(parts[1]) {
				return nil, errors.New(errors.ErrCodeUnknownEndpoint, "Edge in line %d is invalid.", line).AtLine(line)
			}
			g.AddEdge(parts[0], parts[1], weight, false)
		default:
			return nil, errors.New(errors.ErrCodeInvalidLine, "Line %d is invalid.", line).AtLine(line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read failed after line %d", line)
	}
	return g, nil
}

// ReadTextFile opens path and parses it with [ReadText].
func ReadTextFile(path string, directed bool) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "File cannot be opened.")
	}
	defer f.Close()
	return ReadText(f, directed)
}

// WriteText writes g in the text format: nodes in index order, then every
// raw edge in first-insertion order of its canonical key. Parallel edges are
// written once per raw weight, so reading the output back yields the same
// counters. Weights use the shortest representation that round-trips.
func WriteText(g *graph.Graph, w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, id := range g.Nodes() {
		fmt.Fprintln(bw, id)
	}
	for _, key := range g.Edges() {
		info, _ := g.Edge(key.U, key.V)
		for _, weight := range info.Weights {
			if weight == graph.DefaultWeight {
				fmt.Fprintf(bw, "%s %s\n", key.U, key.V)
				continue
			}
			fmt.Fprintf(bw, "%s %s %s\n", key.U, key.V, strconv.FormatFloat(weight, 'g', -1, 64))
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// WriteTextFile writes g to path with [WriteText].
func WriteTextFile(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteText(g, f)
}
