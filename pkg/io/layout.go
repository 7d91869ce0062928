package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/graphdraw/pkg/errors"
	"github.com/matzehuels/graphdraw/pkg/layout"
)

// MarshalLayout serializes a result to pretty-printed JSON bytes.
func MarshalLayout(res layout.Result) ([]byte, error) {
	return json.MarshalIndent(res, "", "  ")
}

// UnmarshalLayout decodes JSON bytes into a result and checks that every
// edge references a known node.
func UnmarshalLayout(data []byte) (layout.Result, error) {
	var res layout.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return layout.Result{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal layout")
	}
	known := make(map[string]bool, len(res.Nodes))
	for _, n := range res.Nodes {
		known[n.ID] = true
	}
	for _, e := range res.Edges {
		if !known[e.From] || !known[e.To] {
			return layout.Result{}, errors.New(errors.ErrCodeUnknownEndpoint, "layout edge %s-%s references an unknown node", e.From, e.To)
		}
	}
	return res, nil
}

// WriteLayout encodes res as indented JSON and writes it to w.
func WriteLayout(res layout.Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadLayout decodes a result written by [WriteLayout].
func ReadLayout(r io.Reader) (layout.Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return layout.Result{}, fmt.Errorf("read: %w", err)
	}
	return UnmarshalLayout(data)
}

// WriteLayoutFile writes res to a JSON file.
func WriteLayoutFile(res layout.Result, path string) error {
	data, err := MarshalLayout(res)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a result from a JSON file.
func ReadLayoutFile(path string) (layout.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return layout.Result{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
